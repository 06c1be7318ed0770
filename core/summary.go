package core

import "provisionhub/models"

// Summarize computes the metric card counts for a record set. Bucket counts use the same
// predicates as the category filter, so a card and its filtered table always agree.
func Summarize(dataset string, records []models.Record, markerField string) models.Summary {
	s := models.Summary{Dataset: dataset, TotalRecords: len(records)}
	for _, rec := range records {
		c := ApprovalsOf(rec, markerField)
		s.Markers.Approved += c.Approved
		s.Markers.Rejected += c.Rejected
		s.Markers.Pending += c.Pending
		if inCategory(c, models.CategoryWithApprovals) {
			s.WithApprovals++
		}
		if inCategory(c, models.CategoryPendingApprovals) {
			s.PendingApprovals++
		}
		if inCategory(c, models.CategoryNoApprovals) {
			s.NoApprovals++
		}
	}
	return s
}
