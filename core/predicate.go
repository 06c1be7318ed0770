package core

import (
	"strings"

	"provisionhub/models"
)

// MatchesSearch reports whether any searchable column of rec contains term, ignoring case.
// An empty term matches every record without looking at it.
func MatchesSearch(rec models.Record, term string, cols []Column) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, c := range cols {
		if !c.Searchable {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(FieldValue(rec, c.Key))), needle) {
			return true
		}
	}
	return false
}

// ApprovalsOf counts the approval markers stored under markerField.
func ApprovalsOf(rec models.Record, markerField string) models.ApprovalCounts {
	if markerField == "" {
		return models.ApprovalCounts{}
	}
	return models.CountMarkers(markers(FieldValue(rec, markerField)))
}

// MatchesCategory applies a filter bucket to the record's approval markers.
func MatchesCategory(rec models.Record, category models.FilterCategory, markerField string) bool {
	if category == "" || category == models.CategoryAll {
		return true
	}
	return inCategory(ApprovalsOf(rec, markerField), category)
}

func inCategory(c models.ApprovalCounts, category models.FilterCategory) bool {
	switch category {
	case models.CategoryWithApprovals:
		return c.Approved > 0
	case models.CategoryPendingApprovals:
		return c.Pending > 0 && c.Approved == 0 && c.Rejected == 0
	case models.CategoryNoApprovals:
		return c.Approved == 0 && c.Rejected == 0
	}
	return true
}

// Filter returns the records passing both the search and the category predicate, in their original order.
// The input slice is never modified.
func Filter(records []models.Record, state models.ViewState, cols []Column, markerField string) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if !MatchesSearch(rec, state.SearchTerm, cols) {
			continue
		}
		if !MatchesCategory(rec, state.FilterCategory, markerField) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
