package models

// Approval markers found in the fixed-size approval arrays of services and sets.
const (
	MarkerApproved = "✓"
	MarkerRejected = "✗"
	MarkerPending  = "-"
)

// ApprovalSlots is the number of approval stages tracked per record.
const ApprovalSlots = 5

// ApprovalCounts tallies the markers of one approval array.
type ApprovalCounts struct {
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

// CountMarkers counts known markers; unknown symbols are ignored.
func CountMarkers(markers []string) ApprovalCounts {
	var c ApprovalCounts
	for _, m := range markers {
		switch m {
		case MarkerApproved:
			c.Approved++
		case MarkerRejected:
			c.Rejected++
		case MarkerPending:
			c.Pending++
		}
	}
	return c
}
