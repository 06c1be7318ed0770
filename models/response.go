package models

// ErrorResponse is a generic error response structure for API
type ErrorResponse struct {
	Message string `json:"message" example:"Error message describing the issue"`
}

// TableInfo describes one browsable table.
type TableInfo struct {
	Name              string             `json:"name" example:"services"`
	Title             string             `json:"title" example:"Services"`
	KeyField          string             `json:"key_field"`
	Columns           []ColumnDescriptor `json:"columns"`
	Categories        []FilterCategory   `json:"categories,omitempty"`
	SortCycle         SortCycle          `json:"sort_cycle"`
	SearchPlaceholder string             `json:"search_placeholder"`
	EmptyMessage      string             `json:"empty_message"`
}

// TableViewResponse is a derived view along with the state that produced it.
type TableViewResponse struct {
	Dataset       string    `json:"dataset"`
	State         ViewState `json:"state"`
	TotalRecords  int       `json:"total_records"`
	FilteredCount int       `json:"filtered_count"`
	EmptyMessage  string    `json:"empty_message,omitempty"` // set only when Records is empty
	Records       []Record  `json:"records"`
}

// ViewSessionResponse wraps a derived view held by the server under a view ID.
type ViewSessionResponse struct {
	ViewID    string            `json:"view_id"`
	ClusterID int64             `json:"cluster_id,omitempty"`
	View      TableViewResponse `json:"view"`
}

// Summary holds the metric card counts for one record set.
type Summary struct {
	Dataset          string         `json:"dataset"`
	TotalRecords     int            `json:"total_records"`
	WithApprovals    int            `json:"with_approvals"`
	PendingApprovals int            `json:"pending_approvals"`
	NoApprovals      int            `json:"no_approvals"`
	Markers          ApprovalCounts `json:"markers"`
}
