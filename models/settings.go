package models

// CurrentClusterIDKey is the database setting key used to store the ID of the cluster whose members are browsed.
const CurrentClusterIDKey = "current_cluster_id"

// TableLayoutsKey is the key used in app_settings for the per-table column layouts.
const TableLayoutsKey = "table_layouts"

// ColumnLayout is the user's display preference for one column. The zero value shows the column at its natural width.
type ColumnLayout struct {
	Width  int  `json:"width,omitempty"`
	Hidden bool `json:"hidden,omitempty"`
}

// TableLayout holds the column preferences of one table.
type TableLayout struct {
	Columns  map[string]ColumnLayout `json:"columns"`            // Maps column key to its layout
	PageSize int                     `json:"pageSize,omitempty"` // omitempty if pageSize is optional or not always present
}

// Column returns the layout for key, the zero layout when none is stored.
func (l TableLayout) Column(key string) ColumnLayout {
	return l.Columns[key]
}

// AllTableLayouts maps a dataset name to its layout.
type AllTableLayouts map[string]TableLayout
