package core

import (
	"fmt"
	"strconv"
	"strings"

	"provisionhub/models"
)

// Dataset names served by the hub.
const (
	DatasetServices       = "services"
	DatasetServiceGroups  = "service-groups"
	DatasetClusters       = "clusters"
	DatasetClusterMembers = "cluster-members"
	DatasetAbcdSets       = "abcd-sets"
)

// TableSpec is the per-page configuration of the shared engine.
type TableSpec struct {
	Name                 string
	Title                string
	KeyField             string
	MarkerField          string // empty when the page has no approval filter
	DefaultSortField     string
	DefaultSortDirection models.SortDirection
	Columns              []Column
}

// HasCategories reports whether the page shows approval filter pills.
func (s TableSpec) HasCategories() bool { return s.MarkerField != "" }

// NewTable mounts a table for this page over records.
func (s TableSpec) NewTable(records []models.Record, opts ...Option) *Table {
	base := []Option{
		WithKeyField(s.KeyField),
		WithMarkerField(s.MarkerField),
		WithDefaultSort(s.DefaultSortField, s.DefaultSortDirection),
		WithSearchPlaceholder(fmt.Sprintf("Search %s...", strings.ToLower(s.Title))),
	}
	return NewTable(records, s.Columns, append(base, opts...)...)
}

// Column looks up a column of the page by key.
func (s TableSpec) Column(key string) (Column, bool) { return findColumn(s.Columns, key) }

// Info describes the page for the catalog endpoint.
func (s TableSpec) Info(cycle models.SortCycle) models.TableInfo {
	info := models.TableInfo{
		Name:              s.Name,
		Title:             s.Title,
		KeyField:          s.KeyField,
		SortCycle:         cycle,
		SearchPlaceholder: fmt.Sprintf("Search %s...", strings.ToLower(s.Title)),
		EmptyMessage:      DefaultEmptyMessage,
	}
	for _, c := range s.Columns {
		info.Columns = append(info.Columns, c.Descriptor())
	}
	if s.HasCategories() {
		info.Categories = models.FilterCategories
	}
	return info
}

func renderMarkers(v any, _ models.Record) string {
	return Stringify(markers(v))
}

func renderYesNo(v any, _ models.Record) string {
	if b, ok := v.(bool); ok && b {
		return "yes"
	}
	return "no"
}

func renderMoney(v any, _ models.Record) string {
	if f, ok := toFloat64(v); ok {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return Stringify(v)
}

func renderPercent(v any, _ models.Record) string {
	if f, ok := toFloat64(v); ok {
		return strconv.FormatFloat(f*100, 'f', 0, 64) + "%"
	}
	return Stringify(v)
}

var catalog = []TableSpec{
	{
		Name:        DatasetServices,
		Title:       "Services",
		KeyField:    "id",
		MarkerField: "approvals",
		Columns: []Column{
			{Key: "code", Label: "Code", Searchable: true, Sortable: true},
			{Key: "name", Label: "Service", Searchable: true, Sortable: true},
			{Key: "group_name", Label: "Group", Searchable: true, Sortable: true},
			{Key: "category", Label: "Category", Searchable: true, Sortable: true},
			{Key: "provision_count", Label: "Provisions", Sortable: true},
			{Key: "unit_cost", Label: "Unit cost", Sortable: true, Render: renderMoney},
			{Key: "approvals", Label: "Approvals", Render: renderMarkers},
		},
	},
	{
		Name:        DatasetServiceGroups,
		Title:       "Service Groups",
		KeyField:    "id",
		MarkerField: "approvals",
		Columns: []Column{
			{Key: "code", Label: "Code", Searchable: true, Sortable: true},
			{Key: "name", Label: "Group", Searchable: true, Sortable: true},
			{Key: "description", Label: "Description", Searchable: true},
			{Key: "service_count", Label: "Services", Sortable: true},
			{Key: "approvals", Label: "Approvals", Render: renderMarkers},
		},
	},
	{
		Name:     DatasetClusters,
		Title:    "Clusters",
		KeyField: "id",
		Columns: []Column{
			{Key: "code", Label: "Code", Searchable: true, Sortable: true},
			{Key: "name", Label: "Cluster", Searchable: true, Sortable: true},
			{Key: "region", Label: "Region", Searchable: true, Sortable: true},
			{Key: "member_count", Label: "Members", Sortable: true},
			{Key: "cohesion", Label: "Cohesion", Sortable: true, Render: renderPercent},
		},
	},
	{
		Name:        DatasetClusterMembers,
		Title:       "Cluster Members",
		KeyField:    "id",
		MarkerField: "approvals",
		Columns: []Column{
			{Key: "service_code", Label: "Code", Searchable: true, Sortable: true},
			{Key: "service_name", Label: "Service", Searchable: true, Sortable: true},
			{Key: "similarity", Label: "Similarity", Sortable: true, Render: renderPercent},
			{Key: "approvals", Label: "Approvals", Render: renderMarkers},
		},
	},
	{
		Name:        DatasetAbcdSets,
		Title:       "ABCD Sets",
		KeyField:    "id",
		MarkerField: "approvals",
		Columns: []Column{
			{Key: "code", Label: "Code", Searchable: true, Sortable: true},
			{Key: "name", Label: "Set", Searchable: true, Sortable: true},
			{Key: "class", Label: "Class", Searchable: true, Sortable: true},
			{Key: "service_count", Label: "Services", Sortable: true},
			{Key: "active", Label: "Active", Sortable: true, Render: renderYesNo},
			{Key: "approvals", Label: "Approvals", Render: renderMarkers},
		},
	},
}

// Catalog returns every page configuration in menu order.
func Catalog() []TableSpec {
	out := make([]TableSpec, len(catalog))
	copy(out, catalog)
	return out
}

// LookupSpec finds a page configuration by dataset name.
func LookupSpec(name string) (TableSpec, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return TableSpec{}, false
}
