package core

import (
	"slices"

	"provisionhub/models"
)

const (
	DefaultSearchPlaceholder = "Search..."
	DefaultEmptyMessage      = "No records match the current filters."
)

// Options configures one table instance.
type Options struct {
	SortCycle            models.SortCycle
	DefaultSortField     string
	DefaultSortDirection models.SortDirection
	MarkerField          string
	KeyField             string
	SearchPlaceholder    string
	EmptyMessage         string
}

type Option func(*Options)

func WithSortCycle(cycle models.SortCycle) Option {
	return func(o *Options) { o.SortCycle = cycle }
}

// WithDefaultSort sets the sort a table mounts with and returns to on Reset. SortNone is treated as ascending.
func WithDefaultSort(field string, dir models.SortDirection) Option {
	return func(o *Options) {
		o.DefaultSortField = field
		o.DefaultSortDirection = dir
	}
}

// WithMarkerField names the approval marker array used by category filters.
func WithMarkerField(field string) Option {
	return func(o *Options) { o.MarkerField = field }
}

func WithKeyField(field string) Option {
	return func(o *Options) { o.KeyField = field }
}

func WithSearchPlaceholder(s string) Option {
	return func(o *Options) { o.SearchPlaceholder = s }
}

func WithEmptyMessage(s string) Option {
	return func(o *Options) { o.EmptyMessage = s }
}

// WithSettings applies the project-wide table preferences. Empty texts keep the defaults.
func WithSettings(cycle models.SortCycle, placeholder, emptyMessage string) Option {
	return func(o *Options) {
		o.SortCycle = cycle
		if placeholder != "" {
			o.SearchPlaceholder = placeholder
		}
		if emptyMessage != "" {
			o.EmptyMessage = emptyMessage
		}
	}
}

// Config is the cosmetic configuration of a table. It has no effect on the derived view.
type Config struct {
	SearchPlaceholder string `json:"search_placeholder"`
	EmptyMessage      string `json:"empty_message"`
}

type derivedCache struct {
	generation uint64
	state      models.ViewState
	view       []models.Record
}

// Table owns the view state of one on-screen table and derives the rendered rows from it.
// The derived view is always Sort(Filter(records)) for the current state, rebuilt whenever
// the records or the state change. A Table is driven by a single writer and is not safe for concurrent use.
type Table struct {
	records    []models.Record
	columns    []Column
	opts       Options
	state      models.ViewState
	generation uint64
	cache      *derivedCache
}

func NewTable(records []models.Record, columns []Column, opts ...Option) *Table {
	o := Options{
		SortCycle:         models.SortCycleThreeState,
		KeyField:          "id",
		SearchPlaceholder: DefaultSearchPlaceholder,
		EmptyMessage:      DefaultEmptyMessage,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.DefaultSortField != "" && o.DefaultSortDirection == models.SortNone {
		o.DefaultSortDirection = models.SortAsc
	}
	if o.DefaultSortField == "" {
		o.DefaultSortDirection = models.SortNone
	}
	t := &Table{
		records: records,
		columns: slices.Clone(columns),
		opts:    o,
	}
	t.state = t.defaultState()
	return t
}

func (t *Table) defaultState() models.ViewState {
	s := models.DefaultViewState()
	s.SortField = t.opts.DefaultSortField
	s.SortDirection = t.opts.DefaultSortDirection
	if s.SortDirection == "" {
		s.SortDirection = models.SortNone
	}
	return s
}

// State returns a copy of the current view state.
func (t *Table) State() models.ViewState { return t.state }

func (t *Table) Options() Options { return t.opts }

func (t *Table) Config() Config {
	return Config{SearchPlaceholder: t.opts.SearchPlaceholder, EmptyMessage: t.opts.EmptyMessage}
}

func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

// Records returns the unfiltered record set in its original order.
func (t *Table) Records() []models.Record { return slices.Clone(t.records) }

// SetSearchTerm replaces the search term.
func (t *Table) SetSearchTerm(term string) {
	t.state.SearchTerm = term
}

// SetSortField sets the sort outright. An empty field or SortNone means unsorted.
func (t *Table) SetSortField(field string, dir models.SortDirection) {
	if field == "" || dir == models.SortNone || dir == "" {
		t.state.SortField = ""
		t.state.SortDirection = models.SortNone
		return
	}
	t.state.SortField = field
	t.state.SortDirection = dir
}

// ToggleSort applies a header click on field. It returns false, leaving the state alone,
// when field is not a sortable column.
func (t *Table) ToggleSort(field string) bool {
	col, ok := findColumn(t.columns, field)
	if !ok || !col.Sortable {
		return false
	}
	same := t.state.SortField == field
	next := NextDirection(t.opts.SortCycle, t.state.SortDirection, same)
	t.SetSortField(field, next)
	return true
}

// SetFilterCategory replaces the approval filter bucket.
func (t *Table) SetFilterCategory(category models.FilterCategory) {
	if category == "" {
		category = models.CategoryAll
	}
	t.state.FilterCategory = category
}

// Reset restores every view state field to its default at once.
func (t *Table) Reset() {
	t.state = t.defaultState()
}

// SetRecords swaps the underlying record set, e.g. when another cluster is selected.
// The view state starts over as for a newly mounted table.
func (t *Table) SetRecords(records []models.Record) {
	t.records = records
	t.generation++
	t.state = t.defaultState()
}

// DerivedView returns the rows to render. The result is memoized on the exact records and state;
// callers get their own slice.
func (t *Table) DerivedView() []models.Record {
	if c := t.cache; c != nil && c.generation == t.generation && c.state == t.state {
		return slices.Clone(c.view)
	}
	view := Sort(Filter(t.records, t.state, t.columns, t.opts.MarkerField), t.state.SortField, t.state.SortDirection)
	t.cache = &derivedCache{generation: t.generation, state: t.state, view: view}
	return slices.Clone(view)
}

// IsEmpty reports whether the derived view has no rows, in which case the empty message is shown.
func (t *Table) IsEmpty() bool {
	return len(t.DerivedView()) == 0
}

// Response packages the derived view for the API and CLI renderers.
func (t *Table) Response(dataset string) models.TableViewResponse {
	view := t.DerivedView()
	resp := models.TableViewResponse{
		Dataset:       dataset,
		State:         t.state,
		TotalRecords:  len(t.records),
		FilteredCount: len(view),
		Records:       view,
	}
	if len(view) == 0 {
		resp.EmptyMessage = t.opts.EmptyMessage
	}
	return resp
}
