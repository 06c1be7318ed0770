package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a filter category name is not one of FilterCategories.
var ErrUnknownCategory = errors.New("unknown filter category")

// SortDirection is the direction of the active sort. SortNone keeps the original record order.
type SortDirection string

const (
	SortNone SortDirection = "none"
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts asc/ascending and desc/descending in any case. Empty input and "none" yield SortNone.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "asc", "ascending":
		return SortAsc, nil
	case "desc", "descending":
		return SortDesc, nil
	}
	return SortNone, fmt.Errorf("invalid sort direction %q", s)
}

// Arrow returns the header indicator for the direction.
func (d SortDirection) Arrow() string {
	switch d {
	case SortAsc:
		return "▲"
	case SortDesc:
		return "▼"
	}
	return ""
}

// FilterCategory selects a predicate bucket over a record's approval markers.
type FilterCategory string

const (
	CategoryAll              FilterCategory = "all"
	CategoryWithApprovals    FilterCategory = "with-approvals"
	CategoryPendingApprovals FilterCategory = "pending-approvals"
	CategoryNoApprovals      FilterCategory = "no-approvals"
)

// FilterCategories lists the buckets in the order filter pills are shown.
var FilterCategories = []FilterCategory{
	CategoryAll,
	CategoryWithApprovals,
	CategoryPendingApprovals,
	CategoryNoApprovals,
}

// ParseFilterCategory maps a category name to its FilterCategory. Empty input is CategoryAll.
func ParseFilterCategory(s string) (FilterCategory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll, nil
	}
	for _, c := range FilterCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return CategoryAll, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Label is the human readable pill text.
func (c FilterCategory) Label() string {
	switch c {
	case CategoryWithApprovals:
		return "With approvals"
	case CategoryPendingApprovals:
		return "Pending approvals"
	case CategoryNoApprovals:
		return "No approvals"
	}
	return "All"
}

// SortCycle decides what clicking the active sort column does.
// SortCycleThreeState goes asc -> desc -> none, SortCycleTwoState toggles asc <-> desc.
type SortCycle string

const (
	SortCycleThreeState SortCycle = "three-state"
	SortCycleTwoState   SortCycle = "two-state"
)

func ParseSortCycle(s string) (SortCycle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "three-state", "three", "3":
		return SortCycleThreeState, nil
	case "two-state", "two", "2":
		return SortCycleTwoState, nil
	}
	return SortCycleThreeState, fmt.Errorf("invalid sort cycle %q", s)
}

// ViewState is the per-table control state. It is always replaced or reset as a whole.
type ViewState struct {
	SearchTerm     string         `json:"search_term"`
	SortField      string         `json:"sort_field"`
	SortDirection  SortDirection  `json:"sort_direction"`
	FilterCategory FilterCategory `json:"filter_category"`
}

// DefaultViewState is the state of a freshly mounted table with no default sort.
func DefaultViewState() ViewState {
	return ViewState{
		SortDirection:  SortNone,
		FilterCategory: CategoryAll,
	}
}

// Sorted reports whether the state asks for any reordering.
func (s ViewState) Sorted() bool {
	return s.SortField != "" && s.SortDirection != SortNone
}
