package core

import (
	"cmp"
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"provisionhub/models"
)

// Comparator orders two field values. A Comparator owns a collator and must not be shared between goroutines.
type Comparator struct {
	col *collate.Collator
}

// NewComparator collates strings in English ignoring case, width and diacritics.
func NewComparator() *Comparator {
	return &Comparator{col: collate.New(language.English, collate.Loose)}
}

// Compare returns a negative number, zero or a positive number.
// Strings collate by locale, numbers compare numerically, anything else collates by its string form.
func (c *Comparator) Compare(a, b any) int {
	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return c.col.CompareString(as, bs)
	}
	if ai, ok := toInt64(a); ok {
		if bi, ok := toInt64(b); ok {
			return cmp.Compare(ai, bi)
		}
	}
	if af, ok := toFloat64(a); ok {
		if bf, ok := toFloat64(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	return c.col.CompareString(Stringify(a), Stringify(b))
}

var (
	sharedMu  sync.Mutex
	sharedCmp = NewComparator()
)

// Compare orders a and b with a package-wide Comparator. Hot loops should hold their own Comparator instead.
func Compare(a, b any) int {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	return sharedCmp.Compare(a, b)
}

// Sort returns a stably sorted copy of records. With no field or SortNone the copy keeps the input order.
func Sort(records []models.Record, field string, dir models.SortDirection) []models.Record {
	out := slices.Clone(records)
	if out == nil {
		out = []models.Record{}
	}
	if field == "" || dir == models.SortNone {
		return out
	}
	c := NewComparator()
	slices.SortStableFunc(out, func(a, b models.Record) int {
		r := c.Compare(FieldValue(a, field), FieldValue(b, field))
		if dir == models.SortDesc {
			return -r
		}
		return r
	})
	return out
}

// NextDirection is the direction after a header click.
// Clicking another column always starts ascending.
func NextDirection(cycle models.SortCycle, current models.SortDirection, sameField bool) models.SortDirection {
	if !sameField {
		return models.SortAsc
	}
	switch current {
	case models.SortAsc:
		return models.SortDesc
	case models.SortDesc:
		if cycle == models.SortCycleTwoState {
			return models.SortAsc
		}
		return models.SortNone
	}
	return models.SortAsc
}
