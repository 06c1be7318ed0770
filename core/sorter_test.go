package core

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"provisionhub/models"
)

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare("alpha", "Beta"))
	assert.Positive(t, Compare("gamma", "Beta"))
	assert.Negative(t, Compare(5, 10), "numbers compare numerically, not lexically")
	assert.Negative(t, Compare(int64(2), 2.5))
	assert.Zero(t, Compare(3, 3.0))
	assert.Negative(t, Compare(nil, "a"), "missing value sorts as empty string")
	assert.Positive(t, Compare("9", 10), "mixed types fall back to string form")
}

func TestSort_DisabledKeepsOrder(t *testing.T) {
	recs := sampleRecords()
	assert.Equal(t, recs, Sort(recs, "", models.SortAsc))
	assert.Equal(t, recs, Sort(recs, "name", models.SortNone))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	recs := sampleRecords()
	before := slices.Clone(recs)
	_ = Sort(recs, "name", models.SortDesc)
	assert.Equal(t, before, recs)
}

func TestSort_StableOnTies(t *testing.T) {
	got := Sort(sampleRecords(), "count", models.SortAsc)
	assert.Equal(t, []any{2, 3, 1}, ids(got))

	got = Sort(sampleRecords(), "count", models.SortDesc)
	assert.Equal(t, []any{1, 2, 3}, ids(got), "ties keep input order in descending sorts too")
}

func TestSort_LocaleAwareStrings(t *testing.T) {
	got := Sort(sampleRecords(), "name", models.SortAsc)
	assert.Equal(t, []any{1, 2, 3}, ids(got), "Alpha < beta < Gamma regardless of case")
}

func TestSort_LooseCollationKeepsCaseVariantsStable(t *testing.T) {
	assert.Zero(t, Compare("MRI Scan", "mri scan"))
	assert.Zero(t, Compare("résumé", "resume"))

	recs := []models.Record{{"id": 1, "name": "mri"}, {"id": 2, "name": "CT"}, {"id": 3, "name": "MRI"}, {"id": 4, "name": "ct"}}
	assert.Equal(t, []any{2, 4, 1, 3}, ids(Sort(recs, "name", models.SortAsc)))
	assert.Equal(t, []any{1, 3, 2, 4}, ids(Sort(recs, "name", models.SortDesc)))
}

func TestSort_Idempotent(t *testing.T) {
	once := Sort(sampleRecords(), "count", models.SortDesc)
	twice := Sort(once, "count", models.SortDesc)
	assert.Equal(t, once, twice)
}

func TestSort_DirectionSymmetryWithoutTies(t *testing.T) {
	asc := Sort(sampleRecords(), "name", models.SortAsc)
	desc := Sort(sampleRecords(), "name", models.SortDesc)
	slices.Reverse(asc)
	assert.Equal(t, asc, desc)
}

func TestSort_MissingFieldTreatedAsEmpty(t *testing.T) {
	recs := []models.Record{{"id": 1, "name": "b"}, {"id": 2}, {"id": 3, "name": "a"}}
	got := Sort(recs, "name", models.SortAsc)
	assert.Equal(t, []any{2, 3, 1}, ids(got))
}

func TestNextDirection(t *testing.T) {
	three := models.SortCycleThreeState
	two := models.SortCycleTwoState

	assert.Equal(t, models.SortAsc, NextDirection(three, models.SortDesc, false))
	assert.Equal(t, models.SortDesc, NextDirection(three, models.SortAsc, true))
	assert.Equal(t, models.SortNone, NextDirection(three, models.SortDesc, true))
	assert.Equal(t, models.SortAsc, NextDirection(three, models.SortNone, true))

	assert.Equal(t, models.SortDesc, NextDirection(two, models.SortAsc, true))
	assert.Equal(t, models.SortAsc, NextDirection(two, models.SortDesc, true))
}
