package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisionhub/models"
)

func TestTable_DefaultsAndConfig(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns())
	assert.Equal(t, models.DefaultViewState(), tbl.State())
	assert.Equal(t, sampleRecords(), tbl.DerivedView())
	assert.Equal(t, DefaultSearchPlaceholder, tbl.Config().SearchPlaceholder)
	assert.Equal(t, DefaultEmptyMessage, tbl.Config().EmptyMessage)
}

func TestTable_SearchScenario(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns())
	tbl.SetSearchTerm("alp")
	assert.Equal(t, []any{1}, ids(tbl.DerivedView()))
}

func TestTable_SortScenario(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns())
	tbl.SetSortField("name", models.SortAsc)
	tbl.SetSortField("count", models.SortAsc)
	assert.Equal(t, []any{2, 3, 1}, ids(tbl.DerivedView()))
}

func TestTable_ToggleSortThreeState(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns())

	require.True(t, tbl.ToggleSort("name"))
	assert.Equal(t, models.ViewState{SortField: "name", SortDirection: models.SortAsc, FilterCategory: models.CategoryAll}, tbl.State())

	require.True(t, tbl.ToggleSort("name"))
	assert.Equal(t, models.SortDesc, tbl.State().SortDirection)
	assert.Equal(t, []any{3, 2, 1}, ids(tbl.DerivedView()))

	require.True(t, tbl.ToggleSort("name"))
	assert.Equal(t, "", tbl.State().SortField)
	assert.Equal(t, models.SortNone, tbl.State().SortDirection)
	assert.Equal(t, []any{1, 2, 3}, ids(tbl.DerivedView()))

	require.True(t, tbl.ToggleSort("name"))
	assert.Equal(t, models.SortAsc, tbl.State().SortDirection)

	require.True(t, tbl.ToggleSort("count"))
	assert.Equal(t, "count", tbl.State().SortField)
	assert.Equal(t, models.SortAsc, tbl.State().SortDirection)
}

func TestTable_ToggleSortTwoState(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns(), WithSortCycle(models.SortCycleTwoState))
	tbl.ToggleSort("count")
	tbl.ToggleSort("count")
	assert.Equal(t, models.SortDesc, tbl.State().SortDirection)
	tbl.ToggleSort("count")
	assert.Equal(t, models.SortAsc, tbl.State().SortDirection)
	assert.Equal(t, "count", tbl.State().SortField)
}

func TestTable_ToggleSortIgnoresUnsortable(t *testing.T) {
	cols := append(sampleColumns(), Column{Key: "notes", Label: "Notes", Searchable: true})
	tbl := NewTable(sampleRecords(), cols)
	assert.False(t, tbl.ToggleSort("notes"))
	assert.False(t, tbl.ToggleSort("nope"))
	assert.Equal(t, models.DefaultViewState(), tbl.State())
}

func TestTable_ResetRestoresOriginalOrder(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns(), WithMarkerField("approvals"))
	tbl.SetSearchTerm("a")
	tbl.ToggleSort("count")
	tbl.SetFilterCategory(models.CategoryNoApprovals)
	_ = tbl.DerivedView()

	tbl.Reset()
	assert.Equal(t, models.DefaultViewState(), tbl.State())
	assert.Equal(t, sampleRecords(), tbl.DerivedView())
}

func TestTable_ResetReturnsToDefaultSort(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns(), WithDefaultSort("count", models.SortNone))
	assert.Equal(t, models.SortAsc, tbl.State().SortDirection)
	tbl.ToggleSort("name")
	tbl.Reset()
	assert.Equal(t, "count", tbl.State().SortField)
	assert.Equal(t, []any{2, 3, 1}, ids(tbl.DerivedView()))
}

func TestTable_CategoryAllIsIdentity(t *testing.T) {
	recs := []models.Record{
		{"id": 1, "approvals": []string{"✓", "-", "-", "-", "✗"}},
		{"id": 2, "approvals": []string{"-", "-", "-", "-", "-"}},
		{"id": 3, "approvals": []string{"✗", "✗", "-", "✗", "✗"}},
	}
	tbl := NewTable(recs, sampleColumns(), WithMarkerField("approvals"))
	tbl.SetFilterCategory(models.CategoryAll)
	assert.Equal(t, recs, tbl.DerivedView())

	tbl.SetFilterCategory(models.CategoryWithApprovals)
	assert.Equal(t, []any{1}, ids(tbl.DerivedView()))
	tbl.SetFilterCategory(models.CategoryPendingApprovals)
	assert.Equal(t, []any{2}, ids(tbl.DerivedView()))
	tbl.SetFilterCategory(models.CategoryNoApprovals)
	assert.Equal(t, []any{2}, ids(tbl.DerivedView()))
}

func TestTable_DerivedViewIsRecomputedNotPatched(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns())
	first := tbl.DerivedView()
	first[0] = models.Record{"id": 99}
	assert.Equal(t, []any{1, 2, 3}, ids(tbl.DerivedView()), "caller edits must not leak into the cache")

	tbl.SetSearchTerm("zzz")
	assert.True(t, tbl.IsEmpty())
	tbl.SetSearchTerm("")
	assert.Equal(t, []any{1, 2, 3}, ids(tbl.DerivedView()))
}

func TestTable_SetRecordsResetsState(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns())
	tbl.SetSearchTerm("beta")
	require.Len(t, tbl.DerivedView(), 1)

	next := []models.Record{{"id": 7, "name": "beta"}, {"id": 8, "name": "delta"}}
	tbl.SetRecords(next)
	assert.Equal(t, models.DefaultViewState(), tbl.State())
	assert.Equal(t, []any{7, 8}, ids(tbl.DerivedView()))
}

func TestTable_ResponseCarriesEmptyMessage(t *testing.T) {
	tbl := NewTable(sampleRecords(), sampleColumns(), WithEmptyMessage("Nothing here"))
	tbl.SetSearchTerm("nothing-matches")
	resp := tbl.Response("demo")
	assert.Equal(t, 3, resp.TotalRecords)
	assert.Equal(t, 0, resp.FilteredCount)
	assert.Equal(t, "Nothing here", resp.EmptyMessage)
	assert.NotNil(t, resp.Records)

	tbl.Reset()
	assert.Empty(t, tbl.Response("demo").EmptyMessage)
}

func TestTable_WithSettings(t *testing.T) {
	spec, ok := LookupSpec(DatasetServices)
	require.True(t, ok)

	tbl := spec.NewTable(nil, WithSettings(models.SortCycleTwoState, "", ""))
	assert.Equal(t, models.SortCycleTwoState, tbl.Options().SortCycle)
	assert.Equal(t, "Search services...", tbl.Config().SearchPlaceholder)
	assert.Equal(t, DefaultEmptyMessage, tbl.Config().EmptyMessage)

	tbl = spec.NewTable(nil, WithSettings(models.SortCycleThreeState, "Find...", "Nothing here."))
	assert.Equal(t, Config{SearchPlaceholder: "Find...", EmptyMessage: "Nothing here."}, tbl.Config())
	assert.True(t, tbl.IsEmpty())
}
