package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisionhub/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{"id": 1, "name": "Alpha", "count": 10},
		{"id": 2, "name": "beta", "count": 5},
		{"id": 3, "name": "Gamma", "count": 5},
	}
}

func sampleColumns() []Column {
	return []Column{
		{Key: "id", Label: "ID", Sortable: true},
		{Key: "name", Label: "Name", Searchable: true, Sortable: true},
		{Key: "count", Label: "Count", Sortable: true},
	}
}

func ids(records []models.Record) []any {
	out := make([]any, 0, len(records))
	for _, r := range records {
		out = append(out, r["id"])
	}
	return out
}

func TestMatchesSearch_EmptyTermIsIdentity(t *testing.T) {
	recs := sampleRecords()
	got := Filter(recs, models.DefaultViewState(), sampleColumns(), "")
	assert.Equal(t, recs, got)
}

func TestMatchesSearch_CaseInsensitiveSubstring(t *testing.T) {
	state := models.DefaultViewState()
	state.SearchTerm = "alp"
	got := Filter(sampleRecords(), state, sampleColumns(), "")
	assert.Equal(t, []any{1}, ids(got))

	state.SearchTerm = "AM"
	got = Filter(sampleRecords(), state, sampleColumns(), "")
	assert.Equal(t, []any{3}, ids(got))
}

func TestMatchesSearch_OnlySearchableColumns(t *testing.T) {
	rec := models.Record{"id": 10, "name": "Delta"}
	assert.False(t, MatchesSearch(rec, "10", sampleColumns()), "id column is not searchable")
	assert.True(t, MatchesSearch(rec, "elt", sampleColumns()))
}

func TestMatchesSearch_MissingFieldIsEmptyString(t *testing.T) {
	rec := models.Record{"id": 4}
	assert.False(t, MatchesSearch(rec, "x", sampleColumns()))
	assert.True(t, MatchesSearch(rec, "", sampleColumns()))
}

func TestMatchesSearch_SoundnessAndCompleteness(t *testing.T) {
	cols := sampleColumns()
	recs := append(sampleRecords(), models.Record{"id": 4, "name": "ALPINE"}, models.Record{"id": 5})
	for _, term := range []string{"a", "al", "ph", "zzz", "E"} {
		state := models.DefaultViewState()
		state.SearchTerm = term
		kept := Filter(recs, state, cols, "")
		keptIDs := map[any]bool{}
		for _, r := range kept {
			keptIDs[r["id"]] = true
			assert.True(t, MatchesSearch(r, term, cols), "kept record %v must match %q", r["id"], term)
		}
		for _, r := range recs {
			if !keptIDs[r["id"]] {
				assert.False(t, MatchesSearch(r, term, cols), "dropped record %v must not match %q", r["id"], term)
			}
		}
	}
}

func TestMatchesCategory_Buckets(t *testing.T) {
	withApproval := models.Record{"approvals": []string{"✓", "-", "-", "-", "✗"}}
	allPending := models.Record{"approvals": []string{"-", "-", "-", "-", "-"}}
	rejected := models.Record{"approvals": []string{"✗", "✗", "-", "✗", "✗"}}
	noField := models.Record{"name": "x"}

	cases := []struct {
		name string
		rec  models.Record
		want map[models.FilterCategory]bool
	}{
		{"approved", withApproval, map[models.FilterCategory]bool{
			models.CategoryAll: true, models.CategoryWithApprovals: true,
			models.CategoryPendingApprovals: false, models.CategoryNoApprovals: false,
		}},
		{"pending", allPending, map[models.FilterCategory]bool{
			models.CategoryAll: true, models.CategoryWithApprovals: false,
			models.CategoryPendingApprovals: true, models.CategoryNoApprovals: true,
		}},
		{"rejected", rejected, map[models.FilterCategory]bool{
			models.CategoryAll: true, models.CategoryWithApprovals: false,
			models.CategoryPendingApprovals: false, models.CategoryNoApprovals: false,
		}},
		{"missing markers", noField, map[models.FilterCategory]bool{
			models.CategoryAll: true, models.CategoryWithApprovals: false,
			models.CategoryPendingApprovals: false, models.CategoryNoApprovals: true,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for cat, want := range tc.want {
				assert.Equal(t, want, MatchesCategory(tc.rec, cat, "approvals"), "category %s", cat)
			}
		})
	}
}

func TestMatchesCategory_ApprovalBucketOverlap(t *testing.T) {
	// with-approvals is disjoint from the other two; an all-pending array is both pending and no-approvals.
	cases := []struct {
		arr                []string
		with, pending, not bool
	}{
		{[]string{"✓", "-", "-", "-", "✗"}, true, false, false},
		{[]string{"-", "-", "-", "-", "-"}, false, true, true},
		{[]string{"✗", "✗", "-", "✗", "✗"}, false, false, false},
	}
	for _, tc := range cases {
		rec := models.Record{"approvals": tc.arr}
		with := MatchesCategory(rec, models.CategoryWithApprovals, "approvals")
		pending := MatchesCategory(rec, models.CategoryPendingApprovals, "approvals")
		not := MatchesCategory(rec, models.CategoryNoApprovals, "approvals")
		assert.Equal(t, tc.with, with, "%v with-approvals", tc.arr)
		assert.Equal(t, tc.pending, pending, "%v pending-approvals", tc.arr)
		assert.Equal(t, tc.not, not, "%v no-approvals", tc.arr)
		if with {
			assert.False(t, pending || not, "%v must not share a bucket with with-approvals", tc.arr)
		}
	}
}

func TestMatchesCategory_DecodedJSONArrays(t *testing.T) {
	rec := models.Record{"approvals": []any{"✓", "-", 3}}
	assert.True(t, MatchesCategory(rec, models.CategoryWithApprovals, "approvals"))
}

func TestFilter_SearchAndCategoryCombine(t *testing.T) {
	recs := []models.Record{
		{"id": 1, "name": "Cardio", "approvals": []string{"✓", "-", "-", "-", "-"}},
		{"id": 2, "name": "Cardiac", "approvals": []string{"-", "-", "-", "-", "-"}},
		{"id": 3, "name": "Derm", "approvals": []string{"✓", "✓", "-", "-", "-"}},
	}
	state := models.DefaultViewState()
	state.SearchTerm = "card"
	state.FilterCategory = models.CategoryWithApprovals
	got := Filter(recs, state, sampleColumns(), "approvals")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0]["id"])
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "12", Stringify(int64(12)))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "✓-✗", Stringify([]string{"✓", "-", "✗"}))
}
