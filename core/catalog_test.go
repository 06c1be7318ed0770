package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisionhub/models"
)

func TestCatalog_SpecsAreConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range Catalog() {
		assert.False(t, seen[spec.Name], "duplicate dataset %s", spec.Name)
		seen[spec.Name] = true
		require.NotEmpty(t, spec.Columns, spec.Name)
		if spec.DefaultSortField != "" {
			col, ok := findColumn(spec.Columns, spec.DefaultSortField)
			assert.True(t, ok && col.Sortable, "%s default sort must be a sortable column", spec.Name)
		}
	}
	for _, name := range []string{DatasetServices, DatasetServiceGroups, DatasetClusters, DatasetClusterMembers, DatasetAbcdSets} {
		_, ok := LookupSpec(name)
		assert.True(t, ok, name)
	}
	_, ok := LookupSpec("patients")
	assert.False(t, ok)
}

func TestCatalog_InfoAndRenderers(t *testing.T) {
	spec, ok := LookupSpec(DatasetAbcdSets)
	require.True(t, ok)
	info := spec.Info(models.SortCycleTwoState)
	assert.Equal(t, models.SortCycleTwoState, info.SortCycle)
	assert.Equal(t, models.FilterCategories, info.Categories)
	assert.Equal(t, "Search abcd sets...", info.SearchPlaceholder)

	rec := models.Record{"active": true, "approvals": []any{"✓", "-"}}
	cells := map[string]string{}
	for _, c := range spec.Columns {
		cells[c.Key] = c.Cell(rec)
	}
	assert.Equal(t, "yes", cells["active"])
	assert.Equal(t, "✓-", cells["approvals"])
	assert.Equal(t, "", cells["name"])

	clusters, _ := LookupSpec(DatasetClusters)
	assert.Nil(t, clusters.Info(models.SortCycleThreeState).Categories)
}

func TestSummarize(t *testing.T) {
	recs := []models.Record{
		{"approvals": []string{"✓", "-", "-", "-", "✗"}},
		{"approvals": []string{"-", "-", "-", "-", "-"}},
		{"approvals": []string{"✗", "✗", "-", "✗", "✗"}},
		{},
	}
	s := Summarize(DatasetServices, recs, "approvals")
	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 1, s.WithApprovals)
	assert.Equal(t, 1, s.PendingApprovals)
	assert.Equal(t, 2, s.NoApprovals)
	assert.Equal(t, models.ApprovalCounts{Approved: 1, Rejected: 5, Pending: 9}, s.Markers)
}

func TestTableSpec_Column(t *testing.T) {
	spec, _ := LookupSpec(DatasetServices)
	col, ok := spec.Column("unit_cost")
	require.True(t, ok)
	assert.Equal(t, "120.50", col.Cell(models.Record{"unit_cost": 120.5}))
	_, ok = spec.Column("nope")
	assert.False(t, ok)
}
