package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisionhub/core"
	"provisionhub/models"
)

func servicesTable(t *testing.T) (core.TableSpec, *core.Table) {
	t.Helper()
	spec, ok := core.LookupSpec(core.DatasetServices)
	require.True(t, ok)
	records := []models.Record{
		{"id": int64(1), "code": "SVC-1", "name": "MRI Scan", "unit_cost": 120.5, "approvals": []string{"✓", "-"}},
		{"id": int64(2), "code": "SVC-2", "name": "CT Scan", "unit_cost": 99.0, "approvals": []string{"-", "-"}},
		{"id": int64(3), "code": "SVC-3", "name": "Physiotherapy", "unit_cost": 45.0, "approvals": []string{"✗"}},
	}
	return spec, spec.NewTable(records)
}

func TestApplyFlagsAndRenderTable(t *testing.T) {
	spec, tbl := servicesTable(t)
	require.NoError(t, applyFlags(tbl, spec, "scan", "name", "desc", "all"))

	var buf bytes.Buffer
	require.NoError(t, renderView(&buf, spec.Name, tbl, "table"))
	out := buf.String()
	assert.Contains(t, out, "SERVICE ▼")
	assert.Less(t, strings.Index(out, "MRI Scan"), strings.Index(out, "CT Scan"))
	assert.NotContains(t, out, "Physiotherapy")
	assert.Contains(t, out, "✓-")
	assert.Contains(t, out, "(2 of 3 rows)")
}

func TestApplyFlags_Errors(t *testing.T) {
	spec, tbl := servicesTable(t)
	assert.Error(t, applyFlags(tbl, spec, "", "approvals", "asc", "all"))
	assert.ErrorIs(t, applyFlags(tbl, spec, "", "", "", "bogus"), models.ErrUnknownCategory)
	assert.Error(t, applyFlags(tbl, spec, "", "name", "sideways", "all"))
	assert.ErrorContains(t, applyFlags(tbl, spec, "", "name", "none", "all"), "asc or desc")

	require.NoError(t, applyFlags(tbl, spec, "", "name", "", "all"))
	assert.Equal(t, models.SortAsc, tbl.State().SortDirection, "empty order falls back to ascending")

	clusters, _ := core.LookupSpec(core.DatasetClusters)
	assert.Error(t, applyFlags(clusters.NewTable(nil), clusters, "", "", "", "with-approvals"))
}

func TestRenderView_EmptyMessage(t *testing.T) {
	spec, tbl := servicesTable(t)
	require.NoError(t, applyFlags(tbl, spec, "nothing matches", "", "", "all"))
	var buf bytes.Buffer
	require.NoError(t, renderView(&buf, spec.Name, tbl, "table"))
	assert.Equal(t, core.DefaultEmptyMessage+"\n", buf.String())
}

func TestRenderView_CSVAndJSON(t *testing.T) {
	spec, tbl := servicesTable(t)
	require.NoError(t, applyFlags(tbl, spec, "", "unit_cost", "asc", "with-approvals"))

	var csv bytes.Buffer
	require.NoError(t, renderView(&csv, spec.Name, tbl, "csv"))
	lines := strings.Split(strings.TrimSpace(csv.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "MRI Scan")

	var js bytes.Buffer
	require.NoError(t, renderView(&js, spec.Name, tbl, "json"))
	var resp models.TableViewResponse
	require.NoError(t, json.Unmarshal(js.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalRecords)
	assert.Equal(t, 1, resp.FilteredCount)
	assert.Equal(t, models.CategoryWithApprovals, resp.State.FilterCategory)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("md"))
	assert.Error(t, checkFormat("xml"))
}

func TestParseServices(t *testing.T) {
	doc := []byte(`{"data":{"services":[
		{"code":"X-1","name":"Dialysis","group_name":"Renal","provision_count":12,"unit_cost":310.25,"approvals":["✓","✗","-"]},
		{"code":"X-2","name":"Transplant","group_id":3,"approvals":"✓?-"},
		42
	]}}`)
	services, err := parseServices(doc, "data.services")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Renal", services[0].GroupName)
	assert.Equal(t, 12, services[0].ProvisionCount)
	assert.InDelta(t, 310.25, services[0].UnitCost, 1e-9)
	assert.Equal(t, []string{"✓", "✗", "-"}, services[0].Approvals)
	assert.Equal(t, int64(3), services[1].GroupID)
	assert.Equal(t, []string{"✓", "-"}, services[1].Approvals)
}

func TestParseServices_RootFallbackAndErrors(t *testing.T) {
	services, err := parseServices([]byte(`[{"code":"A","name":"B"}]`), "services")
	require.NoError(t, err)
	assert.Len(t, services, 1)

	_, err = parseServices([]byte(`{"services":{}}`), "services")
	assert.Error(t, err)
	_, err = parseServices([]byte(`{not json`), "services")
	assert.Error(t, err)
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCommands_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	common := []string{
		"--dbpath", filepath.Join(dir, "hub.db"),
		"--log-file", filepath.Join(dir, "app.log"),
		"--config=",
	}
	run := func(args ...string) string { return execute(t, append(args, common...)...) }

	assert.Contains(t, run("seed"), "30 services in 4 clusters")
	assert.Contains(t, run("tables"), "cluster-members")

	out := run("table", "services", "--search", "scan", "--sort", "name", "--order", "asc", "--format", "csv")
	assert.Less(t, strings.Index(out, "CT Scan"), strings.Index(out, "MRI Scan"))

	assert.Contains(t, run("cluster", "current"), "No current cluster")
	assert.Contains(t, run("cluster", "use", "2"), "Current cluster set to 2")
	assert.Contains(t, run("cluster", "list"), "*")

	var sum models.Summary
	require.NoError(t, json.Unmarshal([]byte(run("summary", "--dataset", "cluster-members", "--json")), &sum))
	assert.Equal(t, 8, sum.TotalRecords)
}
