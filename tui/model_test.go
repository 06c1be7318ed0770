package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisionhub/core"
	"provisionhub/models"
)

func newServicesModel(t *testing.T) Model {
	t.Helper()
	spec, ok := core.LookupSpec(core.DatasetServices)
	require.True(t, ok)
	records := []models.Record{
		{"id": int64(1), "code": "SVC-1", "name": "Echo", "provision_count": 3, "approvals": []string{"✓", "-"}},
		{"id": int64(2), "code": "SVC-2", "name": "angio", "provision_count": 9, "approvals": []string{"-", "-"}},
		{"id": int64(3), "code": "SVC-3", "name": "Biopsy", "provision_count": 1, "approvals": []string{"✗", "✗"}},
	}
	return New("Services", spec.NewTable(records))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func viewNames(m Model) []string {
	var out []string
	for _, r := range m.Table().DerivedView() {
		out = append(out, r["name"].(string))
	}
	return out
}

func TestModel_SearchTypesIntoTable(t *testing.T) {
	m := newServicesModel(t)
	m = send(m, runes("/"), runes("e"), runes("c"))
	assert.Equal(t, "ec", m.Table().State().SearchTerm)
	assert.Equal(t, []string{"Echo"}, viewNames(m))

	// keys go to the search box until it is left
	m = send(m, runes("q"))
	assert.Equal(t, "ecq", m.Table().State().SearchTerm)
	assert.Contains(t, m.View(), m.Table().Config().EmptyMessage)

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc}, runes("c"))
	assert.Equal(t, "", m.Table().State().SearchTerm)
	assert.Len(t, viewNames(m), 3)
}

func TestModel_NumberKeysCycleSort(t *testing.T) {
	m := newServicesModel(t)
	// sortable columns: code, name, group_name, category, provision_count, unit_cost
	m = send(m, runes("2"))
	assert.Equal(t, []string{"angio", "Biopsy", "Echo"}, viewNames(m))
	assert.Contains(t, m.View(), "▲")

	m = send(m, runes("2"))
	assert.Equal(t, []string{"Echo", "Biopsy", "angio"}, viewNames(m))

	m = send(m, runes("2"))
	assert.Equal(t, models.SortNone, m.Table().State().SortDirection)
	assert.Equal(t, []string{"Echo", "angio", "Biopsy"}, viewNames(m))

	m = send(m, runes("5"))
	assert.Equal(t, "provision_count", m.Table().State().SortField)
	assert.Equal(t, []string{"Biopsy", "Echo", "angio"}, viewNames(m))

	m = send(m, runes("9"))
	assert.Equal(t, "provision_count", m.Table().State().SortField, "keys past the sortable columns are ignored")
}

func TestModel_FilterCyclesAndResets(t *testing.T) {
	m := newServicesModel(t)
	m = send(m, runes("f"))
	assert.Equal(t, models.CategoryWithApprovals, m.Table().State().FilterCategory)
	assert.Equal(t, []string{"Echo"}, viewNames(m))

	m = send(m, runes("f"))
	assert.Equal(t, models.CategoryPendingApprovals, m.Table().State().FilterCategory)
	assert.Equal(t, []string{"angio"}, viewNames(m))

	m = send(m, runes("f"), runes("f"))
	assert.Equal(t, models.CategoryAll, m.Table().State().FilterCategory)

	m = send(m, runes("f"), runes("2"), runes("/"), runes("x"), tea.KeyMsg{Type: tea.KeyEnter}, runes("r"))
	assert.Equal(t, models.DefaultViewState(), m.Table().State())
	assert.Contains(t, m.View(), "3/3")
}

func TestModel_FilterKeyIgnoredWithoutMarkers(t *testing.T) {
	spec, ok := core.LookupSpec(core.DatasetClusters)
	require.True(t, ok)
	m := New("Clusters", spec.NewTable([]models.Record{{"id": int64(1), "name": "North"}}))
	m = send(m, runes("f"))
	assert.Equal(t, models.CategoryAll, m.Table().State().FilterCategory)
	assert.NotContains(t, m.View(), "f filter")
}

func TestModel_Quit(t *testing.T) {
	m := newServicesModel(t)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModel_LayoutHidesColumns(t *testing.T) {
	m := newServicesModel(t).WithLayout(models.TableLayout{
		Columns: map[string]models.ColumnLayout{
			"code": {Hidden: true},
			"name": {Width: 20},
		},
		PageSize: 5,
	})
	out := m.View()
	assert.NotContains(t, out, "SVC-1")
	assert.Contains(t, out, "Echo")

	// hidden columns still take part in search
	m = send(m, runes("/"), runes("s"), runes("v"), runes("c"), runes("-"), runes("2"))
	assert.Equal(t, []string{"angio"}, viewNames(m))
}
