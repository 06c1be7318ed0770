package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"provisionhub/core"
	"provisionhub/models"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxColumnWidth = 40
	chromeHeight   = 6 // title, search box, blank lines and help
)

// Model is the interactive browser for one table. Every key press is turned into a single
// view state change on the table, after which the grid is rebuilt from the derived view.
type Model struct {
	title    string
	tbl      *core.Table
	sortable []core.Column
	search   textinput.Model
	grid     table.Model
	layout   models.TableLayout
	width    int
	height   int
	quitting bool
}

func New(title string, tbl *core.Table) Model {
	ti := textinput.New()
	ti.Placeholder = tbl.Config().SearchPlaceholder
	ti.Prompt = "/ "
	ti.PromptStyle = searchPromptStyle
	ti.CharLimit = 128
	ti.SetValue(tbl.State().SearchTerm)

	var sortable []core.Column
	for _, c := range tbl.Columns() {
		if c.Sortable {
			sortable = append(sortable, c)
		}
	}

	m := Model{
		title:    title,
		tbl:      tbl,
		sortable: sortable,
		search:   ti,
		grid:     table.New(table.WithFocused(true), table.WithHeight(15)),
	}
	m.refresh()
	return m
}

// WithLayout applies stored column preferences: hidden columns are left out of the grid
// (they stay searchable) and fixed widths replace the computed ones.
func (m Model) WithLayout(layout models.TableLayout) Model {
	m.layout = layout
	if layout.PageSize > 0 {
		m.grid.SetHeight(layout.PageSize)
	}
	m.refresh()
	return m
}

// Table exposes the engine behind the browser.
func (m Model) Table() *core.Table { return m.tbl }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - chromeHeight; h > 3 && m.layout.PageSize == 0 {
			m.grid.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter", "esc":
		m.search.Blur()
		m.grid.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.tbl.State().SearchTerm {
		m.tbl.SetSearchTerm(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.grid.Blur()
		return m, m.search.Focus()
	case "f":
		if m.tbl.Options().MarkerField != "" {
			m.tbl.SetFilterCategory(nextCategory(m.tbl.State().FilterCategory))
			m.refresh()
		}
		return m, nil
	case "c":
		m.search.SetValue("")
		m.tbl.SetSearchTerm("")
		m.refresh()
		return m, nil
	case "r":
		m.tbl.Reset()
		m.search.SetValue(m.tbl.State().SearchTerm)
		m.refresh()
		return m, nil
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if n := int(key[0] - '1'); n < len(m.sortable) {
			m.tbl.ToggleSort(m.sortable[n].Key)
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func nextCategory(current models.FilterCategory) models.FilterCategory {
	for i, c := range models.FilterCategories {
		if c == current {
			return models.FilterCategories[(i+1)%len(models.FilterCategories)]
		}
	}
	return models.CategoryAll
}

// refresh rebuilds the grid from the table's derived view.
func (m *Model) refresh() {
	state := m.tbl.State()
	var cols []core.Column
	for _, c := range m.tbl.Columns() {
		if !m.layout.Column(c.Key).Hidden {
			cols = append(cols, c)
		}
	}
	view := m.tbl.DerivedView()

	rows := make([]table.Row, len(view))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = utf8.RuneCountInString(headerTitle(c, state, m.sortIndex(c.Key)))
	}
	for r, rec := range view {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = c.Cell(rec)
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
		rows[r] = row
	}

	columns := make([]table.Column, len(cols))
	for i, c := range cols {
		width := min(widths[i], maxColumnWidth)
		if w := m.layout.Column(c.Key).Width; w > 0 {
			width = w
		}
		columns[i] = table.Column{Title: headerTitle(c, state, m.sortIndex(c.Key)), Width: width}
	}
	m.grid.SetRows(nil)
	m.grid.SetColumns(columns)
	m.grid.SetRows(rows)
	if m.grid.Cursor() >= len(rows) {
		m.grid.SetCursor(max(0, len(rows)-1))
	}
}

// sortIndex is the 1-based key that toggles sorting on key, or 0 when the column is not sortable.
func (m *Model) sortIndex(key string) int {
	for i, c := range m.sortable {
		if c.Key == key {
			return i + 1
		}
	}
	return 0
}

func headerTitle(c core.Column, state models.ViewState, idx int) string {
	title := c.Label
	if idx > 0 && idx <= 9 {
		title = fmt.Sprintf("%d:%s", idx, title)
	}
	if state.Sorted() && state.SortField == c.Key {
		title += " " + state.SortDirection.Arrow()
	}
	return title
}

func (m Model) filterPills() string {
	if m.tbl.Options().MarkerField == "" {
		return ""
	}
	current := m.tbl.State().FilterCategory
	pills := make([]string, 0, len(models.FilterCategories))
	for _, c := range models.FilterCategories {
		if c == current {
			pills = append(pills, activePillStyle.Render(c.Label()))
		} else {
			pills = append(pills, pillStyle.Render(c.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pills...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	view := m.tbl.DerivedView()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(m.title), "  ",
		countStyle.Render(fmt.Sprintf("%d/%d", len(view), len(m.tbl.Records()))), "  ",
		m.filterPills(),
	)
	b.WriteString(header + "\n")
	b.WriteString(m.search.View() + "\n\n")

	if len(view) == 0 {
		b.WriteString(emptyStyle.Render(m.tbl.Config().EmptyMessage) + "\n")
	} else {
		b.WriteString(m.grid.View() + "\n")
	}

	help := "/ search • 1-9 sort • c clear • r reset • q quit"
	if m.tbl.Options().MarkerField != "" {
		help = "/ search • 1-9 sort • f filter • c clear • r reset • q quit"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

// Run starts the browser full screen and blocks until the user quits.
func Run(title string, tbl *core.Table, layout models.TableLayout) error {
	_, err := tea.NewProgram(New(title, tbl).WithLayout(layout), tea.WithAltScreen()).Run()
	return err
}
