package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"provisionhub/config"
	"provisionhub/core"
	"provisionhub/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

var outputFormats = []string{"table", "json", "csv", "md"}

func checkFormat(format string) error {
	for _, f := range outputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(outputFormats, ", "))
}

// newConfiguredTable mounts spec with the project-wide table settings.
func newConfiguredTable(spec core.TableSpec, records []models.Record) *core.Table {
	return spec.NewTable(records, core.WithSettings(
		config.SortCycle(), config.AppConfig.Table.SearchPlaceholder, config.AppConfig.Table.EmptyMessage))
}

// headerLabel appends the sort arrow when col is the active sort column.
func headerLabel(col core.Column, state models.ViewState) string {
	if state.Sorted() && state.SortField == col.Key {
		return col.Label + " " + state.SortDirection.Arrow()
	}
	return col.Label
}

// renderView writes the derived view of tbl. Cells go through each column's renderer,
// except for json which emits the raw records.
func renderView(w io.Writer, dataset string, tbl *core.Table, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tbl.Response(dataset))
	}

	view := tbl.DerivedView()
	state := tbl.State()
	cols := tbl.Columns()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = headerLabel(c, state)
	}
	t.AppendHeader(header)

	for _, rec := range view {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = c.Cell(rec)
		}
		t.AppendRow(row)
	}

	switch format {
	case "csv":
		t.RenderCSV()
		return nil
	case "md":
		t.RenderMarkdown()
	default:
		if len(view) == 0 {
			_, _ = fmt.Fprintln(w, tbl.Config().EmptyMessage)
			return nil
		}
		t.Render()
	}
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", len(view), len(tbl.Records()))
	return nil
}

func renderCatalog(w io.Writer, specs []core.TableSpec, cycle models.SortCycle) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dataset", "Title", "Sortable", "Searchable", "Filters", "Sort cycle"})
	for _, spec := range specs {
		info := spec.Info(cycle)
		var sortable, searchable []string
		for _, c := range info.Columns {
			if c.Sortable {
				sortable = append(sortable, c.Key)
			}
			if c.Searchable {
				searchable = append(searchable, c.Key)
			}
		}
		filters := "-"
		if len(info.Categories) > 0 {
			names := make([]string, len(info.Categories))
			for i, c := range info.Categories {
				names[i] = string(c)
			}
			filters = strings.Join(names, ", ")
		}
		t.AppendRow(table.Row{info.Name, info.Title, strings.Join(sortable, ", "), strings.Join(searchable, ", "), filters, info.SortCycle})
	}
	t.Render()
}

func renderSummary(w io.Writer, s models.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(s.Dataset)
	t.AppendHeader(table.Row{"Metric", "Count"})
	t.AppendRows([]table.Row{
		{"Total records", s.TotalRecords},
		{models.CategoryWithApprovals.Label(), s.WithApprovals},
		{models.CategoryPendingApprovals.Label(), s.PendingApprovals},
		{models.CategoryNoApprovals.Label(), s.NoApprovals},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Markers " + models.MarkerApproved, s.Markers.Approved},
		{"Markers " + models.MarkerRejected, s.Markers.Rejected},
		{"Markers " + models.MarkerPending, s.Markers.Pending},
	})
	t.Render()
}
