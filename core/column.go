package core

import "provisionhub/models"

// RenderFunc turns a cell value into display text. rec is the whole row for renderers that combine fields.
type RenderFunc func(value any, rec models.Record) string

// Column describes how one record field is labelled, searched, sorted and rendered.
type Column struct {
	Key        string
	Label      string
	Searchable bool
	Sortable   bool
	Render     RenderFunc
}

// Cell renders the column's value for rec.
func (c Column) Cell(rec models.Record) string {
	v := FieldValue(rec, c.Key)
	if c.Render != nil {
		return c.Render(v, rec)
	}
	return Stringify(v)
}

// Descriptor drops the render callback so the column can be serialized.
func (c Column) Descriptor() models.ColumnDescriptor {
	return models.ColumnDescriptor{
		Key:        c.Key,
		Label:      c.Label,
		Searchable: c.Searchable,
		Sortable:   c.Sortable,
	}
}

func findColumn(cols []Column, key string) (Column, bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
