package models

import (
	"database/sql"
)

// NullString is a helper function to create a sql.NullString from a string.
// If the input string is empty, it returns a NullString with Valid set to false.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{String: "", Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// Record is one table row: field name to a primitive value or a marker array.
// The engine only reads records, it never mutates them.
type Record map[string]any

// ColumnDescriptor is the serializable part of a table column.
type ColumnDescriptor struct {
	Key        string `json:"key" example:"name"`
	Label      string `json:"label" example:"Name"`
	Searchable bool   `json:"searchable"`
	Sortable   bool   `json:"sortable"`
}
