package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterTableRoutes sets up the read-only table endpoints.
func RegisterTableRoutes(r chi.Router) {
	r.Get("/tables", GetTablesHandler)
	r.Get("/tables/{dataset}", GetTableViewHandler)
	r.Get("/summary", GetSummaryHandler)
}
