package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterSettingsRoutes(r chi.Router) {
	r.Get("/settings/current-cluster", GetCurrentClusterSettingHandler)
	r.Put("/settings/current-cluster", SetCurrentClusterSettingHandler)
	r.Post("/settings/current-cluster", SetCurrentClusterSettingHandler)

	r.Post("/settings/table-layouts/reset", ResetTableLayoutsHandler)

	r.Route("/settings/table-layouts", func(r chi.Router) {
		r.Get("/", GetTableLayoutsHandler)
		r.Post("/", SetTableLayoutsHandler)
		r.Put("/", SetTableLayoutsHandler)
	})
}
