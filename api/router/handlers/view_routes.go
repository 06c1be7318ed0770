package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterViewRoutes sets up the stateful table view endpoints.
func RegisterViewRoutes(r chi.Router) {
	r.Post("/views", CreateViewHandler)

	r.Route("/views/{view_id}", func(subRouter chi.Router) {
		subRouter.Get("/", GetViewHandler)
		subRouter.Delete("/", DeleteViewHandler)
		subRouter.Put("/search", SetViewSearchHandler)
		subRouter.Post("/sort", SortViewHandler)
		subRouter.Put("/filter", SetViewFilterHandler)
		subRouter.Post("/reset", ResetViewHandler)
		subRouter.Put("/records", SwitchViewRecordsHandler)
	})
}
