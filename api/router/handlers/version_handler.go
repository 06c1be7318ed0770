package handlers

import (
	"net/http"

	"provisionhub/version"

	"github.com/go-chi/chi/v5"
)

func RegisterVersionRoutes(r chi.Router) {
	r.Get("/version", GetVersionHandler)
}

// GetVersionHandler returns the application version.
// @Summary Get application version
// @Tags Version
// @Produce json
// @Success 200 {object} map[string]string "{"version": "0.1.0"}"
// @Router /version [get]
func GetVersionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": version.AppVersion})
}
