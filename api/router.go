package api

import (
	"net/http"

	"provisionhub/api/router/handlers"
	"provisionhub/logger"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the API router.
// All registered paths are relative to the /api base path.
func NewRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		RequestLogger,
		middleware.Recoverer,
		BrotliCompress(brotli.DefaultCompression),
	)

	handlers.RegisterHealthRoutes(router)
	handlers.RegisterVersionRoutes(router)
	handlers.RegisterTableRoutes(router)
	handlers.RegisterViewRoutes(router)
	handlers.RegisterSettingsRoutes(router)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Error("API SUB-ROUTER CATCH-ALL: Unhandled route relative to /api: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})

	return router
}

// NewServerHandler mounts the API under /api.
func NewServerHandler() http.Handler {
	root := chi.NewRouter()
	root.Mount("/api", NewRouter())
	return root
}
