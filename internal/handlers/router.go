// Package handlers provides the HTTP request handlers of the viewer API.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/femviewer/core/internal/fetch"
	"github.com/femviewer/core/internal/store"
)

// NewRouter wires every viewer endpoint onto a chi router. The store holds
// the session's models; fc retrieves remote exports.
func NewRouter(st *store.Store, fc *fetch.Fetcher, logger *slog.Logger, maxBytes int64) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)

	r.Get("/health", HealthHandler)
	r.Post("/parse", ParseHandler(logger, maxBytes))

	r.Route("/api", func(api chi.Router) {
		api.Post("/import", ImportHandler(st, fc, logger, maxBytes))
		api.Get("/models", ModelTreeHandler(st, logger))
		api.Get("/models/{id}", ModelHandler(st, logger))

		api.Get("/selection", SelectionHandler(st, logger))
		api.Put("/selection/model", SelectModelHandler(st, logger))
		api.Put("/selection/instance", SelectInstanceHandler(st, logger))
		api.Delete("/selection/instance", ClearInstanceHandler(st, logger))
		api.Post("/selection/reference", GoToReferenceHandler(st, logger))

		api.Get("/references", ReferencesHandler(st, logger))

		api.Put("/svgs/{name}", SVGUploadHandler(st, logger, maxBytes))
		api.Get("/svgs/{name}", SVGHandler(st, logger))
	})

	return r
}
