// Package handlers provides the HTTP request handlers of the viewer API.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/femviewer/core/internal/models"
	"github.com/femviewer/core/internal/parser"
)

// ParseResponse wraps the models of one stateless parse.
type ParseResponse struct {
	Models []models.Model `json:"models"`
}

// ParseHandler parses an export document without touching the session
// store: XML body in, typed models out. A structurally invalid export
// blocks the whole request; attribute-sparse exports parse fully with
// defaulted fields.
func ParseHandler(logger *slog.Logger, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
		if err != nil {
			http.Error(w, "Failed to read body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		parsed, err := parser.NewBuilder(logger).Parse(body)
		if err != nil {
			http.Error(w, "Invalid export: "+err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		encoder := json.NewEncoder(w)
		if r.URL.Query().Get("pretty") == "true" {
			encoder.SetIndent("", "  ")
		}

		if err := encoder.Encode(ParseResponse{Models: parsed}); err != nil {
			logger.Error("encoding parse response", "error", err)
		}
	}
}
