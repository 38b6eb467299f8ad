// Package handlers provides the HTTP request handlers of the viewer API.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/femviewer/core/internal/fetch"
	"github.com/femviewer/core/internal/models"
	"github.com/femviewer/core/internal/parser"
	"github.com/femviewer/core/internal/store"
)

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", "error", err)
	}
}

// ImportHandler parses an export and appends its models to the session
// store. The document comes from the request body, or from a remote
// location when the url query parameter is set.
func ImportHandler(st *store.Store, fc *fetch.Fetcher, logger *slog.Logger, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			data []byte
			err  error
		)

		if url := r.URL.Query().Get("url"); url != "" {
			data, err = fc.Fetch(r.Context(), url)
			if err != nil {
				logger.Warn("export fetch failed", "url", url, "error", err)
				http.Error(w, "Fetch failed: "+err.Error(), http.StatusBadGateway)
				return
			}
		} else {
			data, err = io.ReadAll(io.LimitReader(r.Body, maxBytes))
			if err != nil {
				http.Error(w, "Failed to read body", http.StatusBadRequest)
				return
			}
			defer r.Body.Close()
		}

		parsed, err := parser.NewBuilder(logger).Parse(data)
		if err != nil {
			http.Error(w, "Invalid export: "+err.Error(), http.StatusBadRequest)
			return
		}

		st.AddModels(parsed)
		logger.Info("imported models", "count", len(parsed))

		writeJSON(w, logger, st.ModelTree())
	}
}

// ModelTreeHandler returns the summary view of every imported model.
func ModelTreeHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, st.ModelTree())
	}
}

// ModelHandler returns one full model by id.
func ModelHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := st.ModelByID(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "Model not found", http.StatusNotFound)
			return
		}
		writeJSON(w, logger, m)
	}
}

// SelectionResponse reports the current model and instance selection.
// Either side is null when nothing is selected or the selected id no longer
// resolves.
type SelectionResponse struct {
	Model    *models.Model    `json:"model"`
	Instance *models.Instance `json:"instance"`
}

func selection(st *store.Store) SelectionResponse {
	var resp SelectionResponse
	if m, ok := st.CurrentModel(); ok {
		resp.Model = &m
	}
	if inst, ok := st.CurrentInstance(); ok {
		resp.Instance = &inst
	}
	return resp
}

// SelectionHandler returns the current selection.
func SelectionHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, selection(st))
	}
}

// SelectModelHandler sets the current model by id. An unknown id clears the
// selection rather than failing; the response reflects whichever state
// resulted.
func SelectModelHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid selection body", http.StatusBadRequest)
			return
		}
		st.SetCurrentModel(body.ID)
		writeJSON(w, logger, selection(st))
	}
}

// SelectInstanceHandler sets the current instance from a full instance
// value, so a selection can cross into another model without switching the
// current model.
func SelectInstanceHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inst models.Instance
		if err := json.NewDecoder(r.Body).Decode(&inst); err != nil {
			http.Error(w, "Invalid instance body", http.StatusBadRequest)
			return
		}
		st.SetCurrentInstance(inst)
		writeJSON(w, logger, selection(st))
	}
}

// ClearInstanceHandler drops the instance selection.
func ClearInstanceHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st.ClearCurrentInstance()
		writeJSON(w, logger, selection(st))
	}
}

// GoToReferenceHandler follows a reference: it selects the named model and,
// within it, the instance with the given display label.
func GoToReferenceHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model    string `json:"model"`
			Instance string `json:"instance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid reference body", http.StatusBadRequest)
			return
		}
		if !st.GoToReference(body.Model, body.Instance) {
			logger.Debug("reference target not found",
				"model", body.Model, "instance", body.Instance)
		}
		writeJSON(w, logger, selection(st))
	}
}

// ReferencesHandler lists the instances anywhere that reference the given
// instance via the named reference kind. Unknown models, instances or kinds
// yield an empty list, never an error.
func ReferencesHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modelID := r.URL.Query().Get("model")
		instanceID := r.URL.Query().Get("instance")
		kind := models.InterrefKind(r.URL.Query().Get("kind"))

		records := make([]models.ReferenceRecord, 0)
		if m, ok := st.ModelByID(modelID); ok {
			for _, inst := range m.Instances {
				if inst.ID == instanceID {
					records = st.InstancesThatReference(inst, kind)
					break
				}
			}
		}
		writeJSON(w, logger, records)
	}
}

// SVGUploadHandler stores a rendered-diagram artifact under a model name.
// The artifact is produced by the external renderer and opaque here; it is
// only required to be valid JSON.
func SVGUploadHandler(st *store.Store, logger *slog.Logger, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
		if err != nil {
			http.Error(w, "Failed to read body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if !json.Valid(body) {
			http.Error(w, "Artifact must be valid JSON", http.StatusBadRequest)
			return
		}

		st.AddSVG(chi.URLParam(r, "name"), json.RawMessage(body))
		w.WriteHeader(http.StatusNoContent)
	}
}

// SVGHandler returns the stored rendered-diagram artifact for a model name.
func SVGHandler(st *store.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svg, ok := st.SVG(chi.URLParam(r, "name"))
		if !ok {
			http.Error(w, "No rendered diagram for model", http.StatusNotFound)
			return
		}
		writeJSON(w, logger, svg)
	}
}
