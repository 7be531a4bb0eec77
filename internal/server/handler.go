package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/fetch"
	"github.com/gridworks/dataview/internal/field"
	"github.com/gridworks/dataview/internal/filter"
	"github.com/gridworks/dataview/internal/table"
)

// Handler serves the REST endpoints of the render service.
type Handler struct {
	catalog   *catalog.Catalog
	filters   *filter.Registry
	relations *fetch.RelationClient
	coord     *fetch.Coordinator
	logger    *slog.Logger
	language  string
}

// ListSchemas returns all registered schema ids.
func (h *Handler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"schemas": h.catalog.SchemaIDs()})
}

// GetSchema returns a schema document by id, using tolerant id resolution.
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s := h.catalog.Resolve(id)
	if s == nil {
		writeError(w, http.StatusNotFound, "SCHEMA_NOT_FOUND", "schema not found for "+id)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetFilterStrategy returns the operator vocabulary for a component kind.
// Always 200: unknown kinds resolve to the text strategy.
func (h *Handler) GetFilterStrategy(w http.ResponseWriter, r *http.Request) {
	component := chi.URLParam(r, "component")
	writeJSON(w, http.StatusOK, h.filters.GetByName(component))
}

// ValidateFilters checks an authored filter set and returns the aggregated
// validation message, if any.
func (h *Handler) ValidateFilters(w http.ResponseWriter, r *http.Request) {
	var items []filter.Item
	if err := decodeJSON(r, &items); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := filter.ValidateSet(items); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false, "message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

// RenderTable runs the full column-build, flatten and format pass for the
// posted rows.
func (h *Handler) RenderTable(w http.ResponseWriter, r *http.Request) {
	var req table.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if req.Language == "" {
		req.Language = h.language
	}
	resp, err := table.Build(h.catalog, req)
	if err != nil {
		writeError(w, http.StatusNotFound, "SCHEMA_NOT_FOUND", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// cellRequest is the body of POST /v1/render/cell.
type cellRequest struct {
	Schema   string    `json:"schema"`
	Field    string    `json:"field"`
	Value    any       `json:"value"`
	Row      field.Row `json:"row"`
	Language string    `json:"language,omitempty"`
}

// RenderCell formats a single value.
func (h *Handler) RenderCell(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if req.Language == "" {
		req.Language = h.language
	}
	spec, err := table.Cell(h.catalog, req.Schema, req.Field, req.Value, req.Row, req.Language)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// GetRelations resolves a one-to-many relation through the request
// coordinator: concurrent requests for the same key share one upstream
// fetch, and a repeat of the last resolved key answers from the memo.
func (h *Handler) GetRelations(w http.ResponseWriter, r *http.Request) {
	key := fetch.Key{
		SourceSchema: chi.URLParam(r, "schema"),
		SourceID:     chi.URLParam(r, "id"),
		TargetSchema: chi.URLParam(r, "target"),
		RelationType: r.URL.Query().Get("relation_type"),
	}
	groups, err := h.coord.Do(r.Context(), key, func(ctx context.Context) ([]field.ChildGroup, error) {
		return h.relations.Fetch(ctx, key)
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, "RELATION_FETCH_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"children": groups})
}
