// Package server assembles the HTTP render service: REST endpoints for
// schemas, filter strategies and table rendering, plus the WebSocket render
// channel.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/fetch"
	"github.com/gridworks/dataview/internal/filter"
	"github.com/gridworks/dataview/internal/server/wire"
)

// Config holds server configuration. Relations, when set, enables the
// relation-resolution proxy route backed by the request coordinator.
type Config struct {
	Port      int
	Catalog   *catalog.Catalog
	Filters   *filter.Registry
	Relations *fetch.RelationClient
	Logger    *slog.Logger
	Language  string
}

// Router builds the chi router with all routes and middleware registered.
func Router(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	filters := cfg.Filters
	if filters == nil {
		filters = filter.NewRegistry()
	}

	h := &Handler{
		catalog:   cfg.Catalog,
		filters:   filters,
		relations: cfg.Relations,
		coord:     fetch.NewCoordinator(),
		logger:    logger,
		language:  cfg.Language,
	}
	ws := wire.NewHandler(cfg.Catalog, logger)

	r := chi.NewRouter()
	r.Use(Recovery(logger))
	r.Use(Logging(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/schemas", h.ListSchemas)
		r.Get("/schemas/{id}", h.GetSchema)
		r.Get("/filters/{component}", h.GetFilterStrategy)
		r.Post("/filters/validate", h.ValidateFilters)
		r.Post("/render/table", h.RenderTable)
		r.Post("/render/cell", h.RenderCell)
		r.Get("/render/ws", ws.ServeHTTP)
		if cfg.Relations != nil {
			r.Get("/entities/{schema}/{id}/related/{target}", h.GetRelations)
		}
	})

	return r
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("starting server", "addr", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: Router(cfg),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	return srv.ListenAndServe()
}
