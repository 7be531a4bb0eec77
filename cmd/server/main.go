package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/fetch"
	"github.com/gridworks/dataview/internal/filter"
	"github.com/gridworks/dataview/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	cat := catalog.New()
	if baseURL := os.Getenv("SCHEMA_BASE_URL"); baseURL != "" {
		client := &fetch.SchemaClient{BaseURL: baseURL, Logger: logger}
		if err := client.Load(ctx, cat); err != nil {
			log.Fatalf("loading schemas from %s: %v", baseURL, err)
		}
		logger.Info("schema catalogue loaded", "base_url", baseURL, "count", len(cat.SchemaIDs()))
	} else {
		schemaDir := os.Getenv("SCHEMA_DIR")
		if schemaDir == "" {
			schemaDir = "schemas"
		}
		if err := catalog.LoadDir(cat, schemaDir); err != nil {
			log.Fatalf("loading schemas: %v", err)
		}
		logger.Info("schema catalogue loaded", "dir", schemaDir, "count", len(cat.SchemaIDs()))
	}

	var relations *fetch.RelationClient
	if baseURL := os.Getenv("RELATION_BASE_URL"); baseURL != "" {
		relations = &fetch.RelationClient{BaseURL: baseURL, Logger: logger}
	}

	port := 8080
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	err := server.Run(ctx, server.Config{
		Port:      port,
		Catalog:   cat,
		Filters:   filter.NewRegistry(),
		Relations: relations,
		Logger:    logger,
		Language:  os.Getenv("LANGUAGE"),
	})
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
