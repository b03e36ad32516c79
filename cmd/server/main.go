// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

// Package main is the entry point for the Titlegraph server.
//
// Titlegraph is a self-hosted streaming-catalog explorer backend. It loads a
// catalog of movie and TV titles from a CSV export into an embedded store and
// serves dashboard data over a REST API: distinct filter options, a filtered
// tabular "local network" view, per-title detail lookup, and title-to-genre
// Sankey edges for an external flow-diagram renderer.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from environment variables and config files (Koanf v2)
//  2. Logging: structured zerolog output per the configured level and format
//  3. Catalog store: DuckDB (flat-file SQL pushdown) or Badger (document store)
//  4. HTTP server: Chi router with the dashboard API and Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables with the TITLEGRAPH_ prefix
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// Selecting the store backend:
//   - TITLEGRAPH_STORE_BACKEND=duckdb (default) with TITLEGRAPH_STORE_CSV_PATH
//   - TITLEGRAPH_STORE_BACKEND=badger with TITLEGRAPH_STORE_BADGER_PATH
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the catalog store
//
// # Example Usage
//
// DuckDB backend over a catalog CSV:
//
//	export TITLEGRAPH_STORE_CSV_PATH=/data/titles.csv
//	./titlegraph
//
// Badger document store:
//
//	export TITLEGRAPH_STORE_BACKEND=badger
//	export TITLEGRAPH_STORE_BADGER_PATH=/data/badger
//	export TITLEGRAPH_STORE_CSV_PATH=/data/titles.csv
//	./titlegraph
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/titlegraph/internal/api"
	"github.com/tomtom215/titlegraph/internal/config"
	"github.com/tomtom215/titlegraph/internal/logging"
	"github.com/tomtom215/titlegraph/internal/store"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("backend", cfg.Store.Backend).
		Str("csv_path", cfg.Store.CSVPath).
		Str("addr", cfg.Server.Addr()).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the catalog store, ingesting the CSV on first run
	st, err := store.Open(ctx, &cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	// Assemble the HTTP surface
	handler := api.NewHandler(st, cfg)
	chiMw := api.NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Serve in the background so the main goroutine can wait on signals
	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		serveErr <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	// Drain in-flight requests before closing the store
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
