// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package api

import (
	"time"

	"github.com/tomtom215/titlegraph/internal/cache"
	"github.com/tomtom215/titlegraph/internal/config"
	"github.com/tomtom215/titlegraph/internal/logging"
	"github.com/tomtom215/titlegraph/internal/store"
)

// Version is the reported service version.
const Version = "1.0.0"

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared response and parameter helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_catalog.go: filter-option and title-detail endpoints
//   - handlers_network.go: local network and Sankey endpoints
type Handler struct {
	store     store.Store
	config    *config.Config
	startTime time.Time
	cache     *cache.Cache
}

// NewHandler creates a new API handler backed by the given catalog store.
//
// Query results are cached with a 5-minute TTL; the catalog is immutable
// after load, so cached responses never serve stale data.
func NewHandler(st store.Store, cfg *config.Config) *Handler {
	return &Handler{
		store:     st,
		config:    cfg,
		startTime: time.Now(),
		cache:     cache.New(5 * time.Minute),
	}
}

// ClearCache invalidates all cached query results. Used after reloading the
// catalog store behind a running server.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Query cache cleared")
	}
}

// GetCacheStats returns cache performance statistics
func (h *Handler) GetCacheStats() cache.Stats {
	if h.cache != nil {
		return h.cache.GetStats()
	}
	return cache.Stats{}
}
