// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/titlegraph/internal/models"
)

// Health handles health check requests.
//
// Returns the store backend in use, store connectivity, loaded catalog size
// and process uptime. A reachable store makes the service healthy; an
// unreachable one degrades it without failing the endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storeConnected := false
	catalogSize := 0
	backend := ""
	if h.store != nil {
		backend = h.store.Backend()
		storeConnected = h.store.Ping(r.Context()) == nil
		if n, err := h.store.Count(r.Context()); err == nil {
			catalogSize = n
		}
	}

	status := "healthy"
	if !storeConnected {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:         status,
		StoreBackend:   backend,
		StoreConnected: storeConnected,
		CatalogSize:    catalogSize,
		Version:        Version,
		Uptime:         time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only when the catalog store is reachable, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	storeConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	status := "ready"
	if !storeConnected {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"store_connected": storeConnected,
			"ready_to_serve":  storeConnected,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
