// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

// Package metrics provides Prometheus instrumentation for the API surface and
// the catalog store: request latency and throughput, store query performance,
// and the size of the loaded catalog snapshot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store Metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Duration of catalog store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "backend"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_query_errors_total",
			Help: "Total number of catalog store query errors",
		},
		[]string{"operation", "backend"},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_titles",
			Help: "Number of titles in the loaded catalog snapshot",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Sankey Pipeline Metrics
	SankeyEdgesBuilt = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sankey_edges_built",
			Help:    "Number of edges produced per Sankey request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
	)

	SankeyEmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sankey_empty_results_total",
			Help: "Total number of Sankey requests that produced nothing to render",
		},
	)
)

// RecordStoreQuery records duration and outcome for a catalog store query.
func RecordStoreQuery(operation, backend string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(operation, backend).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation, backend).Inc()
	}
}

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSankeyResult records the edge count of a Sankey build, tracking the
// explicit nothing-to-render outcome separately.
func RecordSankeyResult(edgeCount int) {
	if edgeCount == 0 {
		SankeyEmptyResults.Inc()
		return
	}
	SankeyEdgesBuilt.Observe(float64(edgeCount))
}
