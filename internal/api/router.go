// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

// Package api provides the HTTP surface of the catalog explorer: routing,
// middleware wiring and the dashboard endpoints.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/titlegraph/internal/middleware"
)

// Router assembles the handler set and middleware factories into the served
// HTTP handler.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from a handler and middleware factory.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)        // X-Request-ID header plus logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// Health endpoints: permissive rate limiting for monitoring probes.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Catalog filter options: read-heavy, permissive rate limiting.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCatalog())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/years", router.handler.CatalogYears)
		r.Get("/genres", router.handler.CatalogGenres)
		r.Get("/titles", router.handler.CatalogTitles)
		r.Get("/titles/detail", router.handler.CatalogTitleDetail)
	})

	// Local network and Sankey endpoints: default rate limiting.
	r.Route("/api/v1/network", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.Network)
		r.Get("/sankey", router.handler.NetworkSankey)
	})

	// Prometheus metrics endpoint.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
