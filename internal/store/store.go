// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

// Package store provides the read-only data-access layer over the title
// catalog. Two interchangeable backends exist:
//
//   - DuckDB: ingests the catalog CSV into an embedded analytical database
//     and pushes every query down as SQL.
//   - Badger: holds title records as JSON documents in an embedded
//     document store and answers queries from an in-memory snapshot.
//
// Observable results are identical across backends: same filter semantics,
// same genre normalization, same catalog ordering. Stores never mutate the
// catalog after the initial load.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/titlegraph/internal/catalog"
	"github.com/tomtom215/titlegraph/internal/config"
)

// ErrNoCatalogData indicates the backend holds no titles and no CSV file was
// configured to seed it from.
var ErrNoCatalogData = errors.New("store: no catalog data and no csv_path configured")

// Store is the read-only catalog query surface consumed by the API layer.
//
// Absent results are represented explicitly: FindByTitle returns (nil, nil)
// for an unknown title, and the query methods return empty slices rather than
// errors when nothing matches.
type Store interface {
	// DistinctYears returns all distinct release years, ascending.
	DistinctYears(ctx context.Context) ([]int, error)

	// DistinctGenres returns the union of normalized genre tokens across the
	// catalog, ascending lexicographic.
	DistinctGenres(ctx context.Context) ([]string, error)

	// FindByTitle returns the first record whose title matches exactly, in
	// catalog order, or (nil, nil) when no record matches.
	FindByTitle(ctx context.Context, title string) (*catalog.Title, error)

	// QueryFiltered returns the local network for the given filter, in
	// catalog order. An empty result is a valid outcome.
	QueryFiltered(ctx context.Context, f catalog.Filter) ([]catalog.Title, error)

	// Titles returns distinct display titles in order of first appearance,
	// for the dashboard's autocomplete options.
	Titles(ctx context.Context) ([]string, error)

	// Count returns the number of records in the catalog.
	Count(ctx context.Context) (int, error)

	// Backend returns the backend name ("duckdb" or "badger").
	Backend() string

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases the backing storage.
	Close() error
}

// Open constructs the configured backend and loads the catalog. A failure
// here is fatal to the application: without a catalog there is no dashboard.
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendDuckDB:
		return OpenDuckDB(ctx, cfg)
	case config.BackendBadger:
		return OpenBadger(ctx, cfg)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// dedupeInOrder returns values deduplicated on first appearance, preserving
// encounter order. Empty strings are skipped.
func dedupeInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
