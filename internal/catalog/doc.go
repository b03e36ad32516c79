// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

// Package catalog contains the domain model and the filtering pipeline that
// feeds both the tabular catalog view and the Sankey flow diagram.
//
// The pipeline is a pure, in-memory sequence of steps over immutable data:
//
//	store snapshot -> Extract (local network) -> ParseGenres -> BuildEdges
//
// Extract applies the dashboard's filter semantics (exact release year,
// minimum IMDb score, media-type checkboxes, optional genre allow-list).
// ParseGenres tokenizes the raw genre field, which is persisted in the source
// data as a bracketed, quoted, comma-separated string. BuildEdges expands
// each surviving title into one edge per genre token for the external
// flow-diagram renderer.
//
// Nothing in this package mutates its inputs; the catalog snapshot loaded at
// startup is safe to share across concurrent readers.
package catalog
