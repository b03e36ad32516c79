// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package models

import (
	"time"

	"github.com/tomtom215/titlegraph/internal/catalog"
)

// HealthStatus is the payload for /api/v1/health.
type HealthStatus struct {
	Status         string  `json:"status"` // healthy or degraded
	StoreBackend   string  `json:"store_backend"`
	StoreConnected bool    `json:"store_connected"`
	CatalogSize    int     `json:"catalog_size"`
	Version        string  `json:"version"`
	Uptime         float64 `json:"uptime_seconds"`
}

// NetworkRow is the fixed display projection of a catalog record shown in the
// tabular local-network view. Column order and membership follow the
// dashboard grid; the description is deliberately excluded here and only
// served by the detail endpoint.
type NetworkRow struct {
	Title            string            `json:"title"`
	Type             catalog.MediaType `json:"type"`
	IMDBScore        *float64          `json:"imdb_score"`
	ReleaseYear      int               `json:"release_year"`
	Genres           string            `json:"genres"`
	AgeCertification string            `json:"age_certification,omitempty"`
	Runtime          *int              `json:"runtime,omitempty"`
	Seasons          *float64          `json:"seasons,omitempty"`
}

// NewNetworkRow projects a full catalog record down to the display columns.
func NewNetworkRow(t *catalog.Title) NetworkRow {
	return NetworkRow{
		Title:            t.Title,
		Type:             t.Type,
		IMDBScore:        t.IMDBScore,
		ReleaseYear:      t.ReleaseYear,
		Genres:           t.Genres,
		AgeCertification: t.AgeCertification,
		Runtime:          t.Runtime,
		Seasons:          t.Seasons,
	}
}

// NetworkResponse is the payload for /api/v1/network.
type NetworkResponse struct {
	Total int          `json:"total"`
	Rows  []NetworkRow `json:"rows"`
}

// SankeyResponse is the payload for /api/v1/network/sankey. Width and Height
// echo the requested (or default) diagram dimensions for the external
// renderer. Empty reports the explicit nothing-to-render state: when true,
// Edges is empty and the renderer should draw nothing.
type SankeyResponse struct {
	Edges  []catalog.Edge `json:"edges"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Empty  bool           `json:"empty"`
}

// TitleDetail is the payload for the per-title detail endpoint. Unlike the
// tabular projection it includes the description and the normalized genre
// tokens alongside the raw field.
type TitleDetail struct {
	catalog.Title
	GenreTokens []string `json:"genre_tokens"`
}

// TitleOptions is the payload for the autocomplete options endpoint.
type TitleOptions struct {
	Titles []string `json:"titles"`
	Total  int      `json:"total"`
}

// CatalogInfo describes the loaded catalog snapshot.
type CatalogInfo struct {
	Backend  string    `json:"backend"`
	Size     int       `json:"size"`
	LoadedAt time.Time `json:"loaded_at"`
}
