// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/titlegraph/internal/cache"
	"github.com/tomtom215/titlegraph/internal/catalog"
	"github.com/tomtom215/titlegraph/internal/metrics"
	"github.com/tomtom215/titlegraph/internal/models"
)

// Default Sankey diagram dimensions, echoed back when the client does not
// override them. Bounds match the dashboard's dimension sliders.
const (
	DefaultSankeyWidth  = 1500
	DefaultSankeyHeight = 800
)

// NetworkRequest carries the validated local-network filter parameters.
type NetworkRequest struct {
	Year      int     `validate:"required,min=1870,max=2100"`
	MinRating float64 `validate:"min=0,max=10"`
}

// SankeyRequest extends the network filter with diagram dimensions.
type SankeyRequest struct {
	NetworkRequest
	Width  int `validate:"min=250,max=2000"`
	Height int `validate:"min=200,max=2500"`
}

// parseFilter reads the shared filter parameters from the query string. The
// media-type checkboxes default to checked, matching the dashboard's initial
// state; explicitly unchecking both is a valid request that matches nothing.
func parseFilter(r *http.Request) catalog.Filter {
	return catalog.Filter{
		ReleaseYear: getIntParam(r, "year", 0),
		MinRating:   getFloatParam(r, "min_rating", 0),
		OnlyMovies:  getBoolParam(r, "movies", true),
		OnlyTV:      getBoolParam(r, "tv", true),
		Genres:      parseCommaSeparated(r.URL.Query().Get("genres")),
	}
}

// Network returns the filtered local network as tabular display rows.
//
// Filters: exact release year, inclusive minimum IMDB score (records without
// a score never match), the media-type checkbox pair, and an optional genre
// allow-list. Row order is catalog order.
func (h *Handler) Network(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	filter := parseFilter(r)
	req := NetworkRequest{Year: filter.ReleaseYear, MinRating: filter.MinRating}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	cacheKey := cache.GenerateKey("network", filter)
	if cached, ok := h.cache.Get(cacheKey); ok {
		respondSuccess(w, cached, started)
		return
	}

	titles, err := h.store.QueryFiltered(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query local network", err)
		return
	}

	rows := make([]models.NetworkRow, 0, len(titles))
	for i := range titles {
		rows = append(rows, models.NewNetworkRow(&titles[i]))
	}

	response := models.NetworkResponse{Total: len(rows), Rows: rows}
	h.cache.Set(cacheKey, response)
	respondSuccess(w, response, started)
}

// NetworkSankey returns the title-to-genre Sankey edge list for the filtered
// local network, plus the echoed diagram dimensions.
//
// An empty edge set is not an error: the response succeeds with empty=true
// and no edges, telling the renderer to draw nothing.
func (h *Handler) NetworkSankey(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	filter := parseFilter(r)
	req := SankeyRequest{
		NetworkRequest: NetworkRequest{Year: filter.ReleaseYear, MinRating: filter.MinRating},
		Width:          getIntParam(r, "width", DefaultSankeyWidth),
		Height:         getIntParam(r, "height", DefaultSankeyHeight),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	titles, err := h.store.QueryFiltered(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query local network", err)
		return
	}

	edges, err := catalog.BuildEdges(titles, filter.Genres)
	if err != nil && !errors.Is(err, catalog.ErrNothingToRender) {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build sankey edges", err)
		return
	}
	if edges == nil {
		edges = []catalog.Edge{}
	}
	metrics.RecordSankeyResult(len(edges))

	respondSuccess(w, models.SankeyResponse{
		Edges:  edges,
		Width:  req.Width,
		Height: req.Height,
		Empty:  len(edges) == 0,
	}, started)
}
