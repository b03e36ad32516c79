// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/titlegraph/internal/cache"
	"github.com/tomtom215/titlegraph/internal/models"
)

// Cache keys for the catalog option endpoints.
const (
	cacheKeyYears      = "catalog:years"
	cacheKeyGenres     = "catalog:genres"
	cacheKeyTitleIndex = "catalog:title_index"
)

// CatalogYears returns the distinct release years available as filter
// options, ascending. The dashboard populates its year dropdown from this.
func (h *Handler) CatalogYears(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if cached, ok := h.cache.Get(cacheKeyYears); ok {
		respondSuccess(w, cached, started)
		return
	}

	years, err := h.store.DistinctYears(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list release years", err)
		return
	}
	if years == nil {
		years = []int{}
	}

	h.cache.Set(cacheKeyYears, years)
	respondSuccess(w, years, started)
}

// CatalogGenres returns the sorted union of normalized genre tokens across
// the whole catalog, for the genre filter widget.
func (h *Handler) CatalogGenres(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if cached, ok := h.cache.Get(cacheKeyGenres); ok {
		respondSuccess(w, cached, started)
		return
	}

	genres, err := h.store.DistinctGenres(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list genres", err)
		return
	}
	if genres == nil {
		genres = []string{}
	}

	h.cache.Set(cacheKeyGenres, genres)
	respondSuccess(w, genres, started)
}

// titleIndex returns the prefix index over the distinct display titles,
// building it from the store on a cache miss.
func (h *Handler) titleIndex(r *http.Request) (*cache.PrefixIndex, error) {
	if cached, ok := h.cache.Get(cacheKeyTitleIndex); ok {
		if idx, ok := cached.(*cache.PrefixIndex); ok {
			return idx, nil
		}
	}

	titles, err := h.store.Titles(r.Context())
	if err != nil {
		return nil, err
	}

	idx := cache.NewPrefixIndex()
	for i, title := range titles {
		idx.Insert(title, i)
	}
	h.cache.Set(cacheKeyTitleIndex, idx)
	return idx, nil
}

// CatalogTitles returns the distinct display titles in catalog order for the
// autocomplete widget. An optional prefix query parameter narrows the options
// case-insensitively.
func (h *Handler) CatalogTitles(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	idx, err := h.titleIndex(r)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list titles", err)
		return
	}

	titles := idx.Search(r.URL.Query().Get("prefix"))
	respondSuccess(w, models.TitleOptions{Titles: titles, Total: len(titles)}, started)
}

// CatalogTitleDetail returns the full record for one title, including the
// description and the normalized genre tokens. An unknown title yields a
// NOT_FOUND error payload rather than an empty success.
func (h *Handler) CatalogTitleDetail(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	name := strings.TrimSpace(r.URL.Query().Get("title"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameter 'title' is required", nil)
		return
	}

	rec, err := h.store.FindByTitle(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to look up title", err)
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Title not found in catalog", nil)
		return
	}

	tokens := rec.GenreTokens()
	if tokens == nil {
		tokens = []string{}
	}

	detail := models.TitleDetail{
		Title:       *rec,
		GenreTokens: tokens,
	}
	respondSuccess(w, detail, started)
}
