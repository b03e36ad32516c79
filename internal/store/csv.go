// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/titlegraph/internal/catalog"
)

// ReadCatalogCSV decodes the catalog CSV into title records, preserving file
// order. Columns are resolved by header name, so extra columns (internal ids,
// production countries, vote counts) are ignored and column order does not
// matter. Numeric fields that fail to parse are treated as absent rather than
// failing the whole load.
func ReadCatalogCSV(path string) ([]catalog.Title, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("catalog csv missing required title column")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var titles []catalog.Title
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		t := catalog.Title{
			Title:            field(row, "title"),
			Type:             catalog.MediaType(field(row, "type")),
			Genres:           field(row, "genres"),
			AgeCertification: field(row, "age_certification"),
			Description:      field(row, "description"),
		}
		if year, err := strconv.Atoi(strings.TrimSpace(field(row, "release_year"))); err == nil {
			t.ReleaseYear = year
		}
		if score, err := strconv.ParseFloat(strings.TrimSpace(field(row, "imdb_score")), 64); err == nil {
			t.IMDBScore = &score
		}
		if runtime, err := strconv.Atoi(strings.TrimSpace(field(row, "runtime"))); err == nil {
			t.Runtime = &runtime
		}
		// Seasons comes through as a float in the source data (e.g. "1.0").
		if seasons, err := strconv.ParseFloat(strings.TrimSpace(field(row, "seasons")), 64); err == nil {
			t.Seasons = &seasons
		}

		titles = append(titles, t)
	}

	return titles, nil
}
