// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package catalog

import (
	"sort"
	"strings"
)

// genreStripper removes the bracket and quote characters the source dataset
// wraps genre lists in. The field is a list's textual representation persisted
// as a plain string, and it is not guaranteed to be valid list syntax in every
// row, so we tokenize it directly instead of parsing it as a literal.
var genreStripper = strings.NewReplacer("[", "", "]", "", "'", "")

// ParseGenres tokenizes a raw genre field value such as "['Drama', 'Comedy']"
// into clean genre tokens: brackets and single quotes are removed, the result
// is split on commas, and each token is whitespace-trimmed. Empty tokens
// (from trailing commas or empty lists) are dropped.
//
// An empty input yields nil. ParseGenres never fails; a malformed field simply
// contributes fewer (or zero) tokens.
func ParseGenres(raw string) []string {
	if raw == "" {
		return nil
	}

	stripped := strings.TrimSpace(genreStripper.Replace(raw))
	if stripped == "" {
		return nil
	}

	parts := strings.Split(stripped, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if tok := strings.TrimSpace(p); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// DistinctGenres returns the sorted union of genre tokens across all given
// titles. Deduplication happens on the trimmed token, so "Drama" from
// "['Drama']" and from "['Comedy', 'Drama']" collapse to one entry.
func DistinctGenres(titles []Title) []string {
	seen := make(map[string]struct{})
	for i := range titles {
		for _, tok := range titles[i].GenreTokens() {
			seen[tok] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// DistinctYears returns the sorted distinct release years across all titles.
// A zero ReleaseYear means the source row had no parseable year and is
// excluded, matching the SQL backend's IS NOT NULL semantics.
func DistinctYears(titles []Title) []int {
	seen := make(map[int]struct{})
	for i := range titles {
		if titles[i].ReleaseYear == 0 {
			continue
		}
		seen[titles[i].ReleaseYear] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
