// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package catalog

// Filter holds the dashboard's local-network criteria. All predicates combine
// with AND, except the media-type pair which follows the checkbox truth table
// documented on Matches.
type Filter struct {
	// ReleaseYear matches exactly; there is no range semantics.
	ReleaseYear int

	// MinRating is the inclusive lower bound on imdb_score. Titles without
	// a score never satisfy it.
	MinRating float64

	// OnlyMovies / OnlyTV mirror the dashboard's two independent checkboxes.
	//
	//	movies  tv      effect
	//	true    false   type == MOVIE
	//	false   true    type == SHOW
	//	true    true    no type filter
	//	false   false   nothing matches
	//
	// The both-unchecked case intentionally matches nothing: the product
	// decision is "deselect everything, see nothing", not "see everything".
	OnlyMovies bool
	OnlyTV     bool

	// Genres optionally restricts results to titles carrying at least one of
	// these normalized tokens. Empty means no genre restriction.
	Genres []string
}

// matchesType applies the checkbox truth table to a media type.
func (f Filter) matchesType(mt MediaType) bool {
	switch {
	case f.OnlyMovies && f.OnlyTV:
		return true
	case f.OnlyMovies:
		return mt == MediaTypeMovie
	case f.OnlyTV:
		return mt == MediaTypeShow
	default:
		// Both checkboxes off: the type is forced to a value that cannot
		// occur, so no row matches.
		return false
	}
}

// Matches reports whether a single title satisfies the filter.
func (f Filter) Matches(t *Title) bool {
	if t.ReleaseYear != f.ReleaseYear {
		return false
	}
	if t.IMDBScore == nil || *t.IMDBScore < f.MinRating {
		return false
	}
	if !f.matchesType(t.Type) {
		return false
	}
	if len(f.Genres) > 0 && !t.HasAnyGenre(f.Genres) {
		return false
	}
	return true
}

// Extract computes the local network: the subset of titles matching the
// filter, in the order they appear in the input. The input slice is never
// mutated and an empty result is a valid outcome, not an error.
//
// The projection down to the display column set happens at the API layer;
// Extract returns full records so the detail and Sankey paths can share it.
func Extract(titles []Title, f Filter) []Title {
	var out []Title
	for i := range titles {
		if f.Matches(&titles[i]) {
			out = append(out, titles[i])
		}
	}
	return out
}

// FindByTitle returns the first title whose display name matches exactly, in
// catalog order, or nil when no title matches. Display names are not unique;
// first-in-catalog-order is the documented tie-break.
func FindByTitle(titles []Title, name string) *Title {
	for i := range titles {
		if titles[i].Title == name {
			return &titles[i]
		}
	}
	return nil
}
