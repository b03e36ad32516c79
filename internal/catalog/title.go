// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package catalog

// MediaType is the kind of catalog entry. The source dataset uses the
// uppercase literals MOVIE and SHOW; anything else is preserved verbatim and
// simply never matches a type filter.
type MediaType string

// Media types as they appear in the source dataset.
const (
	MediaTypeMovie MediaType = "MOVIE"
	MediaTypeShow  MediaType = "SHOW"
)

// Title is one catalog entry. Fields that may be absent in the source data
// (score, runtime, seasons) are pointers so that "missing" is distinguishable
// from zero; a missing IMDBScore fails every minimum-rating comparison.
//
// Genres carries the raw persisted form (e.g. "['Drama', 'Comedy']");
// use ParseGenres to obtain clean tokens. Keeping the raw string here matches
// the tabular display, which shows the field as stored.
type Title struct {
	Title            string    `json:"title"`
	Type             MediaType `json:"type"`
	ReleaseYear      int       `json:"release_year"`
	IMDBScore        *float64  `json:"imdb_score,omitempty"`
	Genres           string    `json:"genres"`
	AgeCertification string    `json:"age_certification,omitempty"`
	Runtime          *int      `json:"runtime,omitempty"`
	Seasons          *float64  `json:"seasons,omitempty"`
	Description      string    `json:"description,omitempty"`
}

// GenreTokens returns the normalized genre tokens for this title.
// A malformed or empty genre field yields a nil slice, never an error.
func (t *Title) GenreTokens() []string {
	return ParseGenres(t.Genres)
}

// HasAnyGenre reports whether the title carries at least one of the given
// normalized genre tokens. An empty want list matches nothing.
func (t *Title) HasAnyGenre(want []string) bool {
	if len(want) == 0 {
		return false
	}
	tokens := t.GenreTokens()
	for _, w := range want {
		for _, tok := range tokens {
			if tok == w {
				return true
			}
		}
	}
	return false
}
