// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package catalog

import "errors"

// ErrNothingToRender signals that a Sankey edge set came out empty: either no
// titles survived filtering or no surviving title had a parseable genre. It is
// a valid empty-state outcome for the renderer (draw nothing), distinct from a
// query failure.
var ErrNothingToRender = errors.New("sankey: nothing to render")

// Edge is one title-to-genre flow. Src and Targ follow the column names the
// external flow-diagram renderer expects.
type Edge struct {
	Src  string `json:"src"`
	Targ string `json:"targ"`
}

// BuildEdges expands each title in the local network into one edge per genre
// token. Titles with a missing or malformed genre field contribute no edges.
// If allowed is non-empty, only edges whose target genre is in the allow-list
// are kept.
//
// When the final edge set is empty, BuildEdges returns ErrNothingToRender so
// callers hand the renderer an explicit empty state instead of a meaningless
// zero-length list.
func BuildEdges(titles []Title, allowed []string) ([]Edge, error) {
	var allow map[string]struct{}
	if len(allowed) > 0 {
		allow = make(map[string]struct{}, len(allowed))
		for _, g := range allowed {
			allow[g] = struct{}{}
		}
	}

	var edges []Edge
	for i := range titles {
		for _, tok := range titles[i].GenreTokens() {
			if allow != nil {
				if _, ok := allow[tok]; !ok {
					continue
				}
			}
			edges = append(edges, Edge{Src: titles[i].Title, Targ: tok})
		}
	}

	if len(edges) == 0 {
		return nil, ErrNothingToRender
	}
	return edges, nil
}
