// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildEdges_OneEdgePerGenre(t *testing.T) {
	titles := []Title{
		{Title: "A", Genres: "['Drama', 'Comedy', 'Romance']"},
		{Title: "B", Genres: "['Thriller']"},
	}

	edges, err := BuildEdges(titles, nil)
	if err != nil {
		t.Fatalf("BuildEdges returned error: %v", err)
	}

	want := []Edge{
		{Src: "A", Targ: "Drama"},
		{Src: "A", Targ: "Comedy"},
		{Src: "A", Targ: "Romance"},
		{Src: "B", Targ: "Thriller"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("BuildEdges = %v, want %v", edges, want)
	}
}

func TestBuildEdges_KTokensEmitKEdges(t *testing.T) {
	titles := []Title{{Title: "X", Genres: "['A', 'B', 'C', 'D']"}}

	edges, err := BuildEdges(titles, nil)
	if err != nil {
		t.Fatalf("BuildEdges returned error: %v", err)
	}
	if len(edges) != 4 {
		t.Errorf("got %d edges for 4 genre tokens, want 4", len(edges))
	}
	for _, e := range edges {
		if e.Src != "X" {
			t.Errorf("edge source = %q, want %q", e.Src, "X")
		}
	}
}

func TestBuildEdges_MalformedGenresContributeNoEdges(t *testing.T) {
	titles := []Title{
		{Title: "Broken", Genres: ""},
		{Title: "AlsoBroken", Genres: "[]"},
		{Title: "OK", Genres: "['Drama']"},
	}

	edges, err := BuildEdges(titles, nil)
	if err != nil {
		t.Fatalf("BuildEdges returned error: %v", err)
	}
	if len(edges) != 1 || edges[0].Src != "OK" {
		t.Errorf("BuildEdges = %v, want single OK->Drama edge", edges)
	}
}

func TestBuildEdges_AllowListFiltersTargets(t *testing.T) {
	titles := []Title{
		{Title: "A", Genres: "['Drama', 'Comedy']"},
		{Title: "B", Genres: "['Comedy', 'Horror']"},
	}

	edges, err := BuildEdges(titles, []string{"Comedy"})
	if err != nil {
		t.Fatalf("BuildEdges returned error: %v", err)
	}

	want := []Edge{
		{Src: "A", Targ: "Comedy"},
		{Src: "B", Targ: "Comedy"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("BuildEdges = %v, want %v", edges, want)
	}
}

func TestBuildEdges_EmptyNetworkSignalsNothingToRender(t *testing.T) {
	edges, err := BuildEdges(nil, nil)
	if !errors.Is(err, ErrNothingToRender) {
		t.Fatalf("BuildEdges err = %v, want ErrNothingToRender", err)
	}
	if edges != nil {
		t.Errorf("BuildEdges returned edges %v alongside nothing-to-render", edges)
	}
}

func TestBuildEdges_AllowListEliminatingEverythingSignalsNothingToRender(t *testing.T) {
	titles := []Title{{Title: "A", Genres: "['Drama']"}}

	_, err := BuildEdges(titles, []string{"Western"})
	if !errors.Is(err, ErrNothingToRender) {
		t.Fatalf("BuildEdges err = %v, want ErrNothingToRender", err)
	}
}
