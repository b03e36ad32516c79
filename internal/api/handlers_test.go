// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/titlegraph/internal/config"
	"github.com/tomtom215/titlegraph/internal/models"
	"github.com/tomtom215/titlegraph/internal/store"
)

const testCatalogCSV = `id,title,type,description,release_year,age_certification,runtime,genres,production_countries,seasons,imdb_id,imdb_score,imdb_votes
ts1,Heist Movie,MOVIE,A crew plans one last job.,2008,R,117,"['Crime', 'Thriller']",['US'],,tt0100001,6.0,120000
ts2,Long Show,SHOW,A family drama across decades.,2008,TV-MA,45,['Drama'],['US'],4.0,tt0100002,9.0,540000
ts3,Old Movie,MOVIE,A classic romance.,1997,PG,98,"['Drama', 'Romance']",['GB'],,tt0100003,8.1,330000
ts4,Unscored Movie,MOVIE,Never rated.,2008,,90,['Comedy'],['US'],,tt0100004,,
ts5,Low Movie,MOVIE,It tried.,2008,PG-13,101,['Horror'],['US'],,tt0100005,3.2,9000
`

// newTestServer spins up the full router over an in-memory document store
// seeded with the test catalog.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	csvPath := filepath.Join(t.TempDir(), "titles.csv")
	if err := os.WriteFile(csvPath, []byte(testCatalogCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	st, err := store.Open(context.Background(), &config.StoreConfig{
		Backend:  config.BackendBadger,
		CSVPath:  csvPath,
		InMemory: true,
	})
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{}
	handler := NewHandler(st, cfg)
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})

	srv := httptest.NewServer(NewRouter(handler, mw).Setup())
	t.Cleanup(srv.Close)
	return srv
}

// getEnvelope performs a GET and decodes the standard response envelope.
func getEnvelope(t *testing.T, srv *httptest.Server, path string) (int, *models.APIResponse) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	var envelope models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
	return resp.StatusCode, &envelope
}

// decodeData re-marshals the envelope's Data field into the typed payload.
func decodeData(t *testing.T, envelope *models.APIResponse, out interface{}) {
	t.Helper()

	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode data payload: %v", err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/health")
	if status != http.StatusOK {
		t.Errorf("health status = %d, want 200", status)
	}
	var health models.HealthStatus
	decodeData(t, envelope, &health)
	if health.Status != "healthy" {
		t.Errorf("health.Status = %q, want healthy", health.Status)
	}
	if health.StoreBackend != config.BackendBadger {
		t.Errorf("health.StoreBackend = %q", health.StoreBackend)
	}
	if health.CatalogSize != 5 {
		t.Errorf("health.CatalogSize = %d, want 5", health.CatalogSize)
	}

	if status, _ := getEnvelope(t, srv, "/api/v1/health/live"); status != http.StatusOK {
		t.Errorf("liveness status = %d, want 200", status)
	}
	if status, _ := getEnvelope(t, srv, "/api/v1/health/ready"); status != http.StatusOK {
		t.Errorf("readiness status = %d, want 200", status)
	}
}

func TestCatalogYears(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/catalog/years")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var years []int
	decodeData(t, envelope, &years)
	if len(years) != 2 || years[0] != 1997 || years[1] != 2008 {
		t.Errorf("years = %v, want [1997 2008]", years)
	}
}

func TestCatalogGenres(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/catalog/genres")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var genres []string
	decodeData(t, envelope, &genres)
	want := []string{"Comedy", "Crime", "Drama", "Horror", "Romance", "Thriller"}
	if len(genres) != len(want) {
		t.Fatalf("genres = %v, want %v", genres, want)
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Errorf("genres[%d] = %q, want %q", i, genres[i], want[i])
		}
	}
}

func TestCatalogTitles(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/catalog/titles")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var options models.TitleOptions
	decodeData(t, envelope, &options)
	if options.Total != 5 {
		t.Errorf("Total = %d, want 5", options.Total)
	}
	if len(options.Titles) != 5 || options.Titles[0] != "Heist Movie" {
		t.Errorf("Titles = %v, want catalog order starting with Heist Movie", options.Titles)
	}
}

func TestCatalogTitles_PrefixFilter(t *testing.T) {
	srv := newTestServer(t)

	_, envelope := getEnvelope(t, srv, "/api/v1/catalog/titles?prefix=lo")
	var options models.TitleOptions
	decodeData(t, envelope, &options)

	// Case-insensitive prefix: matches "Long Show" and "Low Movie".
	if options.Total != 2 {
		t.Fatalf("Total = %d, want 2: %v", options.Total, options.Titles)
	}
	if options.Titles[0] != "Long Show" || options.Titles[1] != "Low Movie" {
		t.Errorf("Titles = %v", options.Titles)
	}
}

func TestCatalogTitleDetail(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/catalog/titles/detail?title=Long+Show")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var detail models.TitleDetail
	decodeData(t, envelope, &detail)
	if detail.Description == "" {
		t.Error("detail payload missing description")
	}
	if len(detail.GenreTokens) != 1 || detail.GenreTokens[0] != "Drama" {
		t.Errorf("GenreTokens = %v, want [Drama]", detail.GenreTokens)
	}
}

func TestCatalogTitleDetail_NotFound(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/catalog/titles/detail?title=No+Such+Title")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", envelope.Error)
	}
}

func TestCatalogTitleDetail_MissingParam(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/catalog/titles/detail")
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}
}

func TestNetwork_FilterRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/network?year=2008&min_rating=5.0&movies=true&tv=false")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var network models.NetworkResponse
	decodeData(t, envelope, &network)
	if network.Total != 1 {
		t.Fatalf("Total = %d, want 1: %+v", network.Total, network.Rows)
	}

	row := network.Rows[0]
	if row.Title != "Heist Movie" {
		t.Errorf("Title = %q, want Heist Movie", row.Title)
	}
	if row.IMDBScore == nil || *row.IMDBScore != 6.0 {
		t.Errorf("IMDBScore = %v, want 6.0", row.IMDBScore)
	}
	if row.Genres != "['Crime', 'Thriller']" {
		t.Errorf("Genres = %q, want raw persisted form in the grid", row.Genres)
	}
}

func TestNetwork_BothUncheckedMatchesNothing(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/network?year=2008&movies=false&tv=false")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var network models.NetworkResponse
	decodeData(t, envelope, &network)
	if network.Total != 0 {
		t.Errorf("Total = %d, want 0 when both media types are deselected", network.Total)
	}
}

func TestNetwork_InvalidYear(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/v1/network",           // missing year
		"/api/v1/network?year=1492", // below bound
		"/api/v1/network?year=2008&min_rating=11", // rating above bound
	} {
		status, envelope := getEnvelope(t, srv, path)
		if status != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, status)
		}
		if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("%s: error = %+v, want VALIDATION_ERROR", path, envelope.Error)
		}
	}
}

func TestNetworkSankey_Edges(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/network/sankey?year=2008&min_rating=5.0&movies=true&tv=false")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var sankey models.SankeyResponse
	decodeData(t, envelope, &sankey)

	// Heist Movie has two genre tokens, so two edges.
	if len(sankey.Edges) != 2 {
		t.Fatalf("edges = %+v, want 2", sankey.Edges)
	}
	if sankey.Edges[0].Src != "Heist Movie" || sankey.Edges[0].Targ != "Crime" {
		t.Errorf("edge[0] = %+v", sankey.Edges[0])
	}
	if sankey.Empty {
		t.Error("Empty = true with a non-empty edge set")
	}
	if sankey.Width != DefaultSankeyWidth || sankey.Height != DefaultSankeyHeight {
		t.Errorf("dims = %dx%d, want defaults %dx%d", sankey.Width, sankey.Height, DefaultSankeyWidth, DefaultSankeyHeight)
	}
}

func TestNetworkSankey_CustomDimensions(t *testing.T) {
	srv := newTestServer(t)

	_, envelope := getEnvelope(t, srv, "/api/v1/network/sankey?year=2008&width=900&height=600")
	var sankey models.SankeyResponse
	decodeData(t, envelope, &sankey)
	if sankey.Width != 900 || sankey.Height != 600 {
		t.Errorf("dims = %dx%d, want 900x600", sankey.Width, sankey.Height)
	}
}

func TestNetworkSankey_DimensionBounds(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/v1/network/sankey?year=2008&width=100",
		"/api/v1/network/sankey?year=2008&width=3000",
		"/api/v1/network/sankey?year=2008&height=50",
		"/api/v1/network/sankey?year=2008&height=9000",
	} {
		status, _ := getEnvelope(t, srv, path)
		if status != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, status)
		}
	}
}

func TestNetworkSankey_NothingToRender(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := getEnvelope(t, srv, "/api/v1/network/sankey?year=2008&movies=false&tv=false")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (empty result is not an error)", status)
	}
	var sankey models.SankeyResponse
	decodeData(t, envelope, &sankey)
	if !sankey.Empty {
		t.Error("Empty = false, want true for an empty edge set")
	}
	if len(sankey.Edges) != 0 {
		t.Errorf("edges = %+v, want none", sankey.Edges)
	}
}

func TestNetworkSankey_GenreAllowList(t *testing.T) {
	srv := newTestServer(t)

	_, envelope := getEnvelope(t, srv, "/api/v1/network/sankey?year=2008&min_rating=5.0&genres=Drama")
	var sankey models.SankeyResponse
	decodeData(t, envelope, &sankey)
	if len(sankey.Edges) != 1 {
		t.Fatalf("edges = %+v, want 1", sankey.Edges)
	}
	if sankey.Edges[0].Src != "Long Show" || sankey.Edges[0].Targ != "Drama" {
		t.Errorf("edge = %+v, want Long Show -> Drama", sankey.Edges[0])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", resp.StatusCode)
	}
}

func TestResponseEnvelope_Headers(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/catalog/years")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("missing ETag header")
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
	if resp.Header.Get("X-Request-Id") == "" && resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}
