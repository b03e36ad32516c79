// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/titlegraph/internal/catalog"
	"github.com/tomtom215/titlegraph/internal/config"
	"github.com/tomtom215/titlegraph/internal/logging"
	"github.com/tomtom215/titlegraph/internal/metrics"
)

// DuckDBStore serves the catalog from an embedded DuckDB database. The CSV
// file is ingested once into a titles table at startup; afterwards every
// query is pushed down as SQL, mirroring the aggregation-pipeline variant of
// the original dashboard backend.
type DuckDBStore struct {
	conn *sql.DB
	cfg  *config.StoreConfig
}

// titleColumns is the stable SELECT list for full-record queries. seq is the
// ingestion row number and defines catalog order.
const titleColumns = "title, type, release_year, imdb_score, genres, age_certification, runtime, seasons, description"

// OpenDuckDB opens (or creates) the DuckDB catalog database and ensures the
// titles table is populated, ingesting the configured CSV when empty.
func OpenDuckDB(ctx context.Context, cfg *config.StoreConfig) (*DuckDBStore, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	path := cfg.DuckDBPath
	if cfg.InMemory {
		path = "" // empty DSN path = in-memory database
	}

	if path != "" {
		// Ensure the parent directory exists for the database file.
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dbDir, err)
			}
		}
	}

	// preserve_insertion_order keeps un-ORDERed scans in ingestion order;
	// queries still ORDER BY seq so catalog order never depends on it alone.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=true",
		path, numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &DuckDBStore{conn: conn, cfg: cfg}
	if err := s.ensureCatalog(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	count, err := s.Count(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	metrics.CatalogSize.Set(float64(count))
	logging.Info().
		Str("backend", config.BackendDuckDB).
		Str("path", path).
		Int("titles", count).
		Msg("Catalog store opened")

	return s, nil
}

// ensureCatalog creates and populates the titles table from the CSV file when
// the database does not already hold catalog data.
func (s *DuckDBStore) ensureCatalog(ctx context.Context) error {
	var tables int
	err := s.conn.QueryRowContext(ctx,
		`SELECT count(*) FROM information_schema.tables WHERE table_name = 'titles'`).Scan(&tables)
	if err != nil {
		return fmt.Errorf("check titles table: %w", err)
	}
	if tables > 0 {
		return nil
	}

	if s.cfg.CSVPath == "" {
		return ErrNoCatalogData
	}

	// read_csv_auto cannot take a bound parameter, so the path is quoted
	// manually. seq pins the CSV row order as catalog order, and the internal
	// id column of the source data is simply never selected.
	ingest := fmt.Sprintf(`
		CREATE TABLE titles AS
		SELECT
			row_number() OVER () AS seq,
			CAST(title AS VARCHAR) AS title,
			CAST(type AS VARCHAR) AS type,
			CAST(release_year AS INTEGER) AS release_year,
			CAST(imdb_score AS DOUBLE) AS imdb_score,
			CAST(genres AS VARCHAR) AS genres,
			CAST(age_certification AS VARCHAR) AS age_certification,
			CAST(runtime AS INTEGER) AS runtime,
			CAST(seasons AS DOUBLE) AS seasons,
			CAST(description AS VARCHAR) AS description
		FROM read_csv_auto('%s', header=true, sample_size=-1)`,
		strings.ReplaceAll(s.cfg.CSVPath, "'", "''"))

	if _, err := s.conn.ExecContext(ctx, ingest); err != nil {
		return fmt.Errorf("ingest catalog csv %s: %w", s.cfg.CSVPath, err)
	}
	return nil
}

// Backend returns the backend name.
func (s *DuckDBStore) Backend() string { return config.BackendDuckDB }

// Ping verifies database connectivity.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the database connection.
func (s *DuckDBStore) Close() error {
	return s.conn.Close()
}

// Count returns the number of catalog records.
func (s *DuckDBStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM titles`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count titles: %w", err)
	}
	return n, nil
}

// DistinctYears returns all distinct release years, ascending.
func (s *DuckDBStore) DistinctYears(ctx context.Context) (_ []int, err error) {
	defer s.record("distinct_years", time.Now(), &err)

	rows, err := s.conn.QueryContext(ctx, `
		SELECT DISTINCT release_year FROM titles
		WHERE release_year IS NOT NULL
		ORDER BY release_year`)
	if err != nil {
		return nil, fmt.Errorf("distinct years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// DistinctGenres explodes the genre field in SQL (the unwind-then-group shape
// of the original aggregation pipeline) and returns the sorted distinct
// normalized tokens.
func (s *DuckDBStore) DistinctGenres(ctx context.Context) (_ []string, err error) {
	defer s.record("distinct_genres", time.Now(), &err)

	rows, err := s.conn.QueryContext(ctx, `
		SELECT DISTINCT trim(g) AS genre
		FROM (
			SELECT unnest(string_split(
				replace(replace(replace(genres, '[', ''), ']', ''), '''', ''),
				',')) AS g
			FROM titles
			WHERE genres IS NOT NULL
		)
		WHERE trim(g) <> ''
		ORDER BY genre`)
	if err != nil {
		return nil, fmt.Errorf("distinct genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// FindByTitle returns the first record matching the title in catalog order,
// or (nil, nil) when absent.
func (s *DuckDBStore) FindByTitle(ctx context.Context, title string) (_ *catalog.Title, err error) {
	defer s.record("find_by_title", time.Now(), &err)

	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+titleColumns+` FROM titles WHERE title = ? ORDER BY seq LIMIT 1`, title)
	if err != nil {
		return nil, fmt.Errorf("find by title: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	t, err := scanTitle(rows)
	if err != nil {
		return nil, err
	}
	return t, rows.Err()
}

// QueryFiltered pushes the local-network filter down as SQL. The media-type
// checkbox truth table becomes: movies-only or tv-only an equality predicate,
// both checked no predicate, neither checked a predicate no row can satisfy.
// The genre allow-list is applied on the normalized tokens after the fetch so
// both backends share one normalization path.
func (s *DuckDBStore) QueryFiltered(ctx context.Context, f catalog.Filter) (_ []catalog.Title, err error) {
	defer s.record("query_filtered", time.Now(), &err)

	query := `SELECT ` + titleColumns + ` FROM titles WHERE release_year = ? AND imdb_score >= ?`
	switch {
	case f.OnlyMovies && f.OnlyTV:
		// Both checked: no type predicate.
	case f.OnlyMovies:
		query += ` AND type = 'MOVIE'`
	case f.OnlyTV:
		query += ` AND type = 'SHOW'`
	default:
		// Neither checked: force a type no row can have, matching the
		// dashboard's "deselect everything, see nothing" behavior.
		query += ` AND 1 = 0`
	}
	query += ` ORDER BY seq`

	rows, err := s.conn.QueryContext(ctx, query, f.ReleaseYear, f.MinRating)
	if err != nil {
		return nil, fmt.Errorf("query filtered: %w", err)
	}
	defer rows.Close()

	var out []catalog.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		if len(f.Genres) > 0 && !t.HasAnyGenre(f.Genres) {
			continue
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Titles returns distinct display titles in order of first appearance.
func (s *DuckDBStore) Titles(ctx context.Context) (_ []string, err error) {
	defer s.record("titles", time.Now(), &err)

	rows, err := s.conn.QueryContext(ctx, `
		SELECT title FROM titles
		WHERE title IS NOT NULL
		GROUP BY title
		ORDER BY min(seq)`)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, t)
	}
	return dedupeInOrder(titles), rows.Err()
}

// record emits store query metrics; used via defer with the named error.
func (s *DuckDBStore) record(op string, start time.Time, err *error) {
	metrics.RecordStoreQuery(op, config.BackendDuckDB, time.Since(start), *err)
}

// scanTitle scans one titleColumns row into a catalog record, mapping SQL
// NULLs to absent fields.
func scanTitle(rows *sql.Rows) (*catalog.Title, error) {
	var (
		title, mediaType, genres, ageCert, description sql.NullString
		releaseYear, runtimeMin                        sql.NullInt32
		imdbScore, seasons                             sql.NullFloat64
	)
	if err := rows.Scan(&title, &mediaType, &releaseYear, &imdbScore,
		&genres, &ageCert, &runtimeMin, &seasons, &description); err != nil {
		return nil, fmt.Errorf("scan title row: %w", err)
	}

	t := &catalog.Title{
		Title:            title.String,
		Type:             catalog.MediaType(mediaType.String),
		ReleaseYear:      int(releaseYear.Int32),
		Genres:           genres.String,
		AgeCertification: ageCert.String,
		Description:      description.String,
	}
	if imdbScore.Valid {
		v := imdbScore.Float64
		t.IMDBScore = &v
	}
	if runtimeMin.Valid {
		v := int(runtimeMin.Int32)
		t.Runtime = &v
	}
	if seasons.Valid {
		v := seasons.Float64
		t.Seasons = &v
	}
	return t, nil
}
