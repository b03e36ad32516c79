// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/titlegraph/internal/catalog"
	"github.com/tomtom215/titlegraph/internal/config"
	"github.com/tomtom215/titlegraph/internal/logging"
	"github.com/tomtom215/titlegraph/internal/metrics"
)

// titleKeyPrefix namespaces catalog documents; the zero-padded sequence
// number keeps Badger's lexicographic key iteration in catalog order.
const titleKeyPrefix = "title:"

// titleKey formats the document key for catalog position seq.
func titleKey(seq int) []byte {
	return []byte(fmt.Sprintf("%s%010d", titleKeyPrefix, seq))
}

// BadgerStore serves the catalog from a BadgerDB document store. Records are
// JSON documents; the full collection is materialized into an immutable
// in-memory snapshot at startup and queries are answered from that snapshot
// with the catalog package, mirroring the in-memory variant of the original
// dashboard backend. The snapshot is never mutated, so it is safe to share
// across concurrent request handlers without locking.
type BadgerStore struct {
	db       *badger.DB
	csvPath  string
	snapshot []catalog.Title
}

// OpenBadger opens (or creates) the Badger catalog store, seeding it from the
// configured CSV when empty, and loads the in-memory snapshot.
func OpenBadger(ctx context.Context, cfg *config.StoreConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.BadgerPath)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	s := &BadgerStore{db: db, csvPath: cfg.CSVPath}
	if err := s.ensureCatalog(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.loadSnapshot(); err != nil {
		_ = db.Close()
		return nil, err
	}

	metrics.CatalogSize.Set(float64(len(s.snapshot)))
	logging.Info().
		Str("backend", config.BackendBadger).
		Str("path", cfg.BadgerPath).
		Int("titles", len(s.snapshot)).
		Msg("Catalog store opened")

	return s, nil
}

// ensureCatalog seeds an empty store from the CSV file.
func (s *BadgerStore) ensureCatalog() error {
	empty := true
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(titleKeyPrefix)})
		defer it.Close()
		it.Rewind()
		empty = !it.Valid()
		return nil
	})
	if err != nil {
		return fmt.Errorf("check catalog documents: %w", err)
	}
	if !empty {
		return nil
	}

	if s.csvPath == "" {
		return ErrNoCatalogData
	}

	titles, err := ReadCatalogCSV(s.csvPath)
	if err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i := range titles {
		doc, err := json.Marshal(&titles[i])
		if err != nil {
			return fmt.Errorf("marshal title document: %w", err)
		}
		if err := wb.Set(titleKey(i), doc); err != nil {
			return fmt.Errorf("write title document: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush catalog seed: %w", err)
	}
	return nil
}

// loadSnapshot materializes every title document into the in-memory catalog
// snapshot, in key (catalog) order.
func (s *BadgerStore) loadSnapshot() error {
	var titles []catalog.Title
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(titleKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var t catalog.Title
				if err := json.Unmarshal(val, &t); err != nil {
					return fmt.Errorf("unmarshal title document: %w", err)
				}
				titles = append(titles, t)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load catalog snapshot: %w", err)
	}

	s.snapshot = titles
	return nil
}

// Backend returns the backend name.
func (s *BadgerStore) Backend() string { return config.BackendBadger }

// Ping reports whether the store is open.
func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return fmt.Errorf("badger store is closed")
	}
	return nil
}

// Close closes the document store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Count returns the snapshot size.
func (s *BadgerStore) Count(context.Context) (int, error) {
	return len(s.snapshot), nil
}

// DistinctYears returns all distinct release years, ascending.
func (s *BadgerStore) DistinctYears(context.Context) (_ []int, err error) {
	defer s.record("distinct_years", time.Now(), &err)
	return catalog.DistinctYears(s.snapshot), nil
}

// DistinctGenres returns the sorted union of normalized genre tokens.
func (s *BadgerStore) DistinctGenres(context.Context) (_ []string, err error) {
	defer s.record("distinct_genres", time.Now(), &err)
	return catalog.DistinctGenres(s.snapshot), nil
}

// FindByTitle returns the first matching record in catalog order, or
// (nil, nil) when absent.
func (s *BadgerStore) FindByTitle(_ context.Context, title string) (_ *catalog.Title, err error) {
	defer s.record("find_by_title", time.Now(), &err)

	if t := catalog.FindByTitle(s.snapshot, title); t != nil {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

// QueryFiltered extracts the local network from the snapshot.
func (s *BadgerStore) QueryFiltered(_ context.Context, f catalog.Filter) (_ []catalog.Title, err error) {
	defer s.record("query_filtered", time.Now(), &err)
	return catalog.Extract(s.snapshot, f), nil
}

// Titles returns distinct display titles in order of first appearance.
func (s *BadgerStore) Titles(context.Context) (_ []string, err error) {
	defer s.record("titles", time.Now(), &err)

	names := make([]string, 0, len(s.snapshot))
	for i := range s.snapshot {
		names = append(names, s.snapshot[i].Title)
	}
	return dedupeInOrder(names), nil
}

// record emits store query metrics; used via defer with the named error.
func (s *BadgerStore) record(op string, start time.Time, err *error) {
	metrics.RecordStoreQuery(op, config.BackendBadger, time.Since(start), *err)
}
