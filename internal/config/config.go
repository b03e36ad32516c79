// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

// Package config loads and validates Titlegraph configuration using Koanf v2
// with layered sources (highest priority wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables
package config

import (
	"fmt"
	"time"
)

// Store backends.
const (
	// BackendDuckDB serves the catalog from an embedded DuckDB database,
	// ingesting the CSV file and pushing every query down as SQL.
	BackendDuckDB = "duckdb"

	// BackendBadger serves the catalog from a BadgerDB document store,
	// materializing a read-only in-memory snapshot at startup.
	BackendBadger = "badger"
)

// Config is the root configuration for the Titlegraph server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// StoreConfig selects and configures the catalog store backend.
type StoreConfig struct {
	// Backend is "duckdb" or "badger".
	Backend string `koanf:"backend"`

	// CSVPath is the catalog CSV file ingested at startup. Required unless
	// the chosen backend already holds data at its path.
	CSVPath string `koanf:"csv_path"`

	// DuckDB settings (flat-file analytical backend).
	DuckDBPath string `koanf:"duckdb_path"` // empty = in-memory
	MaxMemory  string `koanf:"max_memory"`
	Threads    int    `koanf:"threads"` // 0 = runtime.NumCPU()

	// Badger settings (document-store backend).
	BadgerPath string `koanf:"badger_path"`

	// InMemory forces both backends into purely in-memory mode (tests,
	// ephemeral deployments).
	InMemory bool `koanf:"in_memory"`
}

// SecurityConfig configures CORS and rate limiting for the API surface.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures the zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks configuration invariants that cannot be expressed through
// defaults alone. It is called by Load after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	switch c.Store.Backend {
	case BackendDuckDB, BackendBadger:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q",
			BackendDuckDB, BackendBadger, c.Store.Backend)
	}

	if c.Store.Backend == BackendBadger && !c.Store.InMemory && c.Store.BadgerPath == "" {
		return fmt.Errorf("store.badger_path is required for the badger backend")
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
