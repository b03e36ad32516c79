// Titlegraph - Streaming Catalog Explorer and Genre Flow Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/titlegraph

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Store.InMemory = true
	cfg.Store.CSVPath = "titles.csv"
	return cfg
}

func TestDefaults_AreValid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidate_RejectsUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Backend = "mongodb"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown store backend")
	}
}

func TestValidate_RejectsBadPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.Server.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_BadgerRequiresPath(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Backend = BackendBadger
	cfg.Store.InMemory = false
	cfg.Store.BadgerPath = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for badger backend without a path")
	}

	cfg.Store.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("in-memory badger should not require a path: %v", err)
	}
}

func TestValidate_RateLimitBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Security.RateLimitReqs = 0

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero rate limit with limiting enabled")
	}

	cfg.Security.RateLimitDisabled = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled rate limiting should skip bounds checks: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"TITLEGRAPH_SERVER_PORT", "server.port"},
		{"TITLEGRAPH_STORE_BACKEND", "store.backend"},
		{"TITLEGRAPH_STORE_CSV_PATH", "store.csv_path"},
		{"TITLEGRAPH_SECURITY_RATE_LIMIT_REQS", "security.rate_limit_reqs"},
		{"TITLEGRAPH_LOGGING_LEVEL", "logging.level"},
	}

	for _, tc := range cases {
		if got := envTransformFunc(tc.in); got != tc.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TITLEGRAPH_SERVER_PORT", "9000")
	t.Setenv("TITLEGRAPH_STORE_BACKEND", BackendBadger)
	t.Setenv("TITLEGRAPH_STORE_IN_MEMORY", "true")
	t.Setenv("TITLEGRAPH_SECURITY_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendBadger {
		t.Errorf("Store.Backend = %q, want badger", cfg.Store.Backend)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
}

func TestLoad_ConfigFileLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 8123\nstore:\n  backend: duckdb\n  in_memory: true\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want 8123 from config file", cfg.Server.Port)
	}
	// Unset values keep their defaults.
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %s, want default 30s", cfg.Server.Timeout)
	}
}

func TestAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8475}
	if got := s.Addr(); got != "127.0.0.1:8475" {
		t.Errorf("Addr = %q", got)
	}
}
