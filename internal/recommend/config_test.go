// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("default config validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("vectorizer uses the five text fields", func(t *testing.T) {
		want := []string{"genres", "keywords", "tagline", "cast", "director"}
		if len(cfg.Vectorizer.Fields) != len(want) {
			t.Fatalf("Fields = %v, want %v", cfg.Vectorizer.Fields, want)
		}
		for i, f := range want {
			if cfg.Vectorizer.Fields[i] != f {
				t.Errorf("Fields[%d] = %q, want %q", i, cfg.Vectorizer.Fields[i], f)
			}
		}
	})

	t.Run("limits config has valid defaults", func(t *testing.T) {
		if cfg.Limits.DefaultTopN != 10 {
			t.Errorf("Limits.DefaultTopN = %d, want 10", cfg.Limits.DefaultTopN)
		}
		if cfg.Limits.MaxTopN < cfg.Limits.DefaultTopN {
			t.Errorf("Limits.MaxTopN = %d, want >= DefaultTopN (%d)", cfg.Limits.MaxTopN, cfg.Limits.DefaultTopN)
		}
	})

	t.Run("matching threshold is explicit", func(t *testing.T) {
		if cfg.Matching.MinRatio != 0.6 {
			t.Errorf("Matching.MinRatio = %v, want 0.6", cfg.Matching.MinRatio)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{name: "valid default config", modify: func(*Config) {}, wantError: false},
		{name: "empty fields", modify: func(c *Config) { c.Vectorizer.Fields = nil }, wantError: true},
		{name: "blank field name", modify: func(c *Config) { c.Vectorizer.Fields = []string{"genres", ""} }, wantError: true},
		{name: "zero min token length", modify: func(c *Config) { c.Vectorizer.MinTokenLength = 0 }, wantError: true},
		{name: "negative workers", modify: func(c *Config) { c.Similarity.Workers = -1 }, wantError: true},
		{name: "zero max entries", modify: func(c *Config) { c.Similarity.MaxEntries = 0 }, wantError: true},
		{name: "ratio above one", modify: func(c *Config) { c.Matching.MinRatio = 1.2 }, wantError: true},
		{name: "ratio zero allowed", modify: func(c *Config) { c.Matching.MinRatio = 0 }, wantError: false},
		{name: "zero default top n", modify: func(c *Config) { c.Limits.DefaultTopN = 0 }, wantError: true},
		{name: "max below default", modify: func(c *Config) { c.Limits.MaxTopN = 5 }, wantError: true},
		{name: "negative batch workers", modify: func(c *Config) { c.Limits.BatchWorkers = -2 }, wantError: true},
		{name: "zero cache entries", modify: func(c *Config) { c.Cache.MaxEntries = 0 }, wantError: true},
		{name: "zero cache ttl", modify: func(c *Config) { c.Cache.TTL = 0 }, wantError: true},
		{name: "disabled cache ignores limits", modify: func(c *Config) { c.Cache = CacheConfig{} }, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	original := DefaultConfig()
	original.Vectorizer.RequiredFields = []string{"genres"}

	clone := original.Clone()
	clone.Vectorizer.Fields[0] = "changed"
	clone.Vectorizer.RequiredFields[0] = "changed"
	clone.Limits.DefaultTopN = 42

	if original.Vectorizer.Fields[0] != "genres" {
		t.Errorf("original Fields modified: %v", original.Vectorizer.Fields)
	}
	if original.Vectorizer.RequiredFields[0] != "genres" {
		t.Errorf("original RequiredFields modified: %v", original.Vectorizer.RequiredFields)
	}
	if original.Limits.DefaultTopN != 10 {
		t.Errorf("original DefaultTopN = %d, want 10", original.Limits.DefaultTopN)
	}
}
