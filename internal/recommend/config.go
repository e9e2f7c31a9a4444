// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
	"github.com/tomtom215/cinematch/internal/recommend/titlematch"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Vectorizer contains TF-IDF parameters.
	Vectorizer algorithms.TFIDFConfig `json:"vectorizer"`

	// Similarity contains matrix build parameters.
	Similarity SimilarityConfig `json:"similarity"`

	// Matching contains title resolution parameters.
	Matching titlematch.Options `json:"matching"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result cache settings.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig contains settings for the single-query result cache.
type CacheConfig struct {
	// Enabled memoizes Recommend results for the active index.
	// Default: true.
	Enabled bool `json:"enabled"`

	// MaxEntries is the cache capacity.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`

	// TTL is the lifetime of a cached result.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`
}

// SimilarityConfig contains parameters for the cosine matrix build.
type SimilarityConfig struct {
	// Workers is the number of goroutines computing matrix rows.
	// Zero uses runtime.NumCPU(). Results do not depend on this value.
	// Default: 0.
	Workers int `json:"workers"`

	// MaxEntries refuses to build a matrix for larger corpora.
	// Memory usage is 8·N² bytes: 20000 entries need 3.2 GB.
	// Default: 20000.
	MaxEntries int `json:"max_entries"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopN is used when a request asks for zero recommendations.
	// Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the number of recommendations per query.
	// Default: 100.
	MaxTopN int `json:"max_top_n"`

	// BatchWorkers is the number of goroutines resolving batch queries.
	// Zero uses runtime.NumCPU().
	// Default: 0.
	BatchWorkers int `json:"batch_workers"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Vectorizer: algorithms.DefaultTFIDFConfig(),
		Similarity: SimilarityConfig{
			Workers:    0,
			MaxEntries: 20000,
		},
		Matching: titlematch.DefaultOptions(),
		Limits: LimitsConfig{
			DefaultTopN:  10,
			MaxTopN:      100,
			BatchWorkers: 0,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 1000,
			TTL:        10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Vectorizer.Fields) == 0 {
		return fmt.Errorf("vectorizer.fields must not be empty")
	}
	for i, f := range c.Vectorizer.Fields {
		if f == "" {
			return fmt.Errorf("vectorizer.fields[%d] must not be blank", i)
		}
	}
	if c.Vectorizer.MinTokenLength < 1 {
		return fmt.Errorf("vectorizer.min_token_length must be positive, got %d", c.Vectorizer.MinTokenLength)
	}

	if c.Similarity.Workers < 0 {
		return fmt.Errorf("similarity.workers must be non-negative, got %d", c.Similarity.Workers)
	}
	if c.Similarity.MaxEntries < 1 {
		return fmt.Errorf("similarity.max_entries must be positive, got %d", c.Similarity.MaxEntries)
	}

	if err := c.Matching.Validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}

	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.BatchWorkers < 0 {
		return fmt.Errorf("limits.batch_workers must be non-negative, got %d", c.Limits.BatchWorkers)
	}

	if c.Cache.Enabled {
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Vectorizer.Fields = append([]string(nil), c.Vectorizer.Fields...)
	clone.Vectorizer.RequiredFields = append([]string(nil), c.Vectorizer.RequiredFields...)
	return &clone
}
