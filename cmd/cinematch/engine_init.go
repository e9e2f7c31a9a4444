// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
	"github.com/tomtom215/cinematch/internal/recommend/titlematch"
)

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Vectorizer: algorithms.TFIDFConfig{
			Fields:         cfg.Recommend.Fields,
			RequiredFields: cfg.Recommend.RequiredFields,
			MinTokenLength: cfg.Recommend.MinTokenLength,
		},
		Similarity: recommend.SimilarityConfig{
			Workers:    cfg.Recommend.Workers,
			MaxEntries: cfg.Recommend.MaxEntries,
		},
		Matching: titlematch.Options{
			MinRatio:      cfg.Recommend.MinRatio,
			CaseSensitive: cfg.Recommend.CaseSensitive,
		},
		Limits: recommend.LimitsConfig{
			DefaultTopN:  cfg.Recommend.DefaultTopN,
			MaxTopN:      cfg.Recommend.MaxTopN,
			BatchWorkers: cfg.Recommend.BatchWorkers,
		},
		Cache: recommend.CacheConfig{
			Enabled:    cfg.Recommend.CacheSize > 0,
			MaxEntries: cfg.Recommend.CacheSize,
			TTL:        cfg.Recommend.CacheTTL,
		},
	}
}

// buildLoadOptions creates catalog load options from app config.
// Only the vectorized fields are read from the file.
func buildLoadOptions(cfg *config.Config) catalog.LoadOptions {
	return catalog.LoadOptions{
		Fields:          cfg.Recommend.Fields,
		StrictColumns:   cfg.Catalog.StrictColumns,
		RequiredColumns: cfg.Catalog.RequiredColumns,
	}
}

// initEngine loads the catalog and builds the first index.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	corpus, err := catalog.LoadFile(cfg.Catalog.Path, buildLoadOptions(cfg))
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("catalog", cfg.Catalog.Path).
		Int("entries", corpus.Len()).
		Strs("fields", cfg.Recommend.Fields).
		Msg("catalog loaded")

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	if _, err := engine.Rebuild(ctx, corpus); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	return engine, nil
}
