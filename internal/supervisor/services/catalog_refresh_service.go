// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// IndexRebuilder swaps in a new index for a corpus.
// *recommend.Engine satisfies it.
type IndexRebuilder interface {
	// Rebuild reports false when the corpus matches the active index.
	Rebuild(ctx context.Context, corpus *catalog.Corpus) (bool, error)
}

// CatalogRefreshConfig holds configuration for the catalog refresh service.
type CatalogRefreshConfig struct {
	// Path is the catalog file to watch.
	Path string

	// Interval is how often the file is checked.
	Interval time.Duration

	// LoadOptions is passed to catalog.LoadFile.
	LoadOptions catalog.LoadOptions
}

// fileStamp is the part of a file's stat used to detect changes.
type fileStamp struct {
	size    int64
	modTime time.Time
}

// CatalogRefreshService reloads the catalog while an interactive session runs.
type CatalogRefreshService struct {
	engine IndexRebuilder
	config CatalogRefreshConfig
	logger zerolog.Logger
	name   string

	last fileStamp
}

// NewCatalogRefreshService creates a new catalog refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefreshService(engine IndexRebuilder, cfg CatalogRefreshConfig, logger zerolog.Logger) *CatalogRefreshService {
	return &CatalogRefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "catalog-refresh").Str("path", cfg.Path).Logger(),
		name:   "catalog-refresh-service",
	}
}

// Serve implements the suture.Service interface.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.config.Interval = 30 * time.Second
	}

	// The engine was built from the file as it is now.
	if stamp, err := statFile(s.config.Path); err == nil {
		s.last = stamp
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("catalog refresh service started")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service stopping")
			return ctx.Err()

		case <-ticker.C:
			result := s.check(ctx)
			metrics.RecordCatalogRefresh(result)
		}
	}
}

// check reloads the catalog if its stat changed and returns the refresh result.
func (s *CatalogRefreshService) check(ctx context.Context) string {
	stamp, err := statFile(s.config.Path)
	if err != nil {
		s.logger.Warn().Err(err).Msg("catalog stat failed")
		return metrics.RefreshError
	}
	if stamp == s.last {
		return metrics.RefreshUnchanged
	}

	start := time.Now()
	corpus, err := catalog.LoadFile(s.config.Path, s.config.LoadOptions)
	if err != nil {
		s.logger.Warn().Err(err).Msg("catalog reload failed, keeping current index")
		return metrics.RefreshError
	}

	rebuilt, err := s.engine.Rebuild(ctx, corpus)
	if err != nil {
		s.logger.Warn().Err(err).Msg("index rebuild failed, keeping current index")
		return metrics.RefreshError
	}

	// Only accepted content advances the stamp; a failed load is retried.
	s.last = stamp
	if !rebuilt {
		s.logger.Debug().Msg("catalog touched but content unchanged")
		return metrics.RefreshUnchanged
	}

	s.logger.Info().
		Int("entries", corpus.Len()).
		Str("fingerprint", corpus.FingerprintHex()).
		Dur("duration", time.Since(start)).
		Msg("catalog reloaded")
	return metrics.RefreshRebuilt
}

func statFile(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, fmt.Errorf("stat catalog: %w", err)
	}
	return fileStamp{size: info.Size(), modTime: info.ModTime()}, nil
}

// String implements fmt.Stringer for logging.
func (s *CatalogRefreshService) String() string {
	return s.name
}
