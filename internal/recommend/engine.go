// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

// Engine owns the active SimilarityIndex and answers queries against it.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// index is swapped only after a complete build.
	index   atomic.Pointer[SimilarityIndex]
	buildMu sync.Mutex

	// results is nil when the cache is disabled.
	results *cache.LRU[resultKey, Recommendation]

	builds    atomic.Int64
	requests  atomic.Int64
	noMatches atomic.Int64
	errors    atomic.Int64
}

// resultKey identifies a cached Recommend result. The fingerprint ties it
// to the index it was computed against.
type resultKey struct {
	fingerprint uint64
	query       string
	topN        int
}

// NewEngine creates a new recommendation engine with no index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.results = cache.NewLRU[resultKey, Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Index returns the active index, or nil before the first build.
func (e *Engine) Index() *SimilarityIndex {
	return e.index.Load()
}

// Rebuild builds an index for corpus and makes it active. Readers keep using
// the previous index until the new one is complete. When corpus has the same
// fingerprint as the active index, the active index is kept and rebuilt is
// false.
func (e *Engine) Rebuild(ctx context.Context, corpus *catalog.Corpus) (rebuilt bool, err error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	logger := e.requestLogger(ctx)

	if cur := e.index.Load(); cur != nil && cur.Fingerprint() == corpus.Fingerprint() && cur.Len() == corpus.Len() {
		metrics.RecordIndexBuild(metrics.StatusUnchanged, 0)
		logger.Debug().
			Str("fingerprint", corpus.FingerprintHex()).
			Msg("corpus unchanged, keeping index")
		return false, nil
	}

	logger.Info().
		Int("entries", corpus.Len()).
		Int64("matrix_bytes", algorithms.MatrixBytes(corpus.Len())).
		Msg("building similarity index")

	start := time.Now()
	idx, err := BuildIndex(ctx, corpus, e.config)
	if err != nil {
		e.errors.Add(1)
		metrics.RecordIndexBuild(metrics.StatusFailure, time.Since(start))
		return false, fmt.Errorf("build index: %w", err)
	}

	e.index.Store(idx)
	e.builds.Add(1)
	if e.results != nil {
		e.results.Clear()
	}

	stats := idx.Stats()
	metrics.RecordIndexBuild(metrics.StatusSuccess, stats.BuildDuration)
	metrics.SetIndexSize(stats.Entries, stats.VocabularySize, stats.MatrixBytes)

	logger.Info().
		Int("entries", stats.Entries).
		Int("vocabulary", stats.VocabularySize).
		Int("zero_vectors", stats.ZeroVectors).
		Str("fingerprint", stats.Fingerprint).
		Dur("duration", stats.BuildDuration).
		Msg("similarity index ready")

	return true, nil
}

// requestLogger adds correlation and run IDs from ctx to the engine logger.
func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	return logging.CtxWith(logging.ContextWithLogger(ctx, e.logger)).Logger()
}

// normalizeTopN applies Limits to a requested count.
func (e *Engine) normalizeTopN(topN int) (int, error) {
	if topN < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}
	if topN == 0 {
		topN = e.config.Limits.DefaultTopN
	}
	if topN > e.config.Limits.MaxTopN {
		topN = e.config.Limits.MaxTopN
	}
	return topN, nil
}

// Recommend resolves query against the active index and returns up to topN
// similar entries. topN == 0 selects Limits.DefaultTopN. A query that
// resolves to no title is not an error: the result has a nil Match.
func (e *Engine) Recommend(ctx context.Context, query string, topN int) (*Recommendation, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrIndexNotBuilt
	}
	n, err := e.normalizeTopN(topN)
	if err != nil {
		return nil, err
	}

	key := resultKey{fingerprint: idx.Fingerprint(), query: query, topN: n}
	if rec, ok := e.cachedResult(key); ok {
		logger := e.requestLogger(ctx)
		logger.Debug().Str("query", query).Msg("result cache hit")
		return &rec, nil
	}

	rec, err := e.recommendOne(idx, query, n)
	if err != nil {
		return nil, err
	}
	if e.results != nil {
		e.results.Add(key, rec.Clone())
	}

	logger := e.requestLogger(ctx)
	if rec.Match == nil {
		logger.Info().Str("query", query).Msg("no close match")
	} else {
		logger.Info().
			Str("query", query).
			Str("match", rec.Match.Title).
			Float64("ratio", rec.Match.Ratio).
			Int("returned", len(rec.Items)).
			Msg("recommendation complete")
	}
	return &rec, nil
}

// cachedResult looks up key and counts a hit as a request. The returned
// value is a copy the caller may modify.
func (e *Engine) cachedResult(key resultKey) (Recommendation, bool) {
	if e.results == nil {
		return Recommendation{}, false
	}
	rec, ok := e.results.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		return Recommendation{}, false
	}
	e.requests.Add(1)
	if rec.Match == nil {
		e.noMatches.Add(1)
	}
	return rec.Clone(), true
}

// recommendOne runs one query and records its metrics.
func (e *Engine) recommendOne(idx *SimilarityIndex, query string, topN int) (Recommendation, error) {
	start := time.Now()
	e.requests.Add(1)

	rec, err := idx.Recommend(query, topN)
	switch {
	case err != nil:
		e.errors.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeError, 0, time.Since(start))
		return rec, err
	case rec.Match == nil:
		e.noMatches.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeNoMatch, 0, time.Since(start))
	default:
		metrics.RecordRecommendation(metrics.OutcomeMatched, rec.Match.Ratio, time.Since(start))
	}
	return rec, nil
}

// RecommendBatch runs Recommend for every query against a single index
// snapshot. Queries are spread over Limits.BatchWorkers goroutines; results
// and rows are assembled in input order.
func (e *Engine) RecommendBatch(ctx context.Context, queries []string, topN int) (*BatchReport, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrIndexNotBuilt
	}
	n, err := e.normalizeTopN(topN)
	if err != nil {
		return nil, err
	}

	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = logging.GenerateRunID()
		ctx = logging.ContextWithRunID(ctx, runID)
	}
	logger := e.requestLogger(ctx)
	logger.Info().Int("inputs", len(queries)).Int("top_n", n).Msg("starting batch")

	start := time.Now()
	results, err := e.runBatch(ctx, idx, queries, n)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{
		RunID:            runID,
		Inputs:           len(queries),
		TopN:             n,
		Results:          results,
		Rows:             make([]BatchRow, 0, len(queries)),
		IndexFingerprint: idx.Stats().Fingerprint,
		GeneratedAt:      time.Now(),
	}

	matched := make(map[string]struct{})
	for _, rec := range results {
		// Rows are placeholders or recommendations, never dropped.
		report.Rows = append(report.Rows, RowsFor(rec)...)
		if rec.Match != nil {
			matched[rec.Query] = struct{}{}
		}
	}
	report.Matched = len(matched)
	report.Duration = time.Since(start)

	metrics.RecordBatch(report.Inputs, len(report.Rows), report.Duration)
	logger.Info().
		Int("inputs", report.Inputs).
		Int("matched", report.Matched).
		Int("rows", len(report.Rows)).
		Dur("duration", report.Duration).
		Msg("batch complete")

	return report, nil
}

// runBatch distributes queries across workers in contiguous chunks.
func (e *Engine) runBatch(ctx context.Context, idx *SimilarityIndex, queries []string, topN int) ([]Recommendation, error) {
	results := make([]Recommendation, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	numWorkers := algorithms.EffectiveWorkers(e.config.Limits.BatchWorkers, len(queries))
	chunkSize := (len(queries) + numWorkers - 1) / numWorkers

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for w := 0; w < numWorkers; w++ {
		lo := w * chunkSize
		hi := min(lo+chunkSize, len(queries))
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			for i := lo; i < hi; i++ {
				if algorithms.ContextCancelled(ctx) {
					return
				}
				rec, err := e.recommendOne(idx, queries[i], topN)
				if err != nil {
					errOnce.Do(func() { firstErr = fmt.Errorf("query %d (%q): %w", i, queries[i], err) })
					return
				}
				results[i] = rec
			}
		}(lo, hi)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Stats returns engine counters and a description of the active index.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{
		Builds:    e.builds.Load(),
		Requests:  e.requests.Load(),
		NoMatches: e.noMatches.Load(),
		Errors:    e.errors.Load(),
	}
	if idx := e.index.Load(); idx != nil {
		stats.Built = true
		stats.Index = idx.Stats()
	}
	if e.results != nil {
		stats.Cache = e.results.Stats()
	}
	return stats
}
