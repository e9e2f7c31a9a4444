// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for RecommendationsTotal.
const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
	OutcomeError   = "error"
)

// Status label values for IndexBuildsTotal.
const (
	StatusSuccess   = "success"
	StatusFailure   = "failure"
	StatusUnchanged = "unchanged"
)

// Result label values for CatalogRefreshTotal.
const (
	RefreshRebuilt   = "rebuilt"
	RefreshUnchanged = "unchanged"
	RefreshError     = "error"
)

// Result label values for ResultCacheTotal.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	// Index Build Metrics
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_index_build_duration_seconds",
			Help:    "Duration of similarity index builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_index_builds_total",
			Help: "Total number of similarity index builds",
		},
		[]string{"status"}, // "success", "failure", "unchanged"
	)

	IndexEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_index_entries",
			Help: "Number of catalog entries in the active index",
		},
	)

	IndexVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_index_vocabulary_terms",
			Help: "Number of distinct terms in the active vocabulary",
		},
	)

	IndexMatrixBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_index_matrix_bytes",
			Help: "Memory held by the active similarity matrix",
		},
	)

	IndexLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_index_last_build_timestamp_seconds",
			Help: "Unix timestamp of the last successful index build",
		},
	)

	// Query Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_recommendations_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"outcome"}, // "matched", "no_match", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_recommendation_duration_seconds",
			Help:    "Latency of a single recommendation query",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	TitleMatchRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_title_match_ratio",
			Help:    "Similarity ratio of accepted title matches",
			Buckets: prometheus.LinearBuckets(0.5, 0.05, 11), // 0.5 .. 1.0
		},
	)

	// Batch Metrics
	BatchInputsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_batch_inputs_total",
			Help: "Total number of titles submitted in batch runs",
		},
	)

	BatchRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_batch_rows_total",
			Help: "Total number of result rows produced by batch runs",
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_batch_duration_seconds",
			Help:    "Duration of batch runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Export Metrics
	ExportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_export_rows_total",
			Help: "Total number of rows written to result sinks",
		},
		[]string{"sink"}, // "csv", "json", "table", "duckdb", "sqlite", "parquet"
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_export_duration_seconds",
			Help:    "Duration of result exports in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sink"},
	)

	ExportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_export_errors_total",
			Help: "Total number of failed result exports",
		},
		[]string{"sink"},
	)

	// Result Cache Metrics
	ResultCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_result_cache_total",
			Help: "Total number of recommendation result cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Catalog Refresh Metrics
	CatalogRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_catalog_refresh_total",
			Help: "Total number of catalog refresh checks",
		},
		[]string{"result"}, // "rebuilt", "unchanged", "error"
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinematch_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordIndexBuild records an index build attempt.
func RecordIndexBuild(status string, duration time.Duration) {
	IndexBuildsTotal.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		IndexBuildDuration.Observe(duration.Seconds())
		IndexLastBuild.Set(float64(time.Now().Unix()))
	}
}

// SetIndexSize publishes the dimensions of the active index.
func SetIndexSize(entries, vocabulary int, matrixBytes int64) {
	IndexEntries.Set(float64(entries))
	IndexVocabularySize.Set(float64(vocabulary))
	IndexMatrixBytes.Set(float64(matrixBytes))
}

// RecordRecommendation records one query. ratio is only observed for matches.
func RecordRecommendation(outcome string, ratio float64, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if outcome == OutcomeMatched {
		TitleMatchRatio.Observe(ratio)
	}
}

// RecordBatch records a completed batch run.
func RecordBatch(inputs, rows int, duration time.Duration) {
	BatchInputsTotal.Add(float64(inputs))
	BatchRowsTotal.Add(float64(rows))
	BatchDuration.Observe(duration.Seconds())
}

// RecordExport records a write to a result sink.
func RecordExport(sink string, rows int, duration time.Duration, err error) {
	ExportDuration.WithLabelValues(sink).Observe(duration.Seconds())
	if err != nil {
		ExportErrors.WithLabelValues(sink).Inc()
		return
	}
	ExportRowsTotal.WithLabelValues(sink).Add(float64(rows))
}

// RecordCacheLookup records a result cache lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		ResultCacheTotal.WithLabelValues(CacheHit).Inc()
		return
	}
	ResultCacheTotal.WithLabelValues(CacheMiss).Inc()
}

// RecordCatalogRefresh records the result of a refresh check.
func RecordCatalogRefresh(result string) {
	CatalogRefreshTotal.WithLabelValues(result).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// WriteTextfile writes the default registry in the text exposition format,
// for collection by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
