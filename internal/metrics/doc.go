// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus instrumentation for index builds,
recommendation queries, batch runs and result exports.

All collectors are registered on the default registry through promauto.
Callers use the RecordX helpers rather than touching collectors directly.

# Available Metrics

Index Metrics:
  - cinematch_index_build_duration_seconds: Successful build time (histogram)
  - cinematch_index_builds_total: Build attempts (counter)
    Labels: status (success, failure, unchanged)
  - cinematch_index_entries: Entries in the active index (gauge)
  - cinematch_index_vocabulary_terms: Vocabulary size (gauge)
  - cinematch_index_matrix_bytes: Similarity matrix memory, 8·N² (gauge)
  - cinematch_index_last_build_timestamp_seconds: Last successful build (gauge)

Query Metrics:
  - cinematch_recommendations_total: Queries (counter)
    Labels: outcome (matched, no_match, error)
  - cinematch_recommendation_duration_seconds: Query latency (histogram)
  - cinematch_title_match_ratio: Ratio of accepted matches (histogram)

Batch and Export Metrics:
  - cinematch_batch_inputs_total, cinematch_batch_rows_total (counters)
  - cinematch_batch_duration_seconds (histogram)
  - cinematch_export_rows_total, cinematch_export_errors_total (counters)
    Labels: sink (csv, json, table, duckdb, sqlite, parquet)
  - cinematch_export_duration_seconds (histogram)
    Labels: sink

Refresh Metrics:
  - cinematch_catalog_refresh_total (counter)
    Labels: result (rebuilt, unchanged, error)

# Textfile Export

The CLI is short-lived, so there is no scrape endpoint. WriteTextfile writes
the default registry for the node exporter textfile collector:

	cinematch batch --input titles.csv --metrics-file /var/lib/node_exporter/cinematch.prom
*/
package metrics
