// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package database stores batch recommendation results.

Two drivers are supported behind database/sql:

  - duckdb (github.com/duckdb/duckdb-go/v2): embedded analytical store that
    can also export a run to Parquet
  - sqlite (modernc.org/sqlite): pure-Go store for builds without cgo

# Schema

	<table>_runs: run_id, generated_at, inputs, matched, top_n, row_count,
	              index_fingerprint, duration_ms
	<table>:      run_id, row_num, input_title, closest_match,
	              recommended_title, result_rank, score, matched

The result table mirrors the CLI's four-column batch table. Placeholder rows
keep result_rank 0 and score 0.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	if err := db.SaveBatch(ctx, report); err != nil {
	    return err
	}
	if err := db.ExportParquet(ctx, report.RunID, "results.parquet"); err != nil {
	    return err
	}

# Thread Safety

The pool is limited to one connection, so operations are serialized by
database/sql. A DB is safe for concurrent use.
*/
package database
