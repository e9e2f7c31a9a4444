// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// RunSummary describes one stored batch run.
type RunSummary struct {
	RunID            string        `json:"run_id"`
	GeneratedAt      time.Time     `json:"generated_at"`
	Inputs           int           `json:"inputs"`
	Matched          int           `json:"matched"`
	TopN             int           `json:"top_n"`
	RowCount         int           `json:"row_count"`
	IndexFingerprint string        `json:"index_fingerprint"`
	Duration         time.Duration `json:"duration_ns"`
}

// SaveBatch stores a batch report and its result rows in one transaction.
// Saving the same run twice fails on the run_id key.
func (db *DB) SaveBatch(ctx context.Context, report *recommend.BatchReport) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordExport(db.cfg.Driver, len(report.Rows), time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() // Explicitly ignore error - the original error is returned
		}
	}()

	runQuery := fmt.Sprintf(`
		INSERT INTO %s (run_id, generated_at, inputs, matched, top_n, row_count, index_fingerprint, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, db.runsTable())
	if _, err = tx.ExecContext(ctx, runQuery,
		report.RunID,
		report.GeneratedAt.UTC(),
		report.Inputs,
		report.Matched,
		report.TopN,
		len(report.Rows),
		report.IndexFingerprint,
		float64(report.Duration)/float64(time.Millisecond),
	); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", report.RunID, err)
	}

	rowQuery := fmt.Sprintf(`
		INSERT INTO %s (run_id, row_num, input_title, closest_match, recommended_title, result_rank, score, matched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, db.cfg.Table)
	stmt, err := tx.PrepareContext(ctx, rowQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i, row := range report.Rows {
		if _, err = stmt.ExecContext(ctx,
			report.RunID, i, row.InputTitle, row.ClosestMatch, row.RecommendedTitle, row.Rank, row.Score, row.Matched,
		); err != nil {
			return fmt.Errorf("failed to insert result row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch %s: %w", report.RunID, err)
	}
	return nil
}

// Runs returns the most recent stored runs, newest first. limit <= 0
// returns every run.
func (db *DB) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT run_id, generated_at, inputs, matched, top_n, row_count, index_fingerprint, duration_ms
		FROM %s
		ORDER BY generated_at DESC, run_id`, db.runsTable())
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer closeQuietly(rows)

	runs := []RunSummary{}
	for rows.Next() {
		var (
			r          RunSummary
			durationMS float64
		)
		if err := rows.Scan(&r.RunID, &r.GeneratedAt, &r.Inputs, &r.Matched, &r.TopN, &r.RowCount, &r.IndexFingerprint, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS * float64(time.Millisecond))
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Rows returns the stored result table of a run in its original order.
func (db *DB) Rows(ctx context.Context, runID string) ([]recommend.BatchRow, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.checkRun(ctx, runID); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT input_title, closest_match, recommended_title, result_rank, score, matched
		FROM %s
		WHERE run_id = ?
		ORDER BY row_num`, db.cfg.Table)

	rows, err := db.conn.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for %s: %w", runID, err)
	}
	defer closeQuietly(rows)

	out := []recommend.BatchRow{}
	for rows.Next() {
		var r recommend.BatchRow
		if err := rows.Scan(&r.InputTitle, &r.ClosestMatch, &r.RecommendedTitle, &r.Rank, &r.Score, &r.Matched); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}
	return out, nil
}

// checkRun returns ErrRunNotFound when runID has no run row.
func (db *DB) checkRun(ctx context.Context, runID string) error {
	var found string
	query := fmt.Sprintf(`SELECT run_id FROM %s WHERE run_id = ?`, db.runsTable())
	err := db.conn.QueryRowContext(ctx, query, runID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return fmt.Errorf("failed to look up run %s: %w", runID, err)
	}
	return nil
}
