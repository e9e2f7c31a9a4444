// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ExportParquet writes the stored rows of one run to a Parquet file with
// ZSTD compression. Only DuckDB can export Parquet.
func (db *DB) ExportParquet(ctx context.Context, runID, outputPath string) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if db.cfg.Driver != config.DriverDuckDB {
		return fmt.Errorf("%w: parquet export requires %s, have %s", ErrUnsupportedDriver, config.DriverDuckDB, db.cfg.Driver)
	}
	if err := db.checkRun(ctx, runID); err != nil {
		return err
	}

	start := time.Now()
	var count int
	defer func() {
		metrics.RecordExport("parquet", count, time.Since(start), err)
	}()

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE run_id = ?`, db.cfg.Table)
	if err = db.conn.QueryRowContext(ctx, countQuery, runID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count rows for %s: %w", runID, err)
	}

	// COPY does not accept bound parameters.
	exportQuery := fmt.Sprintf(`
		COPY (
			SELECT input_title, closest_match, recommended_title, result_rank, score, matched
			FROM %s
			WHERE run_id = %s
			ORDER BY row_num
		) TO %s (
			FORMAT PARQUET,
			COMPRESSION 'ZSTD'
		)`, db.cfg.Table, quoteLiteral(runID), quoteLiteral(outputPath))

	if _, err = db.conn.ExecContext(ctx, exportQuery); err != nil {
		return fmt.Errorf("failed to export parquet: %w", err)
	}

	logging.Info().
		Str("run_id", runID).
		Str("path", outputPath).
		Int("rows", count).
		Msg("Exported batch results to Parquet")
	return nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
