// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinematch/internal/config"
)

// dialect captures the differences between the supported drivers.
type dialect struct {
	driverName string
	dsn        func(path string) string

	textType   string
	intType    string
	floatType  string
	boolType   string
	timeType   string
	checkpoint string

	// setup runs once after the connection opens.
	setup []string
}

var dialects = map[string]dialect{
	config.DriverDuckDB: {
		driverName: "duckdb",
		dsn: func(path string) string {
			// Disable auto-install/auto-load to prevent hangs in restricted network environments
			return path + "?access_mode=read_write&autoinstall_known_extensions=false&autoload_known_extensions=false"
		},
		textType:   "VARCHAR",
		intType:    "INTEGER",
		floatType:  "DOUBLE",
		boolType:   "BOOLEAN",
		timeType:   "TIMESTAMP",
		checkpoint: "CHECKPOINT",
	},
	config.DriverSQLite: {
		driverName: "sqlite",
		dsn:        func(path string) string { return path },
		textType:   "TEXT",
		intType:    "INTEGER",
		floatType:  "REAL",
		boolType:   "BOOLEAN",
		timeType:   "DATETIME",
		setup: []string{
			// Wait up to 5s for lock instead of failing immediately
			"PRAGMA busy_timeout = 5000",
			"PRAGMA foreign_keys = ON",
		},
	},
}

// initialize applies driver setup and creates the result tables.
func (db *DB) initialize(ctx context.Context) error {
	for _, stmt := range db.dialect.setup {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply %q: %w", stmt, err)
		}
	}
	return db.createTables(ctx)
}

// createTables creates the run and result tables when missing.
//
// Each batch run stores one row in <table>_runs and one row per result table
// line in <table>, keyed by (run_id, row_num) so the input order is kept.
func (db *DB) createTables(ctx context.Context) error {
	d := db.dialect

	runs := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id %s PRIMARY KEY,
			generated_at %s NOT NULL,
			inputs %s NOT NULL,
			matched %s NOT NULL,
			top_n %s NOT NULL,
			row_count %s NOT NULL,
			index_fingerprint %s NOT NULL,
			duration_ms %s NOT NULL
		)`,
		db.runsTable(), d.textType, d.timeType, d.intType, d.intType, d.intType, d.intType, d.textType, d.floatType)

	results := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id %s NOT NULL REFERENCES %s (run_id),
			row_num %s NOT NULL,
			input_title %s NOT NULL,
			closest_match %s NOT NULL,
			recommended_title %s NOT NULL,
			result_rank %s NOT NULL,
			score %s NOT NULL,
			matched %s NOT NULL,
			PRIMARY KEY (run_id, row_num)
		)`,
		db.cfg.Table, d.textType, db.runsTable(), d.intType, d.textType, d.textType, d.textType, d.intType, d.floatType, d.boolType)

	for _, stmt := range []string{runs, results} {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}
