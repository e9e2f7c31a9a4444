// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Command-line flags are applied by the CLI after loading and the result is
// validated again.
//
// Configuration Categories:
//
//  1. Input:
//     - Catalog: CSV catalog location and column requirements
//     - Refresh: Catalog reload while the interactive session runs
//
//  2. Engine:
//     - Recommend: Vectorizer fields, matrix limits, title matching, result counts
//
//  3. Output:
//     - Output: Result format and destination
//     - Database: Optional DuckDB or SQLite result table
//
//  4. Observability:
//     - Logging: Log levels and output formats
//     - Metrics: Prometheus textfile export
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Refresh   RefreshConfig   `koanf:"refresh"`  // Optional: reload the catalog during interactive sessions
	Database  DatabaseConfig  `koanf:"database"` // Optional: persist batch results
	Output    OutputConfig    `koanf:"output"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"` // Optional: node-exporter textfile
}

// CatalogConfig locates the movie catalog.
type CatalogConfig struct {
	// Path is the CSV catalog file.
	// Default: movies.csv
	Path string `koanf:"path" validate:"notblank"`

	// StrictColumns fails the load when any of RequiredColumns is missing
	// from the header. When false only the title column is required.
	// Default: false
	StrictColumns bool `koanf:"strict_columns"`

	// RequiredColumns is checked when StrictColumns is set.
	// Default: index, title, genres, keywords, tagline, cast, director
	RequiredColumns []string `koanf:"required_columns" validate:"dive,notblank"`
}

// RecommendConfig holds similarity engine settings.
type RecommendConfig struct {
	// Fields are the text columns concatenated into each document, in order.
	// Default: genres, keywords, tagline, cast, director
	Fields []string `koanf:"fields" validate:"min=1,dive,notblank"`

	// RequiredFields must each be present on at least one entry.
	// Default: empty
	RequiredFields []string `koanf:"required_fields" validate:"dive,notblank"`

	// MinTokenLength is the minimum token length in runes.
	// Default: 2
	MinTokenLength int `koanf:"min_token_length" validate:"gte=1"`

	// Workers is the goroutine count for the similarity matrix.
	// 0 uses runtime.NumCPU().
	// Default: 0
	Workers int `koanf:"workers" validate:"gte=0"`

	// MaxEntries is the largest corpus the engine will index. The matrix
	// needs 8·N² bytes.
	// Default: 20000
	MaxEntries int `koanf:"max_entries" validate:"gte=1"`

	// MinRatio is the lowest sequence-match ratio accepted for a title.
	// Default: 0.6
	MinRatio float64 `koanf:"min_ratio" validate:"gte=0,lte=1"`

	// CaseSensitive disables case folding in title matching.
	// Default: false
	CaseSensitive bool `koanf:"case_sensitive"`

	// DefaultTopN is used when a request does not name a count.
	// Default: 10
	DefaultTopN int `koanf:"default_top_n" validate:"gte=1,ltefield=MaxTopN"`

	// MaxTopN caps any requested count.
	// Default: 100
	MaxTopN int `koanf:"max_top_n" validate:"gte=1"`

	// BatchWorkers is the goroutine count for batch runs.
	// 0 uses runtime.NumCPU().
	// Default: 0
	BatchWorkers int `koanf:"batch_workers" validate:"gte=0"`

	// CacheSize is the number of single-query results kept per index.
	// 0 disables the result cache.
	// Default: 1000
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// CacheTTL is the lifetime of a cached result.
	// Default: 10m
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// RefreshConfig controls catalog reloading in the interactive session.
type RefreshConfig struct {
	// Enabled starts the catalog refresh service.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// Interval is how often the catalog file is checked for changes.
	// Default: 30s
	Interval time.Duration `koanf:"interval"`
}

// Supported result store drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// DatabaseConfig configures the optional batch result store.
type DatabaseConfig struct {
	// Driver selects the store: duckdb or sqlite. Empty disables persistence.
	// Default: empty
	Driver string `koanf:"driver" validate:"omitempty,oneof=duckdb sqlite"`

	// Path is the database file. Required when Driver is set.
	// Default: empty
	Path string `koanf:"path"`

	// Table is the batch result table name. Run metadata goes to
	// Table + "_runs".
	// Default: batch_results
	Table string `koanf:"table" validate:"notblank"`
}

// Enabled reports whether a result store is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Driver != ""
}

// Supported output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// OutputConfig selects how results are written.
type OutputConfig struct {
	// Format is table, csv or json.
	// Default: table
	Format string `koanf:"format" validate:"oneof=table csv json"`

	// Path is the output file. Empty writes to stdout.
	// Default: empty
	Path string `koanf:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// JSON is recommended for pipelines (structured, machine-parseable).
	// Console is human-readable for terminals.
	// Default: console
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig controls Prometheus export for a CLI run.
type MetricsConfig struct {
	// Textfile is written with the default registry on exit, in the
	// node-exporter textfile collector format. Empty disables it.
	// Default: empty
	Textfile string `koanf:"textfile"`
}
