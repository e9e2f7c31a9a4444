// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for Cinematch.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file, then environment variables. The CLI applies command-line flags on
top and validates the result again.

# Configuration File

The file is taken from the --config flag, then CONFIG_PATH, then the first of
cinematch.yaml, cinematch.yml, config.yaml and config.yml in the working
directory:

	catalog:
	  path: data/movies.csv
	  strict_columns: true
	recommend:
	  fields: [genres, keywords, tagline, cast, director]
	  min_ratio: 0.6
	  default_top_n: 10
	database:
	  driver: duckdb
	  path: results.duckdb

# Environment Variables

Catalog (CatalogConfig):
  - CATALOG_PATH: Catalog CSV file (default: movies.csv)
  - CATALOG_STRICT_COLUMNS: Require every standard column (default: false)
  - CATALOG_REQUIRED_COLUMNS: Comma-separated columns checked in strict mode

Engine (RecommendConfig):
  - RECOMMEND_FIELDS: Comma-separated text fields (default: genres,keywords,tagline,cast,director)
  - RECOMMEND_REQUIRED_FIELDS: Fields that must be present on some entry
  - RECOMMEND_MIN_TOKEN_LENGTH: Minimum token length in runes (default: 2)
  - RECOMMEND_WORKERS: Similarity matrix goroutines (default: CPU count)
  - RECOMMEND_MAX_ENTRIES: Largest indexable corpus (default: 20000)
  - RECOMMEND_MIN_RATIO: Title match threshold in [0, 1] (default: 0.6)
  - RECOMMEND_CASE_SENSITIVE: Disable case folding (default: false)
  - RECOMMEND_DEFAULT_TOP_N: Default result count (default: 10)
  - RECOMMEND_MAX_TOP_N: Result count cap (default: 100)
  - RECOMMEND_BATCH_WORKERS: Batch goroutines (default: CPU count)
  - RECOMMEND_CACHE_SIZE: Cached single-query results, 0 disables (default: 1000)
  - RECOMMEND_CACHE_TTL: Cached result lifetime (default: 10m)

Refresh (RefreshConfig):
  - REFRESH_ENABLED: Reload the catalog during interactive sessions (default: false)
  - REFRESH_INTERVAL: Check interval, at least 1s (default: 30s)

Result store (DatabaseConfig):
  - DATABASE_DRIVER: duckdb or sqlite, empty disables (default: empty)
  - DATABASE_PATH or DUCKDB_PATH: Database file
  - DATABASE_TABLE: Result table name (default: batch_results)

Output and observability:
  - OUTPUT_FORMAT: table, csv or json (default: table)
  - OUTPUT_PATH: Output file, empty for stdout
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER: Logging (default: info, console, false)
  - METRICS_TEXTFILE: Prometheus textfile written on exit

# Validation

Struct tags are checked through the validation package. Cross-field rules
are checked in code:

  - default_top_n must not exceed max_top_n
  - database.path is required when database.driver is set
  - database.table must be a plain SQL identifier
  - refresh.interval must be at least 1s when refresh is enabled
  - recommend.cache_ttl must be positive when recommend.cache_size is set

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for concurrent
access from multiple goroutines without synchronization.
*/
package config
