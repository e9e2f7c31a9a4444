// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"cinematch.yaml",
	"cinematch.yml",
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns a Config with every default applied.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:            "movies.csv",
			StrictColumns:   false,
			RequiredColumns: append([]string{catalog.ColumnIndex, catalog.ColumnTitle}, catalog.DefaultFields()...),
		},
		Recommend: RecommendConfig{
			Fields:         catalog.DefaultFields(),
			RequiredFields: []string{},
			MinTokenLength: 2,
			Workers:        0, // 0 = use runtime.NumCPU()
			MaxEntries:     20000,
			MinRatio:       0.6,
			CaseSensitive:  false,
			DefaultTopN:    10,
			MaxTopN:        100,
			BatchWorkers:   0, // 0 = use runtime.NumCPU()
			CacheSize:      1000,
			CacheTTL:       10 * time.Minute,
		},
		Refresh: RefreshConfig{
			Enabled:  false,
			Interval: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "", // Persistence is opt-in
			Path:   "",
			Table:  "batch_results",
		},
		Output: OutputConfig{
			Format: FormatTable,
			Path:   "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Textfile: "",
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: path when set, otherwise the first of CONFIG_PATH and
//     DefaultConfigPaths that exists
//  3. Environment Variables: Override any setting
//
// An explicit path that does not exist is an error. The search paths are
// optional.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional unless named)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// CATALOG_PATH -> catalog.path
	// RECOMMEND_MIN_RATIO -> recommend.min_ratio
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"catalog.required_columns",
	"recommend.fields",
	"recommend.required_fields",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file or defaults), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	// Catalog mappings
	"catalog_path":             "catalog.path",
	"catalog_strict_columns":   "catalog.strict_columns",
	"catalog_required_columns": "catalog.required_columns",

	// Recommendation engine mappings
	"recommend_fields":           "recommend.fields",
	"recommend_required_fields":  "recommend.required_fields",
	"recommend_min_token_length": "recommend.min_token_length",
	"recommend_workers":          "recommend.workers",
	"recommend_max_entries":      "recommend.max_entries",
	"recommend_min_ratio":        "recommend.min_ratio",
	"recommend_case_sensitive":   "recommend.case_sensitive",
	"recommend_default_top_n":    "recommend.default_top_n",
	"recommend_max_top_n":        "recommend.max_top_n",
	"recommend_batch_workers":    "recommend.batch_workers",
	"recommend_cache_size":       "recommend.cache_size",
	"recommend_cache_ttl":        "recommend.cache_ttl",

	// Refresh mappings
	"refresh_enabled":  "refresh.enabled",
	"refresh_interval": "refresh.interval",

	// Database mappings
	"database_driver": "database.driver",
	"database_path":   "database.path",
	"database_table":  "database.table",
	"duckdb_path":     "database.path",

	// Output mappings
	"output_format": "output.format",
	"output_path":   "output.path",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Metrics mappings
	"metrics_textfile": "metrics.textfile",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - CATALOG_PATH -> catalog.path
//   - RECOMMEND_FIELDS -> recommend.fields
//   - DUCKDB_PATH -> database.path
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
