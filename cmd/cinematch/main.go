// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main is the entry point for the cinematch command.
//
// Cinematch recommends movies from a CSV catalog by comparing TF-IDF vectors
// of their descriptive fields (genres, keywords, tagline, cast, director).
// A free-text title is first resolved to the closest catalog title, then the
// catalog is ranked by cosine similarity to it.
//
// # Commands
//
//	cinematch recommend <title>     Recommend movies similar to one title
//	cinematch batch --input FILE    Recommend for every title in a CSV file
//	cinematch interactive           Prompt for titles until end of input
//	cinematch inspect               Show index size and the most frequent terms
//	cinematch history [run-id]      List stored batch runs or print one
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command-line flags
//   - Environment variables (CATALOG_PATH, RECOMMEND_MIN_RATIO, LOG_LEVEL, ...)
//   - Config file (cinematch.yaml, or --config / CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
//	export CATALOG_PATH=./movies.csv
//	cinematch recommend "the dark knight" --top 5
//
//	export DATABASE_DRIVER=duckdb DATABASE_PATH=./results.duckdb
//	cinematch batch --input watched.csv --format csv --output out.csv --parquet out.parquet
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the running command. Index builds and batch runs
// stop at the next cancellation check and the command exits with an error.
// An interactive session that is already reading input exits cleanly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1) //nolint:gocritic // exitAfterDefer: stop is called explicitly above
	}
}
