// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/database"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/report"
)

// batchOptions holds the batch command flags.
type batchOptions struct {
	input   string
	output  string
	format  string
	topN    int
	dbPath  string
	parquet string
}

func (a *app) batchCommand() *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Recommend movies for every title in a CSV file",
		Long: `Read a CSV file with a "title" column and write one result row per recommendation.
Titles that match nothing produce a "No match found" row. When a database is
configured the run is stored and can be exported to Parquet.`,
		Example: `  cinematch batch --input watched.csv
  cinematch batch --input watched.csv --format csv --output results.csv
  cinematch batch --input watched.csv --db results.duckdb --parquet results.parquet`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.applyBatchFlags(cmd, opts); err != nil {
				return err
			}
			return a.runBatch(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", `CSV file with a "title" column ("-" reads stdin)`)
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: table, csv or json")
	flags.IntVarP(&opts.topN, "top", "n", 0, "recommendations per title (0 uses RECOMMEND_DEFAULT_TOP_N)")
	flags.StringVar(&opts.dbPath, "db", "", "store the run in this database (duckdb unless DATABASE_DRIVER is set)")
	flags.StringVar(&opts.parquet, "parquet", "", "export the stored run to this Parquet file (duckdb only)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// applyBatchFlags copies changed flags into the configuration.
func (a *app) applyBatchFlags(cmd *cobra.Command, opts *batchOptions) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		a.cfg.Output.Format = opts.format
	}
	if flags.Changed("output") {
		a.cfg.Output.Path = opts.output
	}
	if flags.Changed("db") {
		a.cfg.Database.Path = opts.dbPath
		if a.cfg.Database.Driver == "" {
			a.cfg.Database.Driver = config.DriverDuckDB
		}
	}
	if opts.parquet != "" {
		if !a.cfg.Database.Enabled() {
			return errors.New("--parquet requires a database (--db or DATABASE_DRIVER)")
		}
		if a.cfg.Database.Driver != config.DriverDuckDB {
			return fmt.Errorf("--parquet requires DATABASE_DRIVER=duckdb, got %s", a.cfg.Database.Driver)
		}
	}
	return a.revalidate()
}

func (a *app) runBatch(cmd *cobra.Command, opts *batchOptions) error {
	queries, err := readQueries(opts.input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := logging.ContextWithRunID(cmd.Context(), logging.GenerateRunID())
	logger := logging.CtxWith(ctx).Str("component", "batch").Logger()

	engine, err := initEngine(ctx, a.cfg, logging.Logger())
	if err != nil {
		return err
	}

	result, err := engine.RecommendBatch(ctx, queries, opts.topN)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if logging.IsLevelEnabled(zerolog.DebugLevel) {
		for _, q := range unmatchedQueries(result) {
			logger.Debug().Str("query", q).Msg("no close match")
		}
	}

	w, closeOut, err := openOutput(a.cfg.Output.Path, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := report.WriteBatch(w, a.cfg.Output.Format, result); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if a.cfg.Output.Format != config.FormatTable || a.cfg.Output.Path != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
	}

	if !a.cfg.Database.Enabled() {
		return nil
	}
	if err := storeBatch(ctx, &a.cfg.Database, result, opts.parquet); err != nil {
		return err
	}
	logger.Info().
		Str("driver", a.cfg.Database.Driver).
		Str("path", a.cfg.Database.Path).
		Str("parquet", opts.parquet).
		Msg("batch stored")
	return nil
}

// unmatchedQueries lists the distinct inputs that resolved to no title, in
// input order.
func unmatchedQueries(result *recommend.BatchReport) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range result.Results {
		q := result.Results[i].Query
		if result.Results[i].Match != nil || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

// readQueries loads titles from path, or from stdin when path is "-".
func readQueries(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		queries, err := catalog.LoadQueries(stdin)
		if err != nil {
			return nil, fmt.Errorf("read titles from stdin: %w", err)
		}
		return queries, nil
	}

	f, err := os.Open(path) //nolint:gosec // path is operator-supplied
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	queries, err := catalog.LoadQueries(f)
	if err != nil {
		return nil, fmt.Errorf("read titles from %s: %w", path, err)
	}
	return queries, nil
}

// storeBatch saves the run and exports it to Parquet when requested.
func storeBatch(ctx context.Context, cfg *config.DatabaseConfig, result *recommend.BatchReport, parquetPath string) error {
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("open result store: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Error closing database")
		}
	}()

	if err := db.SaveBatch(ctx, result); err != nil {
		return err
	}
	if parquetPath != "" {
		if err := db.ExportParquet(ctx, result.RunID, parquetPath); err != nil {
			return err
		}
	}
	return nil
}
