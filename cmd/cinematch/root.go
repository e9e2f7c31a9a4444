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
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/validation"
)

// app carries state shared by all subcommands.
type app struct {
	configPath  string
	catalogPath string
	logLevel    string
	logFormat   string
	metricsFile string

	cfg *config.Config
}

// execute runs the command line and writes the metrics textfile, if
// configured, whether or not the command succeeded.
func execute(ctx context.Context, args []string) error {
	a := &app{}
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	if a.cfg != nil && a.cfg.Metrics.Textfile != "" {
		if werr := metrics.WriteTextfile(a.cfg.Metrics.Textfile); werr != nil {
			logging.Warn().Err(werr).Str("path", a.cfg.Metrics.Textfile).Msg("failed to write metrics textfile")
		}
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cinematch",
		Short:         "Content-based movie recommendations",
		Long:          `Recommend movies from a CSV catalog by TF-IDF cosine similarity of their genres, keywords, tagline, cast and director.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: cinematch.yaml, config.yaml or $CONFIG_PATH)")
	flags.StringVar(&a.catalogPath, "catalog", "", "movie catalog CSV (overrides CATALOG_PATH)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: json or console")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		a.recommendCommand(),
		a.batchCommand(),
		a.interactiveCommand(),
		a.inspectCommand(),
		a.historyCommand(),
	)
	return root
}

// setup loads configuration, applies persistent flags and initializes logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		logFieldErrors(err)
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog.Path = a.catalogPath
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = a.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		logFieldErrors(err)
		return fmt.Errorf("invalid flags: %w", err)
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Debug().
		Str("catalog", cfg.Catalog.Path).
		Str("database_driver", cfg.Database.Driver).
		Str("output_format", cfg.Output.Format).
		Msg("configuration loaded")
	return nil
}

// logFieldErrors logs one line per failed config field when err carries
// struct validation results.
func logFieldErrors(err error) {
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		return
	}
	fieldErrs := verr.Errors()
	for i := range fieldErrs {
		logging.Error().
			Str("field", fieldErrs[i].Field()).
			Str("tag", fieldErrs[i].Tag()).
			Str("param", fieldErrs[i].Param()).
			Msg(fieldErrs[i].Error())
	}
}

// revalidate re-checks the configuration after command flags changed it.
func (a *app) revalidate() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// openOutput returns the configured output file, or stdout when no path is set.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // path is operator-supplied
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

// errBlankTitle is returned after the user has been asked for a title.
var errBlankTitle = errors.New("no movie title given")

// blankTitleMessage is shown for empty input.
const blankTitleMessage = "Please enter a movie name."
