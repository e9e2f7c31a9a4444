// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/database"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/report"
)

func (a *app) historyCommand() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List stored batch runs or print the rows of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.Output.Format = format
			}
			if err := a.revalidate(); err != nil {
				return err
			}
			if !a.cfg.Database.Enabled() {
				return errors.New("history requires a database (DATABASE_DRIVER and DATABASE_PATH)")
			}

			db, err := database.New(&a.cfg.Database)
			if err != nil {
				return fmt.Errorf("open result store: %w", err)
			}
			defer func() {
				if cerr := db.Close(); cerr != nil {
					logging.Error().Err(cerr).Msg("Error closing database")
				}
			}()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				runs, err := db.Runs(ctx, limit)
				if err != nil {
					return err
				}
				if a.cfg.Output.Format == config.FormatJSON {
					return report.WriteJSON(out, runs)
				}
				return writeRunTable(out, runs)
			}

			runs, err := db.Runs(ctx, 0)
			if err != nil {
				return err
			}

			runID := args[0]
			var run *database.RunSummary
			for i := range runs {
				if runs[i].RunID == runID {
					run = &runs[i]
					break
				}
			}
			if run == nil {
				return fmt.Errorf("%w: %s", database.ErrRunNotFound, runID)
			}

			rows, err := db.Rows(ctx, runID)
			if err != nil {
				return err
			}
			stored := &recommend.BatchReport{
				RunID:            run.RunID,
				Inputs:           run.Inputs,
				Matched:          run.Matched,
				TopN:             run.TopN,
				Rows:             rows,
				IndexFingerprint: run.IndexFingerprint,
				GeneratedAt:      run.GeneratedAt,
				Duration:         run.Duration,
			}
			return report.WriteBatch(out, a.cfg.Output.Format, stored)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list (0 lists all)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, csv or json")
	return cmd
}

func writeRunTable(w io.Writer, runs []database.RunSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "RUN ID\tGENERATED\tINPUTS\tMATCHED\tTOP N\tROWS\tDURATION"); err != nil {
		return err
	}
	for i := range runs {
		r := &runs[i]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.RunID,
			r.GeneratedAt.Local().Format(time.DateTime),
			r.Inputs, r.Matched, r.TopN, r.RowCount,
			r.Duration.Round(time.Millisecond),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
