// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/report"
)

func (a *app) recommendCommand() *cobra.Command {
	var (
		topN   int
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies similar to a title",
		Long: `Resolve the title to the closest catalog entry and list the most similar movies.
Words after the command are joined, so quoting the title is optional.`,
		Example: `  cinematch recommend the dark knight
  cinematch recommend "Avatar" --top 5 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), blankTitleMessage)
				return errBlankTitle
			}

			if cmd.Flags().Changed("format") {
				a.cfg.Output.Format = format
			}
			if cmd.Flags().Changed("output") {
				a.cfg.Output.Path = output
			}
			if err := a.revalidate(); err != nil {
				return err
			}

			ctx := logging.ContextWithNewCorrelationID(cmd.Context())

			engine, err := initEngine(ctx, a.cfg, logging.Logger())
			if err != nil {
				return err
			}

			rec, err := engine.Recommend(ctx, title, topN)
			if err != nil {
				return fmt.Errorf("recommend %q: %w", title, err)
			}

			w, closeOut, err := openOutput(a.cfg.Output.Path, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := report.WriteRecommendation(w, a.cfg.Output.Format, rec); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "n", 0, "number of recommendations (0 uses RECOMMEND_DEFAULT_TOP_N)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
