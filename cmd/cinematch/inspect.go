// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
	"github.com/tomtom215/cinematch/internal/report"
)

// inspection is the inspect command's output.
type inspection struct {
	Catalog    string                `json:"catalog"`
	Fields     []string              `json:"fields"`
	Index      recommend.IndexStats  `json:"index"`
	MaxEntries int                   `json:"max_entries"`
	MaxBytes   int64                 `json:"max_matrix_bytes"`
	TopTerms   []algorithms.TermStat `json:"top_terms"`
}

func (a *app) inspectCommand() *cobra.Command {
	var (
		terms  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Build the index and report its size and most frequent terms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.Output.Format = format
			}
			if err := a.revalidate(); err != nil {
				return err
			}

			engine, err := initEngine(cmd.Context(), a.cfg, logging.Logger())
			if err != nil {
				return err
			}
			idx := engine.Index()

			info := inspection{
				Catalog:    a.cfg.Catalog.Path,
				Fields:     a.cfg.Recommend.Fields,
				Index:      idx.Stats(),
				MaxEntries: a.cfg.Recommend.MaxEntries,
				MaxBytes:   algorithms.MatrixBytes(a.cfg.Recommend.MaxEntries),
				TopTerms:   idx.Vocabulary().MostFrequent(terms),
			}

			out := cmd.OutOrStdout()
			if a.cfg.Output.Format == config.FormatJSON {
				return report.WriteJSON(out, info)
			}
			return writeInspection(out, &info)
		},
	}

	cmd.Flags().IntVar(&terms, "terms", 20, "number of most frequent terms to list")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table or json")
	return cmd
}

func writeInspection(w io.Writer, info *inspection) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Catalog:\t%s\n", info.Catalog)
	fmt.Fprintf(tw, "Fields:\t%v\n", info.Fields)
	fmt.Fprintf(tw, "Entries:\t%d (limit %d)\n", info.Index.Entries, info.MaxEntries)
	fmt.Fprintf(tw, "Entries without terms:\t%d\n", info.Index.ZeroVectors)
	fmt.Fprintf(tw, "Vocabulary:\t%d terms\n", info.Index.VocabularySize)
	fmt.Fprintf(tw, "Matrix memory:\t%s (limit %s)\n", report.HumanBytes(info.Index.MatrixBytes), report.HumanBytes(info.MaxBytes))
	fmt.Fprintf(tw, "Fingerprint:\t%s\n", info.Index.Fingerprint)
	fmt.Fprintf(tw, "Build time:\t%s\n", info.Index.BuildDuration.Round(time.Millisecond))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(info.TopTerms) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nMost frequent terms:\n")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TERM\tDOCUMENTS\tIDF")
	for _, t := range info.TopTerms {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\n", t.Term, t.DocumentFrequency, t.IDF)
	}
	return tw.Flush()
}
