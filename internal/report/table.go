// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// SuggestionHeading introduces a ranked recommendation list.
const SuggestionHeading = "Movies suggested for you"

// errWriter keeps the first write error so table code can print freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// WriteRecommendationTable prints a ranked list under SuggestionHeading, or
// NoMatchMessage when the query did not resolve.
func WriteRecommendationTable(w io.Writer, rec *recommend.Recommendation) error {
	ew := &errWriter{w: w}

	if rec.Match == nil {
		ew.printf("%s\n", NoMatchMessage(rec.Query))
		return ew.err
	}

	ew.printf("Recommendations for %q\n\n", rec.Match.Title)
	if len(rec.Items) == 0 {
		ew.printf("No other movies in the catalog to compare against.\n")
		return ew.err
	}

	ew.printf("%s:\n\n", SuggestionHeading)
	if ew.err != nil {
		return ew.err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	tew := &errWriter{w: tw}
	for _, item := range rec.Items {
		tew.printf("%d.\t%s\n", item.Rank, item.Title)
	}
	if tew.err != nil {
		return tew.err
	}
	return tw.Flush()
}

// WriteBatchTable prints the batch result table followed by the summary.
func WriteBatchTable(w io.Writer, report *recommend.BatchReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}

	ew.printf("%s\n", strings.Join(CSVHeader, "\t"))
	for i := range report.Rows {
		ew.printf("%s\n", strings.Join(report.Rows[i].Cells(), "\t"))
	}
	if ew.err != nil {
		return ew.err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	out := &errWriter{w: w}
	out.printf("\n%s\n", report.Summary())
	return out.err
}
