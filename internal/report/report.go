// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// ErrUnknownFormat is returned for a format other than table, csv or json.
var ErrUnknownFormat = errors.New("unknown output format")

// CSVHeader is the header row of the exported result table.
var CSVHeader = []string{"Input Movie", "Closest Match", "Recommended Movie", "Rank"}

// NoMatchMessage is shown when a query resolves to no catalog title.
func NoMatchMessage(query string) string {
	return fmt.Sprintf("No close match found for %q. Please check the spelling or try another movie.", query)
}

// WriteRecommendation renders a single recommendation in the given format.
func WriteRecommendation(w io.Writer, format string, rec *recommend.Recommendation) error {
	switch format {
	case config.FormatTable, "":
		return WriteRecommendationTable(w, rec)
	case config.FormatCSV:
		return writeCSVRows(w, recommend.RowsFor(*rec))
	case config.FormatJSON:
		return WriteJSON(w, rec)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteBatch renders a batch report in the given format and records the
// export metrics.
func WriteBatch(w io.Writer, format string, report *recommend.BatchReport) (err error) {
	if format == "" {
		format = config.FormatTable
	}

	start := time.Now()
	defer func() {
		metrics.RecordExport(format, len(report.Rows), time.Since(start), err)
	}()

	switch format {
	case config.FormatTable:
		return WriteBatchTable(w, report)
	case config.FormatCSV:
		return WriteBatchCSV(w, report)
	case config.FormatJSON:
		return WriteJSON(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// HumanBytes formats a byte count with binary units.
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
