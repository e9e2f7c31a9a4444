// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// WriteBatchCSV writes the batch result table with CSVHeader as the first row.
func WriteBatchCSV(w io.Writer, report *recommend.BatchReport) error {
	return writeCSVRows(w, report.Rows)
}

func writeCSVRows(w io.Writer, rows []recommend.BatchRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range rows {
		if err := cw.Write(rows[i].Cells()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
