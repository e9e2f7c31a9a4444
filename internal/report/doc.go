// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package report renders recommendation results for the command line.

Three formats are supported:

  - table: aligned text for terminals (text/tabwriter)
  - csv: the four-column result table with headers
    Input Movie, Closest Match, Recommended Movie, Rank
  - json: the full result structure (goccy/go-json)

Batch writes are recorded in cinematch_export_rows_total and
cinematch_export_duration_seconds with the format as the sink label.
*/
package report
