// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the typed, validated in-memory movie catalog.
//
// A Corpus is an ordered, immutable sequence of entries. Entry IDs are dense,
// 0-based and always equal to the entry's position in the corpus, so an ID can
// be used directly as a row index into similarity data built from it.
//
// # Field States
//
// Each entry carries an ordered list of named text fields. A field can be:
//
//   - present with a value
//   - present but empty (the source cell was blank)
//   - absent (the source had no such column)
//
// Consumers treat empty and absent fields the same when building text, but
// the distinction lets the vectorizer detect a schema that is missing a
// required column entirely.
//
// # Loading
//
// LoadCSV enforces the load boundary: a missing title column is a
// SchemaError and any malformed row fails the whole load with a RowError.
// Rows are never silently dropped, since that would break the ID/position
// invariant relative to the file the user supplied.
//
//	corpus, err := catalog.LoadFile("movies.csv", catalog.DefaultLoadOptions())
//	if err != nil {
//	    return fmt.Errorf("load catalog: %w", err)
//	}
package catalog
