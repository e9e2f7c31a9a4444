// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema is matched by every *SchemaError via errors.Is.
	ErrSchema = errors.New("schema error")

	// ErrEmptyCorpus is returned when vectorizing a corpus with no entries.
	ErrEmptyCorpus = errors.New("corpus has no entries")
)

// SchemaError reports a required column or field that is absent from the input.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("schema error: required column %q is missing", e.Column)
	}
	return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
}

// Unwrap allows errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// RowError reports a malformed input row. Line is the 1-based line number in
// the source file, counting the header as line 1.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
