// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Column names with special meaning at the load boundary.
const (
	ColumnIndex = "index"
	ColumnTitle = "title"
)

var errBlankTitle = errors.New("title is blank")

// LoadOptions controls how tabular input is turned into a Corpus.
type LoadOptions struct {
	// Fields lists the text columns to retain as entry fields, in order.
	// Default: genres, keywords, tagline, cast, director.
	Fields []string

	// StrictColumns requires every column in RequiredColumns to be present in
	// the header. When false only the title column is required and missing
	// text columns leave the field absent on every entry.
	// Default: false.
	StrictColumns bool

	// RequiredColumns is checked when StrictColumns is set.
	// Default: index, title and the default fields.
	RequiredColumns []string
}

// DefaultLoadOptions returns the standard options for movie catalogs.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Fields:          DefaultFields(),
		StrictColumns:   false,
		RequiredColumns: append([]string{ColumnIndex, ColumnTitle}, DefaultFields()...),
	}
}

// LoadFile opens path and loads it with LoadCSV.
func LoadFile(path string, opts LoadOptions) (*Corpus, error) {
	f, err := os.Open(path) //nolint:gosec // path is operator-supplied
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	corpus, err := LoadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return corpus, nil
}

// LoadCSV parses a CSV catalog with a header row.
//
// Header names are matched case-insensitively after trimming whitespace.
// A missing title column returns a *SchemaError. Any row that cannot be
// parsed, has the wrong number of cells, contains invalid UTF-8, has a blank
// title, or carries an index value different from its position fails the
// entire load with a *RowError.
//
//nolint:gocritic // hugeParam: opts is a small options struct passed once per load
func LoadCSV(r io.Reader, opts LoadOptions) (*Corpus, error) {
	if len(opts.Fields) == 0 {
		opts.Fields = DefaultFields()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Column: ColumnTitle, Reason: "input has no header row"}
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	columns := headerIndex(header)

	if opts.StrictColumns {
		for _, name := range opts.RequiredColumns {
			if _, ok := columns[strings.ToLower(name)]; !ok {
				return nil, &SchemaError{Column: name}
			}
		}
	}

	titleCol, ok := columns[ColumnTitle]
	if !ok {
		return nil, &SchemaError{Column: ColumnTitle}
	}
	indexCol, hasIndex := columns[ColumnIndex]

	type fieldColumn struct {
		name string
		col  int
	}
	fieldCols := make([]fieldColumn, 0, len(opts.Fields))
	for _, name := range opts.Fields {
		if col, ok := columns[strings.ToLower(name)]; ok {
			fieldCols = append(fieldCols, fieldColumn{name: name, col: col})
		}
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		line, _ := reader.FieldPos(0)
		position := len(entries)

		for i, cell := range record {
			if !utf8.ValidString(cell) {
				return nil, &RowError{Line: line, Err: fmt.Errorf("column %q is not valid UTF-8", header[i])}
			}
		}

		if hasIndex {
			idx, err := strconv.Atoi(strings.TrimSpace(record[indexCol]))
			if err != nil {
				return nil, &RowError{Line: line, Err: fmt.Errorf("index %q is not an integer", record[indexCol])}
			}
			if idx != position {
				return nil, &RowError{Line: line, Err: fmt.Errorf("index %d does not match row position %d", idx, position)}
			}
		}

		title := strings.TrimSpace(record[titleCol])
		if title == "" {
			return nil, &RowError{Line: line, Err: errBlankTitle}
		}

		fields := make([]Field, len(fieldCols))
		for i, fc := range fieldCols {
			fields[i] = Field{Name: fc.name, Value: record[fc.col]}
		}

		entries = append(entries, Entry{ID: position, Title: title, Fields: fields})
	}

	return NewCorpus(entries)
}

// LoadQueries reads batch input titles from a CSV with a title column.
// Blank titles are kept so that every input row appears in batch output.
func LoadQueries(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Column: ColumnTitle, Reason: "input has no header row"}
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	titleCol, ok := headerIndex(header)[ColumnTitle]
	if !ok {
		return nil, &SchemaError{Column: ColumnTitle, Reason: "uploaded file must contain a title column"}
	}

	var titles []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		if !utf8.ValidString(record[titleCol]) {
			line, _ := reader.FieldPos(titleCol)
			return nil, &RowError{Line: line, Err: errors.New("title is not valid UTF-8")}
		}
		titles = append(titles, strings.TrimSpace(record[titleCol]))
	}
	return titles, nil
}

// headerIndex maps normalized column names to their first position.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return columns
}

// wrapCSVError converts encoding/csv parse errors into RowErrors.
func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RowError{Line: pe.StartLine, Err: pe.Err}
	}
	return fmt.Errorf("read csv: %w", err)
}
