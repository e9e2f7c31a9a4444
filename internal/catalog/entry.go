// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/tomtom215/cinematch/internal/validation"
)

// Standard text field names.
const (
	FieldGenres   = "genres"
	FieldKeywords = "keywords"
	FieldTagline  = "tagline"
	FieldCast     = "cast"
	FieldDirector = "director"
)

// DefaultFields returns the text fields combined for similarity, in order.
func DefaultFields() []string {
	return []string{FieldGenres, FieldKeywords, FieldTagline, FieldCast, FieldDirector}
}

// Field is a named text attribute of an entry.
type Field struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

// Entry is a single catalog item.
type Entry struct {
	// ID equals the entry's position in its corpus.
	ID int `json:"id" validate:"min=0"`

	// Title is the display title used for resolution and output.
	Title string `json:"title" validate:"notblank"`

	// Fields holds the entry's text attributes in source column order.
	// A name missing from Fields is absent; a present name with an empty
	// value is empty.
	Fields []Field `json:"fields" validate:"dive"`
}

// Field returns the value of the named field and whether it is present.
func (e *Entry) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// CombinedText joins the named fields with single spaces. Absent fields
// contribute an empty string, so the separator count is always len(names)-1.
func (e *Entry) CombinedText(names []string) string {
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		v, _ := e.Field(name)
		b.WriteString(v)
	}
	return b.String()
}

// Corpus is an ordered, immutable collection of entries.
// It is safe for concurrent reads.
type Corpus struct {
	entries     []Entry
	present     map[string]bool
	fingerprint uint64
}

// NewCorpus builds a corpus from entries in their canonical order.
// IDs are assigned from position; any ID already set on an entry must match.
func NewCorpus(entries []Entry) (*Corpus, error) {
	c := &Corpus{
		entries: make([]Entry, len(entries)),
		present: make(map[string]bool),
	}

	for i := range entries {
		e := entries[i]
		if e.ID != 0 && e.ID != i {
			return nil, fmt.Errorf("entry %q has id %d at position %d", e.Title, e.ID, i)
		}
		e.ID = i
		e.Fields = append([]Field(nil), e.Fields...)

		if verr := validation.ValidateStruct(&e); verr != nil {
			return nil, fmt.Errorf("entry %d: %w", i, verr)
		}

		for _, f := range e.Fields {
			c.present[f.Name] = true
		}
		c.entries[i] = e
	}

	c.fingerprint = fingerprint(c.entries)
	return c, nil
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entry returns the entry with the given id. The returned Fields slice must
// not be modified.
func (c *Corpus) Entry(id int) (Entry, bool) {
	if id < 0 || id >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[id], true
}

// Title returns the title of the entry with the given id, or "" if out of range.
func (c *Corpus) Title(id int) string {
	if id < 0 || id >= len(c.entries) {
		return ""
	}
	return c.entries[id].Title
}

// Titles returns all titles in id order.
func (c *Corpus) Titles() []string {
	titles := make([]string, len(c.entries))
	for i := range c.entries {
		titles[i] = c.entries[i].Title
	}
	return titles
}

// HasField reports whether at least one entry carries the named field.
func (c *Corpus) HasField(name string) bool {
	return c.present[name]
}

// Fingerprint identifies the corpus content. Two corpora with the same
// titles and field values in the same order share a fingerprint.
func (c *Corpus) Fingerprint() uint64 {
	return c.fingerprint
}

// FingerprintHex returns Fingerprint formatted for logs.
func (c *Corpus) FingerprintHex() string {
	return fmt.Sprintf("%016x", c.fingerprint)
}

func fingerprint(entries []Entry) uint64 {
	h := fnv.New64a()
	sep := []byte{0}
	for i := range entries {
		_, _ = h.Write([]byte(entries[i].Title))
		_, _ = h.Write(sep)
		for _, f := range entries[i].Fields {
			_, _ = h.Write([]byte(f.Name))
			_, _ = h.Write(sep)
			_, _ = h.Write([]byte(f.Value))
			_, _ = h.Write(sep)
		}
		_, _ = h.Write([]byte{1})
	}
	return h.Sum64()
}
