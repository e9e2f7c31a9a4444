// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package algorithms

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownEntry is returned when an entry ID is outside the corpus.
var ErrUnknownEntry = errors.New("unknown entry")

// RankedItem is one recommendation.
type RankedItem struct {
	// Rank is 1-based and contiguous.
	Rank    int     `json:"rank"`
	EntryID int     `json:"entry_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// RowReader exposes matrix rows to the ranker.
type RowReader interface {
	Size() int
	Row(i int) []float64
}

// TitleSource resolves entry IDs to titles.
type TitleSource interface {
	Len() int
	Title(id int) string
}

// Rank returns up to topN entries most similar to matchedID, excluding
// matchedID itself. Items are ordered by score descending; equal scores are
// ordered by ascending entry ID. topN <= 0 yields an empty result.
//
// The matrix is only read.
func Rank(matrix RowReader, titles TitleSource, matchedID, topN int) ([]RankedItem, error) {
	n := matrix.Size()
	if titles.Len() != n {
		return nil, fmt.Errorf("matrix size %d does not match %d titles", n, titles.Len())
	}
	if matchedID < 0 || matchedID >= n {
		return nil, fmt.Errorf("%w: %d (corpus size %d)", ErrUnknownEntry, matchedID, n)
	}
	if topN <= 0 || n < 2 {
		return []RankedItem{}, nil
	}

	row := matrix.Row(matchedID)

	candidates := make([]int, 0, n-1)
	for id := 0; id < n; id++ {
		if id != matchedID {
			candidates = append(candidates, id)
		}
	}

	// Candidates start in ascending ID order; a stable sort keeps that order
	// among equal scores.
	sort.SliceStable(candidates, func(a, b int) bool {
		return row[candidates[a]] > row[candidates[b]]
	})

	if topN > len(candidates) {
		topN = len(candidates)
	}

	items := make([]RankedItem, topN)
	for i := 0; i < topN; i++ {
		id := candidates[i]
		items[i] = RankedItem{
			Rank:    i + 1,
			EntryID: id,
			Title:   titles.Title(id),
			Score:   row[id],
		}
	}
	return items, nil
}
