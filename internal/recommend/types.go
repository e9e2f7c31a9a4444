// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
	"github.com/tomtom215/cinematch/internal/recommend/titlematch"
)

// Placeholders used in batch rows, matching the exported table shape.
const (
	NoMatchLabel = "No match found"
	NoneLabel    = "None"
	NoRankLabel  = "-"
)

// RankedItem is one recommended entry.
type RankedItem = algorithms.RankedItem

// Recommendation is the result of one query.
type Recommendation struct {
	// Query is the input as given.
	Query string `json:"query"`

	// Match is the resolved catalog title. Nil means no title was close enough.
	Match *titlematch.Match `json:"match"`

	// Items is ordered by rank. Empty when Match is nil or the corpus has a
	// single entry.
	Items []RankedItem `json:"items"`
}

// Matched reports whether the query resolved to a catalog title.
//
//nolint:gocritic // hugeParam: value receiver keeps Recommendation usable as a map value
func (r Recommendation) Matched() bool {
	return r.Match != nil
}

// Clone returns a copy that shares no memory with r.
//
//nolint:gocritic // hugeParam: value receiver matches Matched
func (r Recommendation) Clone() Recommendation {
	out := Recommendation{Query: r.Query, Items: slices.Clone(r.Items)}
	if r.Match != nil {
		m := *r.Match
		out.Match = &m
	}
	return out
}

// BatchRow is one line of a batch result table.
type BatchRow struct {
	// InputTitle is the query as submitted.
	InputTitle string `json:"input_title"`

	// ClosestMatch is the resolved title or NoMatchLabel.
	ClosestMatch string `json:"closest_match"`

	// RecommendedTitle is a recommended title or NoneLabel.
	RecommendedTitle string `json:"recommended_title"`

	// Rank is 1-based; zero when the row has no recommendation.
	Rank int `json:"rank"`

	// Score is the cosine similarity of the recommendation.
	Score float64 `json:"score"`

	// Matched reports whether InputTitle resolved.
	Matched bool `json:"matched"`
}

// RankLabel renders Rank, using NoRankLabel for placeholder rows.
//
//nolint:gocritic // hugeParam: value receiver for immutable row semantics
func (r BatchRow) RankLabel() string {
	if r.Rank == 0 {
		return NoRankLabel
	}
	return strconv.Itoa(r.Rank)
}

// Cells returns the four exported columns in order.
//
//nolint:gocritic // hugeParam: value receiver for immutable row semantics
func (r BatchRow) Cells() []string {
	return []string{r.InputTitle, r.ClosestMatch, r.RecommendedTitle, r.RankLabel()}
}

// RowsFor expands a recommendation into batch rows. Every input yields at
// least one row.
//
//nolint:gocritic // hugeParam: rec passed by value for immutability
func RowsFor(rec Recommendation) []BatchRow {
	if rec.Match == nil {
		return []BatchRow{{
			InputTitle:       rec.Query,
			ClosestMatch:     NoMatchLabel,
			RecommendedTitle: NoneLabel,
		}}
	}

	if len(rec.Items) == 0 {
		return []BatchRow{{
			InputTitle:       rec.Query,
			ClosestMatch:     rec.Match.Title,
			RecommendedTitle: NoneLabel,
			Matched:          true,
		}}
	}

	rows := make([]BatchRow, len(rec.Items))
	for i, item := range rec.Items {
		rows[i] = BatchRow{
			InputTitle:       rec.Query,
			ClosestMatch:     rec.Match.Title,
			RecommendedTitle: item.Title,
			Rank:             item.Rank,
			Score:            item.Score,
			Matched:          true,
		}
	}
	return rows
}

// BatchReport is the result of a batch run.
type BatchReport struct {
	// RunID identifies the run in logs and persisted results.
	RunID string `json:"run_id"`

	// Inputs is the number of submitted titles.
	Inputs int `json:"inputs"`

	// Matched is the number of distinct submitted titles that resolved.
	Matched int `json:"matched"`

	// TopN is the effective recommendation count per input.
	TopN int `json:"top_n"`

	// Results holds one recommendation per input, in input order.
	Results []Recommendation `json:"results"`

	// Rows is the flattened result table, in input order.
	Rows []BatchRow `json:"rows"`

	// IndexFingerprint identifies the corpus the batch ran against.
	IndexFingerprint string `json:"index_fingerprint"`

	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration_ns"`
}

// Summary returns the one-line batch summary.
func (b *BatchReport) Summary() string {
	return fmt.Sprintf("Recommendations found for %d out of %d input movies", b.Matched, b.Inputs)
}

// IndexStats describes a built index.
type IndexStats struct {
	Entries        int           `json:"entries"`
	VocabularySize int           `json:"vocabulary_size"`
	ZeroVectors    int           `json:"zero_vectors"`
	MatrixBytes    int64         `json:"matrix_bytes"`
	Fingerprint    string        `json:"fingerprint"`
	BuiltAt        time.Time     `json:"built_at"`
	BuildDuration  time.Duration `json:"build_duration_ns"`
}

// EngineStats contains engine counters for observability.
type EngineStats struct {
	// Built reports whether an index is active.
	Built bool `json:"built"`

	// Index describes the active index. Zero when Built is false.
	Index IndexStats `json:"index"`

	// Builds is the number of completed index builds.
	Builds int64 `json:"builds"`

	// Requests is the total number of queries, batch inputs included.
	Requests int64 `json:"requests"`

	// NoMatches is the number of queries that resolved to no title.
	NoMatches int64 `json:"no_matches"`

	// Errors is the number of failed queries and builds.
	Errors int64 `json:"errors"`

	// Cache holds result cache counters. Zero when the cache is disabled.
	Cache cache.Stats `json:"cache"`
}
