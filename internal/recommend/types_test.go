// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/cinematch/internal/recommend/titlematch"
)

func TestRowsFor(t *testing.T) {
	t.Parallel()

	match := &titlematch.Match{ID: 0, Title: "The Dark Knight", Ratio: 0.85}

	tests := []struct {
		name string
		rec  Recommendation
		want [][]string
	}{
		{
			name: "no match",
			rec:  Recommendation{Query: "Xyzzy"},
			want: [][]string{{"Xyzzy", "No match found", "None", "-"}},
		},
		{
			name: "match without recommendations",
			rec:  Recommendation{Query: "dark knight", Match: match},
			want: [][]string{{"dark knight", "The Dark Knight", "None", "-"}},
		},
		{
			name: "match with recommendations",
			rec: Recommendation{
				Query: "dark knight",
				Match: match,
				Items: []RankedItem{
					{Rank: 1, EntryID: 1, Title: "Batman Begins", Score: 1},
					{Rank: 2, EntryID: 2, Title: "Titanic", Score: 0},
				},
			},
			want: [][]string{
				{"dark knight", "The Dark Knight", "Batman Begins", "1"},
				{"dark knight", "The Dark Knight", "Titanic", "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows := RowsFor(tt.rec)
			got := make([][]string, len(rows))
			for i, r := range rows {
				got[i] = r.Cells()
				if r.Matched != tt.rec.Matched() {
					t.Errorf("rows[%d].Matched = %v, want %v", i, r.Matched, tt.rec.Matched())
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RowsFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatchReport_Summary(t *testing.T) {
	t.Parallel()

	r := &BatchReport{Inputs: 3, Matched: 2}
	want := "Recommendations found for 2 out of 3 input movies"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestRecommendation_Clone(t *testing.T) {
	t.Parallel()

	orig := Recommendation{
		Query: "dark knight",
		Match: &titlematch.Match{ID: 0, Title: "The Dark Knight", Ratio: 0.85},
		Items: []RankedItem{{Rank: 1, EntryID: 1, Title: "Batman Begins", Score: 1}},
	}
	c := orig.Clone()
	if !reflect.DeepEqual(c, orig) {
		t.Fatalf("Clone() = %+v, want %+v", c, orig)
	}

	c.Match.Title = "x"
	c.Items[0].Title = "y"
	if orig.Match.Title != "The Dark Knight" || orig.Items[0].Title != "Batman Begins" {
		t.Errorf("Clone() shares memory with original: %+v", orig)
	}

	if got := (Recommendation{Query: "none"}).Clone(); got.Match != nil || got.Items != nil {
		t.Errorf("Clone() of empty = %+v", got)
	}
}
