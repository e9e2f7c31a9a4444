// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/titlematch"
)

func sampleRecommendation() *recommend.Recommendation {
	return &recommend.Recommendation{
		Query: "dark knight",
		Match: &titlematch.Match{ID: 0, Title: "The Dark Knight", Ratio: 0.85},
		Items: []recommend.RankedItem{
			{Rank: 1, EntryID: 1, Title: "Batman Begins", Score: 1},
			{Rank: 2, EntryID: 2, Title: "Titanic", Score: 0},
		},
	}
}

func sampleBatch() *recommend.BatchReport {
	hit := *sampleRecommendation()
	miss := recommend.Recommendation{Query: "Xyzzy"}

	var rows []recommend.BatchRow
	rows = append(rows, recommend.RowsFor(hit)...)
	rows = append(rows, recommend.RowsFor(miss)...)

	return &recommend.BatchReport{
		RunID:   "run-1",
		Inputs:  2,
		Matched: 1,
		TopN:    2,
		Results: []recommend.Recommendation{hit, miss},
		Rows:    rows,
	}
}

func TestNoMatchMessage(t *testing.T) {
	t.Parallel()

	want := `No close match found for "Xyzzy". Please check the spelling or try another movie.`
	if got := NoMatchMessage("Xyzzy"); got != want {
		t.Errorf("NoMatchMessage() = %q, want %q", got, want)
	}
}

func TestWriteRecommendationTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  *recommend.Recommendation
		want string
	}{
		{
			name: "ranked list",
			rec:  sampleRecommendation(),
			want: "Recommendations for \"The Dark Knight\"\n\n" +
				"Movies suggested for you:\n\n" +
				"1.  Batman Begins\n" +
				"2.  Titanic\n",
		},
		{
			name: "no match",
			rec:  &recommend.Recommendation{Query: "Xyzzy"},
			want: NoMatchMessage("Xyzzy") + "\n",
		},
		{
			name: "single entry catalog",
			rec: &recommend.Recommendation{
				Query: "titanic",
				Match: &titlematch.Match{ID: 0, Title: "Titanic", Ratio: 1},
			},
			want: "Recommendations for \"Titanic\"\n\nNo other movies in the catalog to compare against.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := WriteRecommendationTable(&buf, tt.rec); err != nil {
				t.Fatalf("WriteRecommendationTable() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestWriteRecommendation_Formats(t *testing.T) {
	t.Parallel()

	t.Run("csv", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteRecommendation(&buf, config.FormatCSV, sampleRecommendation()); err != nil {
			t.Fatalf("WriteRecommendation() error = %v", err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("read csv: %v", err)
		}
		want := [][]string{
			CSVHeader,
			{"dark knight", "The Dark Knight", "Batman Begins", "1"},
			{"dark knight", "The Dark Knight", "Titanic", "2"},
		}
		if !reflect.DeepEqual(records, want) {
			t.Errorf("records = %v, want %v", records, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteRecommendation(&buf, config.FormatJSON, sampleRecommendation()); err != nil {
			t.Fatalf("WriteRecommendation() error = %v", err)
		}
		var got recommend.Recommendation
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Match == nil || got.Match.Title != "The Dark Knight" || len(got.Items) != 2 {
			t.Errorf("decoded = %+v", got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		err := WriteRecommendation(&bytes.Buffer{}, "xml", sampleRecommendation())
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("error = %v, want ErrUnknownFormat", err)
		}
	})
}

func TestWriteBatchCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteBatchCSV(&buf, sampleBatch()); err != nil {
		t.Fatalf("WriteBatchCSV() error = %v", err)
	}

	want := "Input Movie,Closest Match,Recommended Movie,Rank\n" +
		"dark knight,The Dark Knight,Batman Begins,1\n" +
		"dark knight,The Dark Knight,Titanic,2\n" +
		"Xyzzy,No match found,None,-\n"
	if got := buf.String(); got != want {
		t.Errorf("csv =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteBatchTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteBatchTable(&buf, sampleBatch()); err != nil {
		t.Fatalf("WriteBatchTable() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Input Movie") || !strings.HasSuffix(lines[0], "Rank") {
		t.Errorf("header = %q", lines[0])
	}
	// Columns are aligned: the second column starts at the same offset.
	col := strings.Index(lines[0], "Closest Match")
	if got := strings.Index(lines[3], "No match found"); got != col {
		t.Errorf("column offset = %d, want %d", got, col)
	}
	if lines[5] != "Recommendations found for 1 out of 2 input movies" {
		t.Errorf("summary = %q", lines[5])
	}
}

func TestWriteBatch_RecordsMetrics(t *testing.T) {
	tests := []struct {
		format string
		sink   string
	}{
		{config.FormatCSV, "csv"},
		{config.FormatJSON, "json"},
		{"", "table"},
	}

	for _, tt := range tests {
		t.Run(tt.sink, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.ExportRowsTotal.WithLabelValues(tt.sink))

			var buf bytes.Buffer
			if err := WriteBatch(&buf, tt.format, sampleBatch()); err != nil {
				t.Fatalf("WriteBatch() error = %v", err)
			}
			if buf.Len() == 0 {
				t.Error("no output written")
			}

			after := testutil.ToFloat64(metrics.ExportRowsTotal.WithLabelValues(tt.sink))
			if after-before != 3 {
				t.Errorf("rows recorded = %v, want 3", after-before)
			}
		})
	}
}

func TestWriteBatch_UnknownFormat(t *testing.T) {
	err := WriteBatch(&bytes.Buffer{}, "xml", sampleBatch())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestHumanBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{8 * 20000 * 20000, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := HumanBytes(tt.n); got != tt.want {
			t.Errorf("HumanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
