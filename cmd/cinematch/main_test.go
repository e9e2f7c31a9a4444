// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/titlematch"
	"github.com/tomtom215/cinematch/internal/report"
)

const testCatalog = `index,title,genres,keywords,tagline,cast,director
0,The Dark Knight,Action Crime Drama,joker dc comics,Why so serious?,Christian Bale Heath Ledger,Christopher Nolan
1,Batman Begins,Action Crime Drama,dc comics origin,Evil fears the knight,Christian Bale Michael Caine,Christopher Nolan
2,Titanic,Drama Romance,ship iceberg,Nothing on earth could come between them,Kate Winslet Leonardo DiCaprio,James Cameron
3,Avatar,Action Adventure Fantasy,future space colony,Enter the world,Sam Worthington Zoe Saldana,James Cameron
`

// cliEnv prepares an isolated working directory with a catalog and clears
// configuration variables that would leak into Load.
func cliEnv(t *testing.T) string {
	t.Helper()

	for _, key := range []string{
		"CONFIG_PATH", "CATALOG_PATH", "DATABASE_DRIVER", "DATABASE_PATH", "DUCKDB_PATH",
		"OUTPUT_FORMAT", "OUTPUT_PATH", "REFRESH_ENABLED", "METRICS_TEXTFILE",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "movies.csv")
	if err := os.WriteFile(path, []byte(testCatalog), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

// runCLI executes the command line with captured output.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	a := &app{}
	root := a.rootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--log-level", "error"}, args...))

	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestBuildEngineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Recommend.MinRatio = 0.7
	cfg.Recommend.CaseSensitive = true
	cfg.Recommend.MaxTopN = 50

	got := buildEngineConfig(cfg)
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.Matching.MinRatio != 0.7 || !got.Matching.CaseSensitive {
		t.Errorf("Matching = %+v", got.Matching)
	}
	if got.Limits.MaxTopN != 50 || got.Limits.DefaultTopN != 10 {
		t.Errorf("Limits = %+v", got.Limits)
	}
	if got.Similarity.MaxEntries != cfg.Recommend.MaxEntries {
		t.Errorf("MaxEntries = %d", got.Similarity.MaxEntries)
	}

	opts := buildLoadOptions(cfg)
	if len(opts.Fields) != len(cfg.Recommend.Fields) || opts.StrictColumns {
		t.Errorf("LoadOptions = %+v", opts)
	}
}

func TestRecommendCommand(t *testing.T) {
	cliEnv(t)

	t.Run("ranked list", func(t *testing.T) {
		out, _, err := runCLI(t, "", "recommend", "the", "dark", "knight", "--top", "2")
		if err != nil {
			t.Fatalf("recommend error = %v", err)
		}
		if !strings.Contains(out, `Recommendations for "The Dark Knight"`) {
			t.Errorf("missing heading:\n%s", out)
		}
		if !strings.Contains(out, "1.  Batman Begins") {
			t.Errorf("Batman Begins not ranked first:\n%s", out)
		}
		if strings.Contains(out, "3.") {
			t.Errorf("more than 2 results:\n%s", out)
		}
	})

	t.Run("no match", func(t *testing.T) {
		out, _, err := runCLI(t, "", "recommend", "Qwxyz Plorth")
		if err != nil {
			t.Fatalf("recommend error = %v", err)
		}
		if !strings.Contains(out, report.NoMatchMessage("Qwxyz Plorth")) {
			t.Errorf("missing no-match message:\n%s", out)
		}
	})

	t.Run("blank title", func(t *testing.T) {
		_, errOut, err := runCLI(t, "", "recommend", "   ")
		if !errors.Is(err, errBlankTitle) {
			t.Fatalf("error = %v, want errBlankTitle", err)
		}
		if !strings.Contains(errOut, blankTitleMessage) {
			t.Errorf("stderr = %q", errOut)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := runCLI(t, "", "recommend", "titanic", "--format", "json")
		if err != nil {
			t.Fatalf("recommend error = %v", err)
		}
		var rec recommend.Recommendation
		if err := json.Unmarshal([]byte(out), &rec); err != nil {
			t.Fatalf("unmarshal: %v\n%s", err, out)
		}
		if rec.Match == nil || rec.Match.Title != "Titanic" || len(rec.Items) != 3 {
			t.Errorf("decoded = %+v", rec)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		if _, _, err := runCLI(t, "", "recommend", "titanic", "--format", "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})

	t.Run("missing catalog", func(t *testing.T) {
		_, _, err := runCLI(t, "", "--catalog", "nope.csv", "recommend", "titanic")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

func TestBatchCommand(t *testing.T) {
	cliEnv(t)
	if err := os.WriteFile("watched.csv", []byte("title\nDark Knight\nQwxyz Plorth\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("csv file", func(t *testing.T) {
		_, errOut, err := runCLI(t, "", "batch", "--input", "watched.csv", "--format", "csv",
			"--output", "out/results.csv", "--top", "2")
		if err != nil {
			t.Fatalf("batch error = %v", err)
		}
		if !strings.Contains(errOut, "Recommendations found for 1 out of 2 input movies") {
			t.Errorf("stderr = %q", errOut)
		}

		f, err := os.Open(filepath.Join("out", "results.csv"))
		if err != nil {
			t.Fatalf("open results: %v", err)
		}
		defer func() { _ = f.Close() }()
		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("read results: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("records = %d, want 4: %v", len(records), records)
		}
		if strings.Join(records[0], ",") != "Input Movie,Closest Match,Recommended Movie,Rank" {
			t.Errorf("header = %v", records[0])
		}
		if records[1][2] != "Batman Begins" || records[1][3] != "1" {
			t.Errorf("first row = %v", records[1])
		}
		if want := []string{"Qwxyz Plorth", "No match found", "None", "-"}; strings.Join(records[3], "|") != strings.Join(want, "|") {
			t.Errorf("no-match row = %v, want %v", records[3], want)
		}
	})

	t.Run("stdin table", func(t *testing.T) {
		out, _, err := runCLI(t, "title\nAvatar\n", "batch", "--input", "-", "--top", "1")
		if err != nil {
			t.Fatalf("batch error = %v", err)
		}
		if !strings.Contains(out, "Recommendations found for 1 out of 1 input movies") {
			t.Errorf("summary missing:\n%s", out)
		}
	})

	t.Run("missing title column", func(t *testing.T) {
		if _, _, err := runCLI(t, "name\nAvatar\n", "batch", "--input", "-"); err == nil {
			t.Error("expected error for input without title column")
		}
	})

	t.Run("parquet without database", func(t *testing.T) {
		if _, _, err := runCLI(t, "", "batch", "--input", "watched.csv", "--parquet", "out.parquet"); err == nil {
			t.Error("expected error for --parquet without a database")
		}
	})
}

func TestBatchHistorySQLite(t *testing.T) {
	cliEnv(t)
	t.Setenv("DATABASE_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_PATH", "results.db")
	if err := os.WriteFile("watched.csv", []byte("title\nTitanic\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "", "batch", "--input", "watched.csv", "--top", "2"); err != nil {
		t.Fatalf("batch error = %v", err)
	}

	out, _, err := runCLI(t, "", "history", "--format", "json")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	var runs []struct {
		RunID    string `json:"run_id"`
		Inputs   int    `json:"inputs"`
		RowCount int    `json:"row_count"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Inputs != 1 || runs[0].RowCount != 2 {
		t.Fatalf("runs = %+v", runs)
	}

	out, _, err = runCLI(t, "", "history", runs[0].RunID, "--format", "csv")
	if err != nil {
		t.Fatalf("history run error = %v", err)
	}
	if !strings.HasPrefix(out, "Input Movie,Closest Match,Recommended Movie,Rank\nTitanic,Titanic,") {
		t.Errorf("history rows:\n%s", out)
	}

	if _, _, err := runCLI(t, "", "history", "no-such-run"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestInspectCommand(t *testing.T) {
	cliEnv(t)

	out, _, err := runCLI(t, "", "inspect", "--terms", "3", "--format", "json")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	var info inspection
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if info.Index.Entries != 4 {
		t.Errorf("entries = %d, want 4", info.Index.Entries)
	}
	if info.Index.MatrixBytes != 8*4*4 {
		t.Errorf("matrix bytes = %d, want %d", info.Index.MatrixBytes, 8*4*4)
	}
	if len(info.TopTerms) != 3 {
		t.Errorf("top terms = %d, want 3", len(info.TopTerms))
	}

	out, _, err = runCLI(t, "", "inspect")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if !strings.Contains(out, "Most frequent terms:") || !strings.Contains(out, "Matrix memory:") {
		t.Errorf("table output:\n%s", out)
	}
}

func TestInteractiveCommand(t *testing.T) {
	cliEnv(t)

	out, _, err := runCLI(t, "dark knight\n\nQwxyz Plorth\n", "interactive", "--top", "1")
	if err != nil {
		t.Fatalf("interactive error = %v", err)
	}
	for _, want := range []string{
		promptText,
		`Recommendations for "The Dark Knight"`,
		"1.  Batman Begins",
		blankTitleMessage,
		report.NoMatchMessage("Qwxyz Plorth"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInteractiveCommand_Interrupt(t *testing.T) {
	cliEnv(t)

	stdin, input := io.Pipe()
	t.Cleanup(func() { _ = input.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &app{}
	root := a.rootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(stdin)
	root.SetArgs([]string{"--log-level", "error", "interactive"})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	// The write returns once the session is reading input.
	if _, err := io.WriteString(input, "dark knight\n"); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("interactive after interrupt error = %v, want nil", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("interactive did not stop after interrupt")
	}
}

func TestConfigFieldErrorsLogged(t *testing.T) {
	cliEnv(t)
	t.Setenv("RECOMMEND_MIN_RATIO", "2")

	prev := logging.Logger()
	t.Cleanup(func() { logging.SetLogger(prev) })
	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))

	if _, _, err := runCLI(t, "", "inspect"); err == nil {
		t.Fatal("inspect with min_ratio 2 succeeded")
	}
	for _, want := range []string{`"field":"min_ratio"`, `"tag":"lte"`, `"param":"1"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %s:\n%s", want, buf.String())
		}
	}
}

func TestUnmatchedQueries(t *testing.T) {
	match := &titlematch.Match{ID: 0, Title: "The Dark Knight", Ratio: 1}
	result := &recommend.BatchReport{Results: []recommend.Recommendation{
		{Query: "Qwxyz"},
		{Query: "The Dark Knight", Match: match},
		{Query: "Plorth"},
		{Query: "Qwxyz"},
	}}

	got := unmatchedQueries(result)
	want := []string{"Qwxyz", "Plorth"}
	if !slices.Equal(got, want) {
		t.Errorf("unmatchedQueries() = %v, want %v", got, want)
	}
	if got := unmatchedQueries(&recommend.BatchReport{}); len(got) != 0 {
		t.Errorf("unmatchedQueries(empty) = %v", got)
	}
}

func TestOpenOutput(t *testing.T) {
	var buf bytes.Buffer
	w, closeFn, err := openOutput("", &buf)
	if err != nil || w != &buf {
		t.Fatalf("openOutput(\"\") = %v, %v", w, err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close stdout: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	w, closeFn, err = openOutput(path, &buf)
	if err != nil {
		t.Fatalf("openOutput() error = %v", err)
	}
	if _, err := w.Write([]byte("ok")); err != nil {
		t.Fatal(err)
	}
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(path); string(data) != "ok" {
		t.Errorf("file = %q", data)
	}
}
