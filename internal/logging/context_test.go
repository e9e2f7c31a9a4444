// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected 8 character correlation ID, got %d: %q", len(id1), id1)
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id := GenerateRunID()
	if len(id) != 36 {
		t.Errorf("expected 36 character UUID, got %d: %q", len(id), id)
	}
	if id == GenerateRunID() {
		t.Error("expected unique run IDs")
	}
}

func TestCorrelationIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("expected empty correlation ID, got %q", got)
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("CorrelationIDFromContext() = %q, want %q", got, "abc12345")
	}

	ctx = ContextWithNewCorrelationID(context.Background())
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("expected generated correlation ID, got %q", got)
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRunID(context.Background(), "run-1")
	if got := RunIDFromContext(ctx); got != "run-1" {
		t.Errorf("RunIDFromContext() = %q, want %q", got, "run-1")
	}
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty run ID, got %q", got)
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithCorrelationID(ctx, "corr0001")
	ctx = ContextWithRunID(ctx, "run-42")

	Ctx(ctx).Warn().Msg("batch row skipped")

	output := buf.String()
	for _, want := range []string{`"correlation_id":"corr0001"`, `"run_id":"run-42"`, "batch row skipped"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %s, got: %s", want, output)
		}
	}
}

func TestCtxWith_NoValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	logger := CtxWith(ctx).Str("component", "batch").Logger()
	logger.Warn().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "correlation_id") || strings.Contains(output, "run_id") {
		t.Errorf("expected no context IDs, got: %s", output)
	}
	if !strings.Contains(output, `"component":"batch"`) {
		t.Errorf("expected component field, got: %s", output)
	}
}

func TestLoggerFromContext_NoLogger(t *testing.T) {
	t.Parallel()

	// Falls back to the global logger without panicking.
	logger := LoggerFromContext(context.Background())
	_ = logger.With()
}
