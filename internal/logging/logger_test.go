// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreGlobal resets the global logger and level after a test mutates them.
func restoreGlobal(t *testing.T) {
	t.Helper()
	prevLogger := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prevLogger)
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected default format 'console', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
}

func TestInit(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{
		Level:     "debug",
		Format:    FormatJSON,
		Timestamp: true,
		Output:    &buf,
	})

	Info().Int("entries", 3).Msg("catalog loaded")

	output := buf.String()
	for _, want := range []string{"catalog loaded", `"level":"info"`, `"entries":3`, `"time":`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %s, got: %s", want, output)
		}
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: FormatConsole, Output: &buf})
	Info().Str("query", "heat").Msg("resolved")

	output := buf.String()
	if strings.Contains(output, `"message"`) {
		t.Errorf("console output should not be JSON, got: %s", output)
	}
	if !strings.Contains(output, "resolved") || !strings.Contains(output, "query=heat") {
		t.Errorf("unexpected console output: %s", output)
	}
}

func TestInit_AppliesDefaultsForEmptyValues(t *testing.T) {
	restoreGlobal(t)

	Init(Config{})

	if GetLevel() != zerolog.InfoLevel {
		t.Errorf("GetLevel() = %v, want info", GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" Info ", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "warn", Format: FormatJSON, Output: &buf})

	Debug().Msg("debug hidden")
	Info().Msg("info hidden")
	Warn().Msg("warn shown")
	Error().Msg("error shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("messages below warn should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "warn shown") || !strings.Contains(output, "error shown") {
		t.Errorf("expected warn and error messages, got: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: FormatJSON, Output: &buf})

	logger := WithComponent("recommend")
	logger.Info().Msg("index built")

	if !strings.Contains(buf.String(), `"component":"recommend"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}

func TestNewTestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Warn().Msg("captured")

	if !strings.Contains(buf.String(), "captured") {
		t.Errorf("expected captured output, got: %s", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	restoreGlobal(t)

	SetLevelString("error")
	if !IsLevelEnabled(zerolog.ErrorLevel) {
		t.Error("error level should be enabled")
	}
	if IsLevelEnabled(zerolog.WarnLevel) {
		t.Error("warn level should be disabled")
	}
}

func TestErr(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: FormatJSON, Output: &buf})

	Err(errors.New("schema error")).Msg("load failed")

	output := buf.String()
	if !strings.Contains(output, `"error":"schema error"`) || !strings.Contains(output, `"level":"error"`) {
		t.Errorf("unexpected output: %s", output)
	}
}
