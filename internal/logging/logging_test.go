// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext on empty context = %q, want empty", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext = %q, want req-123", got)
	}

	ctx = ContextWithNewRequestID(context.Background())
	if got := RequestIDFromContext(ctx); got == "" {
		t.Error("ContextWithNewRequestID produced an empty ID")
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	ctx := ContextWithLogger(context.Background(), logger)
	Ctx(ctx).Info().Str("key", "value").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %q", buf.String())
	}
	if entry["key"] != "value" || entry["message"] != "hello" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestCtxChainsLevelMethods(t *testing.T) {
	prev := zerolog.GlobalLevel()
	SetLevelString("trace")
	defer zerolog.SetGlobalLevel(prev)

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	Ctx(ctx).Debug().Msg("d")
	Ctx(ctx).Warn().Msg("w")
	Ctx(ctx).Error().Msg("e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %q", len(lines), buf.String())
	}
}

func TestCtxDoesNotDuplicateRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf).With().Str("request_id", "req-9").Logger()

	ctx := ContextWithRequestID(context.Background(), "req-9")
	ctx = ContextWithLogger(ctx, logger)
	Ctx(ctx).Info().Msg("hit")

	line := buf.String()
	if n := strings.Count(line, `"request_id"`); n != 1 {
		t.Errorf("request_id key appears %d times in %q, want 1", n, line)
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler)

	logger.Info("service started", "name", "http-server", "restarts", int64(2))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %q", buf.String())
	}
	if entry["message"] != "service started" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["name"] != "http-server" {
		t.Errorf("name = %v", entry["name"])
	}
	if entry["restarts"] != float64(2) {
		t.Errorf("restarts = %v", entry["restarts"])
	}
}

func TestSlogHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	logger := slog.New(handler).WithGroup("supervisor").With("tree", "vinoscope")

	logger.Warn("service restarted")

	out := buf.String()
	if !strings.Contains(out, "supervisor.tree") {
		t.Errorf("grouped attr missing dotted prefix: %q", out)
	}
}
