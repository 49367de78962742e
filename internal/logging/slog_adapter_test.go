// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestSlog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewSlogHandlerWithLogger(zerolog.New(buf)))
}

func TestSlogHandler_Levels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			newTestSlog(&buf).Log(t.Context(), tt.level, "msg")
			if !strings.Contains(buf.String(), `"level":"`+tt.want+`"`) {
				t.Errorf("output = %s, want level %s", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestSlog(&buf).With("service", "trainer").WithGroup("run")

	logger.Info("done",
		"version", 3,
		"ok", true,
		"took", 2*time.Second,
		"err", errors.New("partial"),
		slog.Group("model", "products", 12),
	)

	out := buf.String()
	for _, want := range []string{
		`"service":"trainer"`,
		`"run.version":3`,
		`"run.ok":true`,
		`"run.err":"partial"`,
		`"run.model.products":12`,
		`"message":"done"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}
