// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomtom215/shopwise/internal/recommend"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, []*recommend.EvaluationResult{
		{K: 5, HitRate: 0.5, Precision: 0.1, Recall: 0.25, Coverage: 0.3, UsersEvaluated: 4},
		{K: 10, HitRate: 0.75, Precision: 0.075, Recall: 0.5, Coverage: 0.6, UsersEvaluated: 4},
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header and two rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "5 ") || !strings.Contains(lines[1], "0.5000") {
		t.Errorf("row for K=5 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "10") {
		t.Errorf("row for K=10 = %q", lines[2])
	}
}

func TestRootCmd_RejectsNonPositiveK(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--k", "0"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "positive") {
		t.Errorf("Execute() error = %v, want positive-k error", err)
	}
}
