// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"ünïcode", "ünïcode"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRespondError_DoesNotLeakCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	respondError(w, req, http.StatusInternalServerError, ErrCodeInternal, "Failed", errSecret{})

	if strings.Contains(w.Body.String(), "dsn=postgres") {
		t.Errorf("cause leaked: %s", w.Body.String())
	}
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "error" || resp.Error.Code != ErrCodeInternal {
		t.Errorf("response = %+v", resp)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

type errSecret struct{}

func (errSecret) Error() string { return "dial failed dsn=postgres://secret" }

func TestParseNParam(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"n=7", 7, false},
		{"n=+3", 3, false},
		{"n=1.5", 0, true},
		{"n=ten", 0, true},
		{"n=20", 20, false},
		{"n=21", 0, true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		got, err := parseNParam(req, 20)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseNParam(%q) = %d, %v", tt.query, got, err)
		}
	}
}
