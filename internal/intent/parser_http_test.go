// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package intent

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/tomtom215/shopwise/internal/testinfra"
)

func newHTTPParser(t *testing.T, srv *testinfra.MockCompletionServer, timeout time.Duration) *Parser {
	t.Helper()
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = srv.URL()
	cfg.Timeout = timeout
	p, err := NewParser(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	if !p.Available() {
		t.Fatal("Available() = false with an API key")
	}
	return p
}

func TestParser_HTTPRoundTrip(t *testing.T) {
	srv := testinfra.NewMockCompletionServer(t,
		`{"intent":"search","search_term":"wireless mouse","max_price":"50","brand":"Logitech","conversational_response":"Here you go"}`)
	p := newHTTPParser(t, srv, 5*time.Second)

	history := []Turn{
		{Role: RoleUser, Content: "t1"},
		{Role: RoleAssistant, Content: "t2"},
		{Role: RoleUser, Content: "t3"},
		{Role: RoleAssistant, Content: "t4"},
		{Role: RoleUser, Content: "t5"},
	}
	got := p.Parse(context.Background(), "logitech mouse under 50", history)

	if got.SearchTerm != "wireless mouse" || got.Brand != "Logitech" {
		t.Errorf("Parse() = %+v", got)
	}
	if got.MaxPrice == nil || *got.MaxPrice != 50 {
		t.Errorf("MaxPrice = %v, want 50", got.MaxPrice)
	}

	captures := srv.Captures()
	if len(captures) != 1 {
		t.Fatalf("server saw %d requests, want 1", len(captures))
	}
	c := captures[0]
	if !strings.HasSuffix(c.Path, "/chat/completions") {
		t.Errorf("path = %q", c.Path)
	}
	if got := c.Headers.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("Authorization = %q", got)
	}
	if c.Request.ResponseFormat == nil || c.Request.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Errorf("response_format = %+v, want json_object", c.Request.ResponseFormat)
	}
	// System prompt, the last four turns, then the query.
	if n := len(c.Request.Messages); n != 6 {
		t.Fatalf("sent %d messages, want 6", n)
	}
	if c.Request.Messages[1].Content != "t2" {
		t.Errorf("oldest history turn sent = %q, want t2", c.Request.Messages[1].Content)
	}
}

func TestParser_HTTPFailureFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		delay  time.Duration
	}{
		{"server error", http.StatusInternalServerError, 0},
		{"timeout", http.StatusOK, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testinfra.NewMockCompletionServer(t, `{"search_term":"x"}`)
			srv.Status = tt.status
			srv.Delay = tt.delay
			p := newHTTPParser(t, srv, 100*time.Millisecond)

			got := p.Parse(context.Background(), "garden hose", nil)
			want := literal("garden hose", "I'm looking into 'garden hose' for you...")
			if got.Intent != want.Intent || got.SearchTerm != want.SearchTerm || got.ConversationalResponse != want.ConversationalResponse {
				t.Errorf("Parse() = %+v, want %+v", got, want)
			}
		})
	}
}
