// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package intent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

// mockCompleter implements Completer for testing.
type mockCompleter struct {
	mu       sync.Mutex
	content  string
	err      error
	delay    time.Duration
	calls    int
	requests []openai.ChatCompletionRequest
}

func (m *mockCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return openai.ChatCompletionResponse{}, ctx.Err()
		}
	}
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: m.content}},
		},
	}, nil
}

func (m *mockCompleter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestParser(t *testing.T, cfg Config, client Completer) *Parser {
	t.Helper()
	p, err := NewParserWithClient(cfg, client, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewParserWithClient() error = %v", err)
	}
	return p
}

func TestParse_NoAPIKey(t *testing.T) {
	p, err := NewParser(Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	if p.Available() {
		t.Error("Available() = true without API key")
	}

	for _, q := range []string{"bosch drill", ""} {
		got := p.Parse(context.Background(), q, nil)
		if got.Intent != IntentSearch || got.SearchTerm != q || got.ConversationalResponse != "Searching..." {
			t.Errorf("Parse(%q) = %+v", q, got)
		}
	}
}

func TestParse_EmptyQuery(t *testing.T) {
	m := &mockCompleter{}
	p := newTestParser(t, Config{}, m)

	got := p.Parse(context.Background(), "", nil)
	if got.Intent != IntentAskClarification || got.ConversationalResponse != "How can I help you today?" {
		t.Errorf("Parse(\"\") = %+v", got)
	}
	if m.callCount() != 0 {
		t.Error("empty query reached the model")
	}
}

func TestParse_Decoding(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, q Query)
	}{
		{
			name:    "full answer",
			content: `{"intent":"search","search_term":"drill","min_price":null,"max_price":5000,"brand":"Bosch","category":null,"conversational_response":"Looking for Bosch drills under 5k..."}`,
			check: func(t *testing.T, q Query) {
				if q.SearchTerm != "drill" || q.Brand != "Bosch" || q.Category != "" {
					t.Errorf("q = %+v", q)
				}
				if q.MinPrice != nil || q.MaxPrice == nil || *q.MaxPrice != 5000 {
					t.Errorf("prices = %v, %v", q.MinPrice, q.MaxPrice)
				}
			},
		},
		{
			name:    "missing keys take defaults",
			content: `{"brand":"Makita"}`,
			check: func(t *testing.T, q Query) {
				if q.Intent != IntentSearch || q.SearchTerm != "bosch drill under 5k" {
					t.Errorf("defaults not applied: %+v", q)
				}
				if q.ConversationalResponse != "Searching for bosch drill under 5k..." {
					t.Errorf("response = %q", q.ConversationalResponse)
				}
			},
		},
		{
			name:    "explicit null search term",
			content: `{"intent":"recommend","search_term":null}`,
			check: func(t *testing.T, q Query) {
				if q.Intent != IntentRecommend || q.SearchTerm != "" {
					t.Errorf("q = %+v", q)
				}
			},
		},
		{
			name:    "prices as strings",
			content: ` {"min_price":"1,000","max_price":"cheap"} `,
			check: func(t *testing.T, q Query) {
				if q.MinPrice == nil || *q.MinPrice != 1000 {
					t.Errorf("MinPrice = %v, want 1000", q.MinPrice)
				}
				if q.MaxPrice != nil {
					t.Errorf("MaxPrice = %v, want nil", *q.MaxPrice)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, Config{}, &mockCompleter{content: tt.content})
			tt.check(t, p.Parse(context.Background(), "bosch drill under 5k", nil))
		})
	}
}

func TestParse_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		m    *mockCompleter
	}{
		{"upstream error", &mockCompleter{err: errors.New("503 service unavailable")}},
		{"malformed json", &mockCompleter{content: "Sure! Here are some drills"}},
		{"timeout", &mockCompleter{content: `{}`, delay: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, Config{Timeout: 20 * time.Millisecond}, tt.m)
			got := p.Parse(context.Background(), "drill", nil)
			want := Query{Intent: IntentSearch, SearchTerm: "drill", ConversationalResponse: "I'm looking into 'drill' for you..."}
			if got != want {
				t.Errorf("Parse() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestParse_EmptyChoices(t *testing.T) {
	p := newTestParser(t, Config{}, completerFunc(func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{}, nil
	}))
	if got := p.Parse(context.Background(), "drill", nil); got.SearchTerm != "drill" || got.Intent != IntentSearch {
		t.Errorf("Parse() = %+v", got)
	}
}

func TestParse_BreakerOpens(t *testing.T) {
	m := &mockCompleter{err: errors.New("connection refused")}
	p := newTestParser(t, Config{BreakerFailureThreshold: 2, BreakerTimeout: time.Hour}, m)

	for i := 0; i < 5; i++ {
		p.Parse(context.Background(), "drill", nil)
	}
	if m.callCount() != 2 {
		t.Errorf("upstream called %d times, want 2 before the breaker opened", m.callCount())
	}
	if p.BreakerState() != "open" {
		t.Errorf("BreakerState() = %s, want open", p.BreakerState())
	}
}

func TestParse_RateLimited(t *testing.T) {
	m := &mockCompleter{content: `{"search_term":"x"}`}
	p := newTestParser(t, Config{RequestsPerSecond: 0.001, Burst: 1}, m)

	first := p.Parse(context.Background(), "drill", nil)
	second := p.Parse(context.Background(), "drill", nil)

	if first.SearchTerm != "x" {
		t.Errorf("first Parse() = %+v", first)
	}
	if second.SearchTerm != "drill" {
		t.Errorf("rate limited Parse() = %+v, want literal fallback", second)
	}
	if m.callCount() != 1 {
		t.Errorf("upstream called %d times, want 1", m.callCount())
	}
}

func TestParse_Request(t *testing.T) {
	m := &mockCompleter{content: `{}`}
	p := newTestParser(t, Config{Model: "test-model"}, m)

	history := []Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
		{Role: RoleAssistant, Content: "four"},
		{Role: RoleUser, Content: "five"},
	}
	p.Parse(context.Background(), "cheap ones", history)

	if len(m.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(m.requests))
	}
	req := m.requests[0]
	if req.Model != "test-model" {
		t.Errorf("Model = %s", req.Model)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Error("JSON response format not requested")
	}

	// system + last 4 turns + query
	if len(req.Messages) != 6 {
		t.Fatalf("messages = %d, want 6", len(req.Messages))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("first message role = %s", req.Messages[0].Role)
	}
	if req.Messages[1].Content != "two" || req.Messages[1].Role != openai.ChatMessageRoleAssistant {
		t.Errorf("oldest kept turn = %+v, want assistant 'two'", req.Messages[1])
	}
	last := req.Messages[5]
	if last.Role != openai.ChatMessageRoleUser || !strings.HasPrefix(last.Content, "cheap ones") {
		t.Errorf("last message = %+v", last)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
	bad := DefaultConfig()
	bad.HistoryTurns = -1
	if err := bad.Validate(); err == nil {
		t.Error("Validate() should reject negative history_turns")
	}
	if _, err := NewParserWithClient(Config{Burst: -1}, nil, zerolog.Nop()); err == nil {
		t.Error("NewParserWithClient() should reject invalid config")
	}
}

type completerFunc func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

func (f completerFunc) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return f(ctx, req)
}
