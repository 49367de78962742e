// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package testinfra

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionCapture is one chat completion request received by the server.
type CompletionCapture struct {
	Path    string
	Headers http.Header
	Request openai.ChatCompletionRequest
}

// MockCompletionServer is an OpenAI-compatible endpoint that answers
// /chat/completions with a fixed assistant message. It captures every
// request for verification.
type MockCompletionServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	captures []CompletionCapture

	// Content is the assistant message returned on success.
	Content string

	// Status overrides the HTTP status. Values >= 400 return an API error.
	Status int

	// Delay is applied before answering.
	Delay time.Duration
}

// NewMockCompletionServer starts a server that is closed with the test.
func NewMockCompletionServer(t *testing.T, content string) *MockCompletionServer {
	t.Helper()

	m := &MockCompletionServer{Content: content, Status: http.StatusOK}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

// URL is the base URL to configure as the client's BaseURL.
func (m *MockCompletionServer) URL() string {
	return m.Server.URL + "/v1"
}

// Captures returns a copy of every request received so far.
func (m *MockCompletionServer) Captures() []CompletionCapture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionCapture, len(m.captures))
	copy(out, m.captures)
	return out
}

func (m *MockCompletionServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body) //nolint:errcheck // test server
	_ = r.Body.Close()

	var req openai.ChatCompletionRequest
	_ = json.Unmarshal(body, &req) //nolint:errcheck // captured as-is

	m.mu.Lock()
	m.captures = append(m.captures, CompletionCapture{Path: r.URL.Path, Headers: r.Header.Clone(), Request: req})
	status, content, delay := m.Status, m.Content, m.Delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if status >= http.StatusBadRequest {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
		return
	}

	resp := openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  req.Model,
		Choices: []openai.ChatCompletionChoice{{
			Index:        0,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: openai.FinishReasonStop,
		}},
	}
	data, _ := json.Marshal(resp) //nolint:errcheck // fixed shape
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
