// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/shopwise/internal/metrics"
)

const breakerName = "intent-parser"

var (
	// ErrParserUnavailable is returned when no API key is configured.
	ErrParserUnavailable = errors.New("intent parser unavailable")

	// ErrRateLimited is returned when the client-side limiter has no tokens.
	ErrRateLimited = errors.New("intent parser rate limited")

	// ErrEmptyResponse is returned when the upstream model answers with no choices.
	ErrEmptyResponse = errors.New("empty response from language model")
)

// Completer is the subset of the OpenAI client the parser needs.
// *openai.Client satisfies it.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Parser turns a free-text shopping query plus recent conversation into
// structured search filters. Parse never fails: every upstream problem
// degrades to a literal search for the query.
type Parser struct {
	cfg     Config
	client  Completer
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[*Query]
	logger  zerolog.Logger
}

// NewParser creates a parser backed by an OpenAI-compatible endpoint.
// With an empty API key the parser answers every query literally.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewParser(cfg Config, logger zerolog.Logger) (*Parser, error) {
	var client Completer
	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(oc)
	}
	return NewParserWithClient(cfg, client, logger)
}

// NewParserWithClient creates a parser around an existing client.
// A nil client behaves like a missing API key.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewParserWithClient(cfg Config, client Completer, logger zerolog.Logger) (*Parser, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid intent config: %w", err)
	}

	log := logger.With().Str("component", "intent").Logger()

	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	}

	return &Parser{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker: gobreaker.NewCircuitBreaker[*Query](settings),
		logger:  log,
	}, nil
}

// Available reports whether queries are sent to a language model.
func (p *Parser) Available() bool {
	return p.client != nil
}

// BreakerState returns the circuit breaker state for health reporting.
func (p *Parser) BreakerState() string {
	return p.breaker.State().String()
}

// Parse extracts structured filters from query. history holds earlier turns,
// oldest first; only the most recent HistoryTurns are sent upstream.
func (p *Parser) Parse(ctx context.Context, query string, history []Turn) Query {
	if p.client == nil {
		metrics.RecordIntentParse("no_api_key", 0)
		return literal(query, "Searching...")
	}
	if query == "" {
		metrics.RecordIntentParse("empty_query", 0)
		return Query{
			Intent:                 IntentAskClarification,
			ConversationalResponse: "How can I help you today?",
		}
	}

	start := time.Now()
	q, err := p.parse(ctx, query, history)
	took := time.Since(start)

	if err != nil {
		outcome := "fallback"
		if errors.Is(err, ErrRateLimited) {
			outcome = "rate_limited"
			took = 0
		}
		metrics.RecordIntentParse(outcome, took)
		p.logger.Warn().Err(err).Str("query", query).Dur("latency", took).Msg("intent parsing failed, searching literally")
		return literal(query, fmt.Sprintf("I'm looking into '%s' for you...", query))
	}

	metrics.RecordIntentParse("parsed", took)
	p.logger.Debug().Str("intent", string(q.Intent)).Str("search_term", q.SearchTerm).Dur("latency", took).Msg("query parsed")
	return *q
}

func (p *Parser) parse(ctx context.Context, query string, history []Turn) (*Query, error) {
	if !p.limiter.Allow() {
		return nil, ErrRateLimited
	}

	req := p.request(query, history)

	return p.breaker.Execute(func() (*Query, error) {
		callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()

		resp, err := p.client.CreateChatCompletion(callCtx, req)
		if err != nil {
			return nil, fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, ErrEmptyResponse
		}
		return decode(resp.Choices[0].Message.Content, query)
	})
}

func (p *Parser) request(query string, history []Turn) openai.ChatCompletionRequest {
	if len(history) > p.cfg.HistoryTurns {
		history = history[len(history)-p.cfg.HistoryTurns:]
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query + "\n\nReturn the result as a raw JSON object.",
	})

	return openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    messages,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}

// decode parses the model's JSON answer. Keys the model left out take the
// literal-search defaults for query.
func decode(content, query string) (*Query, error) {
	var raw rawQuery
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	q := &Query{
		Intent:                 IntentSearch,
		SearchTerm:             query,
		ConversationalResponse: fmt.Sprintf("Searching for %s...", query),
		MinPrice:               raw.MinPrice.ptr(),
		MaxPrice:               raw.MaxPrice.ptr(),
	}
	if raw.Intent != nil {
		q.Intent = Intent(*raw.Intent)
	}
	// A present but null search_term means the model chose no keyword.
	if raw.SearchTerm.set {
		q.SearchTerm = raw.SearchTerm.value
	}
	if raw.Brand != nil {
		q.Brand = *raw.Brand
	}
	if raw.Category != nil {
		q.Category = *raw.Category
	}
	if raw.ConversationalResponse != nil {
		q.ConversationalResponse = *raw.ConversationalResponse
	}
	return q, nil
}

func literal(query, response string) Query {
	return Query{
		Intent:                 IntentSearch,
		SearchTerm:             query,
		ConversationalResponse: response,
	}
}

const systemPrompt = `You are an expert shopping assistant for an online marketplace.
Your goal is to parse user queries and conversation history into structured filters.

### Output Format (JSON):
{
  "intent": "search" | "recommend" | "compare" | "ask_clarification",
  "search_term": (string or null) - main keyword,
  "min_price": (number or null),
  "max_price": (number or null),
  "brand": (string or null),
  "category": (string or null),
  "conversational_response": (string) - a short, friendly message acknowledging the request
}

### Guidelines:
- Refinement: if the user gives a partial filter (e.g. "only red ones"), use the history to complete the search term.
- Ambiguity: if the query is too vague, set intent to "ask_clarification" and ask for details in conversational_response.
- Tone: professional, helpful and concise.

### Context Usage:
Keep state across turns. If the user searched for "laptops" and now says "cheap ones",
the search_term stays "laptop" and max_price is set accordingly.`
