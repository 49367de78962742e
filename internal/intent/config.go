// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package intent

import (
	"fmt"
	"time"
)

// Default upstream endpoint and model (Groq's OpenAI-compatible API).
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"
)

// Config controls the query-intent parser.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// Timeout bounds a single upstream call.
	Timeout time.Duration

	// HistoryTurns is how many trailing history turns are sent upstream.
	HistoryTurns int

	// RequestsPerSecond and Burst configure the client-side rate limiter.
	RequestsPerSecond float64
	Burst             int

	// BreakerFailureThreshold consecutive failures open the breaker for
	// BreakerTimeout.
	BreakerFailureThreshold uint32
	BreakerTimeout          time.Duration
}

// DefaultConfig returns the parser defaults. The API key is left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:                 DefaultBaseURL,
		Model:                   DefaultModel,
		Timeout:                 10 * time.Second,
		HistoryTurns:            4,
		RequestsPerSecond:       5,
		Burst:                   10,
		BreakerFailureThreshold: 5,
		BreakerTimeout:          30 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig.
//
//nolint:gocritic // hugeParam: Config is copied on purpose
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.HistoryTurns == 0 {
		c.HistoryTurns = d.HistoryTurns
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = d.RequestsPerSecond
	}
	if c.Burst == 0 {
		c.Burst = d.Burst
	}
	if c.BreakerFailureThreshold == 0 {
		c.BreakerFailureThreshold = d.BreakerFailureThreshold
	}
	if c.BreakerTimeout == 0 {
		c.BreakerTimeout = d.BreakerTimeout
	}
	return c
}

// Validate checks the configuration for errors.
//
//nolint:gocritic // hugeParam: Config is small enough
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("intent.timeout must be positive, got %v", c.Timeout)
	}
	if c.HistoryTurns < 0 {
		return fmt.Errorf("intent.history_turns must be non-negative, got %d", c.HistoryTurns)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("intent.requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.Burst < 0 {
		return fmt.Errorf("intent.burst must be positive, got %d", c.Burst)
	}
	if c.BreakerTimeout < 0 {
		return fmt.Errorf("intent.breaker_timeout must be positive, got %v", c.BreakerTimeout)
	}
	return nil
}
