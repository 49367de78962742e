// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package intent

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Intent is the action the shopper is asking for.
type Intent string

const (
	IntentSearch           Intent = "search"
	IntentRecommend        Intent = "recommend"
	IntentCompare          Intent = "compare"
	IntentAskClarification Intent = "ask_clarification"
)

// Conversation roles accepted in history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one earlier message of the conversation.
type Turn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=2000"`
}

// Query is the structured form of a shopping request. Empty strings and nil
// prices mean the model extracted nothing for that field.
type Query struct {
	Intent                 Intent   `json:"intent"`
	SearchTerm             string   `json:"search_term"`
	MinPrice               *float64 `json:"min_price"`
	MaxPrice               *float64 `json:"max_price"`
	Brand                  string   `json:"brand"`
	Category               string   `json:"category"`
	ConversationalResponse string   `json:"conversational_response"`
}

// rawQuery mirrors the model output. Language models are loose with types,
// so prices may arrive as numbers, numeric strings or null.
type rawQuery struct {
	Intent                 *string       `json:"intent"`
	SearchTerm             optionalText  `json:"search_term"`
	MinPrice               flexibleFloat `json:"min_price"`
	MaxPrice               flexibleFloat `json:"max_price"`
	Brand                  *string       `json:"brand"`
	Category               *string       `json:"category"`
	ConversationalResponse *string       `json:"conversational_response"`
}

// optionalText distinguishes an absent key from an explicit null.
type optionalText struct {
	set   bool
	value string
}

func (o *optionalText) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

type flexibleFloat struct {
	valid bool
	value float64
}

func (f *flexibleFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		f.set(v)
		return nil
	}

	// Unparseable strings such as "cheap" are treated as no bound.
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil //nolint:nilerr // non-numeric price is ignored
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.set(v)
	}
	return nil
}

func (f *flexibleFloat) set(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	f.valid = true
	f.value = v
}

func (f flexibleFloat) ptr() *float64 {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}
