// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopwise/internal/intent"
)

// UserRecommendRequest holds the inputs of GET /recommend/user/{userID}.
type UserRecommendRequest struct {
	UserID string `json:"user_id" validate:"required,entity_id,max=128"`
	N      int    `json:"n" validate:"gte=0,lte=1000"`
}

// SimilarProductsRequest holds the inputs of GET /recommend/product/{productID}.
type SimilarProductsRequest struct {
	ProductID string `json:"product_id" validate:"required,entity_id,max=128"`
	N         int    `json:"n" validate:"gte=0,lte=1000"`
}

// SearchRequest holds the inputs of GET /search. Prices stay strings here
// and are parsed by recommend.ParseFilters.
type SearchRequest struct {
	Query    string `json:"q" validate:"max=500"`
	N        int    `json:"n" validate:"gte=0,lte=1000"`
	MinPrice string `json:"min_price" validate:"max=32"`
	MaxPrice string `json:"max_price" validate:"max=32"`
	Category string `json:"category" validate:"max=200"`
	Brand    string `json:"brand" validate:"max=200"`
}

// SmartSearchRequest holds the inputs of GET /smart-search.
type SmartSearchRequest struct {
	Query   string        `json:"q" validate:"max=500"`
	N       int           `json:"n" validate:"gte=0,lte=1000"`
	History []intent.Turn `json:"history" validate:"max=50,dive"`
}

// InteractionRequest is the body of POST /interactions.
type InteractionRequest struct {
	UserID    string  `json:"user_id" validate:"required,entity_id,max=128"`
	ProductID string  `json:"product_id" validate:"required,entity_id,max=128"`
	EventType string  `json:"event_type" validate:"omitempty,oneof=view click cart wishlist purchase rating"`
	Weight    float64 `json:"weight" validate:"gte=0,lte=1000"`
}

// paramError reports an unusable query parameter.
type paramError struct {
	name   string
	value  string
	reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s %s, got %q", e.name, e.reason, e.value)
}

// parseNParam reads the n query parameter. Absent means 0, which the engine
// replaces with its default. A value above maxN is rejected rather than
// truncated, so a successful response never holds fewer items than the
// caller could have been given.
func parseNParam(r *http.Request, maxN int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("n"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: "n", value: raw, reason: "must be an integer"}
	}
	if maxN > 0 && n > maxN {
		return 0, &paramError{name: "n", value: raw, reason: fmt.Sprintf("must be at most %d", maxN)}
	}
	return n, nil
}

// parseHistory decodes the history query parameter, a JSON array of
// {role, content} turns.
func parseHistory(raw string) ([]intent.Turn, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var turns []intent.Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, fmt.Errorf("history must be a JSON array of {role, content} objects: %w", err)
	}
	return turns, nil
}
