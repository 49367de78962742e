// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/shopwise/internal/intent"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
	"github.com/tomtom215/shopwise/internal/validation"
)

// searchCacheKey is what a search result depends on.
type searchCacheKey struct {
	Query   string            `json:"q"`
	N       int               `json:"n"`
	Filters recommend.Filters `json:"filters"`
}

// SmartSearchResponse is the data payload of GET /smart-search.
type SmartSearchResponse struct {
	ConversationalResponse string        `json:"conversational_response"`
	Intent                 intent.Intent `json:"intent"`
	Filters                SmartFilters  `json:"filters"`
	Products               ProductList   `json:"products"`
}

// SmartFilters are the structured filters the parser extracted.
type SmartFilters struct {
	SearchTerm string   `json:"search_term"`
	MinPrice   *float64 `json:"min_price"`
	MaxPrice   *float64 `json:"max_price"`
	Brand      string   `json:"brand"`
	Category   string   `json:"category"`
}

// Search handles GET /api/v1/search.
//
// Query parameters: q, n (default 5), min_price, max_price, category, brand.
// A price that is not a number answers 400 VALIDATION_ERROR; everything
// else, including no matches, is a success.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := parseNParam(r, h.config.MaxN)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	q := r.URL.Query()
	req := SearchRequest{
		Query:    q.Get("q"),
		N:        n,
		MinPrice: q.Get("min_price"),
		MaxPrice: q.Get("max_price"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	filters, err := recommend.ParseFilters(req.MinPrice, req.MaxPrice, req.Category, req.Brand)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	out, err := h.search(ctx, recommend.SearchRequest{Query: req.Query, N: req.N, Filters: filters})
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("operation", "search").
		Str("query", sanitizeLogValue(req.Query)).
		Int("n", req.N).
		Int("results", len(out.Products)).
		Str("stage", out.Stage).
		Bool("cached", out.cached).
		Msg("served search")

	meta := out.metadata()
	meta.QueryTimeMS = time.Since(start).Milliseconds()
	respondSuccess(w, r, out.list(), meta)
}

// SmartSearch handles GET /api/v1/smart-search.
//
// The query and optional history (a JSON array of {role, content}) are
// turned into filters by the intent parser, then searched. The parser never
// fails the request: without it, or when it errors, the raw query is
// searched literally.
func (h *Handler) SmartSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := parseNParam(r, h.config.MaxN)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	q := r.URL.Query()
	history, err := parseHistory(q.Get("history"))
	if err != nil {
		// Unreadable history is dropped; the query alone is still usable.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("ignoring malformed history")
		history = nil
	}

	req := SmartSearchRequest{Query: q.Get("q"), N: n, History: history}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	if !h.engine.Ready() {
		h.respondEngineError(w, r, recommend.ErrNotReady)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	parsed := h.parse(ctx, req.Query, req.History)

	term := parsed.SearchTerm
	if term == "" && parsed.Intent != intent.IntentAskClarification {
		term = req.Query
	}
	filters := recommend.Filters{
		MinPrice: parsed.MinPrice,
		MaxPrice: parsed.MaxPrice,
		Category: parsed.Category,
		Brand:    parsed.Brand,
	}

	out, err := h.search(ctx, recommend.SearchRequest{Query: term, N: req.N, Filters: filters})
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("operation", "smart_search").
		Str("intent", string(parsed.Intent)).
		Str("search_term", sanitizeLogValue(term)).
		Int("n", req.N).
		Int("results", len(out.Products)).
		Str("stage", out.Stage).
		Msg("served smart search")

	meta := out.metadata()
	meta.QueryTimeMS = time.Since(start).Milliseconds()
	respondSuccess(w, r, SmartSearchResponse{
		ConversationalResponse: parsed.ConversationalResponse,
		Intent:                 parsed.Intent,
		Filters: SmartFilters{
			SearchTerm: parsed.SearchTerm,
			MinPrice:   parsed.MinPrice,
			MaxPrice:   parsed.MaxPrice,
			Brand:      parsed.Brand,
			Category:   parsed.Category,
		},
		Products: out.list(),
	}, meta)
}

// parse runs the intent parser, or treats the query literally when none is
// configured.
func (h *Handler) parse(ctx context.Context, query string, history []intent.Turn) intent.Query {
	if h.parser == nil {
		return intent.Query{
			Intent:                 intent.IntentSearch,
			SearchTerm:             query,
			ConversationalResponse: "Searching...",
		}
	}
	return h.parser.Parse(ctx, query, history)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (h *Handler) search(ctx context.Context, req recommend.SearchRequest) (servedResult, error) {
	key := searchCacheKey{Query: req.Query, N: req.N, Filters: req.Filters}
	return h.cachedResult(ctx, "search", key, func() (recommend.Result, error) {
		return h.engine.Search(ctx, req)
	})
}
