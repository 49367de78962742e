// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/shopwise/internal/cache"
	"github.com/tomtom215/shopwise/internal/eventprocessor"
	"github.com/tomtom215/shopwise/internal/intent"
	"github.com/tomtom215/shopwise/internal/recommend"
)

// Recommender is the serving and training surface of *recommend.Engine.
type Recommender interface {
	RecommendForUser(ctx context.Context, userID string, n int) (recommend.Result, error)
	SimilarProducts(ctx context.Context, productID string, n int) (recommend.Result, error)
	Search(ctx context.Context, req recommend.SearchRequest) (recommend.Result, error)
	Train(ctx context.Context) error
	Status() recommend.Status
	Ready() bool
}

// IntentParser turns a free-text query into structured filters.
// Satisfied by *intent.Parser.
type IntentParser interface {
	Parse(ctx context.Context, query string, history []intent.Turn) intent.Query
	Available() bool
	BreakerState() string
}

// InteractionPublisher publishes recorded interactions.
// Satisfied by *eventprocessor.Publisher.
type InteractionPublisher interface {
	PublishInteraction(ctx context.Context, event *eventprocessor.InteractionEvent) error
}

// HandlerConfig holds request-level limits.
type HandlerConfig struct {
	// RequestTimeout bounds serving operations. Default: 10s
	RequestTimeout time.Duration

	// TrainingTimeout bounds a training run started through the API. Default: 30m
	TrainingTimeout time.Duration

	// MaxN is the largest n a caller may request; larger values answer 400.
	// It matches the engine's limit. Default: 100
	MaxN int
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: user and similar-product recommendations
//   - handlers_search.go: hybrid search and smart search
//   - handlers_model.go: model status and training trigger
//   - handlers_interactions.go: interaction ingestion
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	engine    Recommender
	parser    IntentParser
	publisher InteractionPublisher
	cache     cache.ResultCache
	config    HandlerConfig
	startTime time.Time

	// trainCtx is the parent of background training runs and is canceled
	// by Close.
	trainCtx    context.Context
	trainCancel context.CancelFunc
}

// NewHandler creates a handler. parser, publisher and resultCache may be
// nil: smart search then searches literally, interaction ingestion answers
// 503, and results are not cached.
func NewHandler(engine Recommender, parser IntentParser, publisher InteractionPublisher, resultCache cache.ResultCache, cfg HandlerConfig) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.TrainingTimeout <= 0 {
		cfg.TrainingTimeout = 30 * time.Minute
	}
	if cfg.MaxN <= 0 {
		cfg.MaxN = 100
	}
	if resultCache == nil {
		resultCache = cache.Nop{}
	}
	trainCtx, trainCancel := context.WithCancel(context.Background())
	return &Handler{
		engine:      engine,
		parser:      parser,
		publisher:   publisher,
		cache:       resultCache,
		config:      cfg,
		startTime:   time.Now(),
		trainCtx:    trainCtx,
		trainCancel: trainCancel,
	}
}

// Close cancels any training run started through the API.
func (h *Handler) Close() {
	h.trainCancel()
}

// respondEngineError maps serving errors onto HTTP statuses.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var filterErr *recommend.FilterError
	switch {
	case errors.Is(err, recommend.ErrNotReady):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeModelNotReady, "Recommendation model is not ready yet", nil)
	case errors.As(err, &filterErr):
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, filterErr.Error(), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeRequestCanceled, "Request canceled or timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to serve request", err)
	}
}
