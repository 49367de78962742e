// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
	"github.com/tomtom215/shopwise/internal/validation"
)

// RecommendForUser handles GET /api/v1/recommend/user/{userID}.
// Unknown users get the cold-start sample with fallback "cold_start".
func (h *Handler) RecommendForUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := parseNParam(r, h.config.MaxN)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	req := UserRecommendRequest{UserID: chi.URLParam(r, "userID"), N: n}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	res, err := h.engine.RecommendForUser(ctx, req.UserID, req.N)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	out := newServedResult(res)
	logging.Ctx(r.Context()).Debug().
		Str("operation", "recommend_user").
		Str("user_id", sanitizeLogValue(req.UserID)).
		Int("n", req.N).
		Int("results", len(out.Products)).
		Str("fallback", out.Fallback).
		Msg("served recommendations")

	meta := out.metadata()
	meta.QueryTimeMS = time.Since(start).Milliseconds()
	respondSuccess(w, r, out.list(), meta)
}

// SimilarProducts handles GET /api/v1/recommend/product/{productID}.
// Unknown products answer an empty list with fallback "unknown_product".
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := parseNParam(r, h.config.MaxN)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	req := SimilarProductsRequest{ProductID: chi.URLParam(r, "productID"), N: n}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	out, err := h.cachedResult(ctx, "similar", req, func() (recommend.Result, error) {
		return h.engine.SimilarProducts(ctx, req.ProductID, req.N)
	})
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("operation", "similar_products").
		Str("product_id", sanitizeLogValue(req.ProductID)).
		Int("n", req.N).
		Int("results", len(out.Products)).
		Bool("cached", out.cached).
		Msg("served similar products")

	meta := out.metadata()
	meta.QueryTimeMS = time.Since(start).Milliseconds()
	respondSuccess(w, r, out.list(), meta)
}
