// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopwise/internal/cache"
	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
)

// ProductList is the data payload of every product-returning endpoint.
type ProductList struct {
	Products []catalog.Record `json:"products"`
	Count    int              `json:"count"`
}

// servedResult is a serialized engine result, as stored in the cache.
type servedResult struct {
	Products     []catalog.Record `json:"products"`
	Stage        string           `json:"stage,omitempty"`
	Fallback     string           `json:"fallback,omitempty"`
	ModelVersion int              `json:"model_version"`
	cached       bool
}

//nolint:gocritic // hugeParam: Result is converted once per request
func newServedResult(res recommend.Result) servedResult {
	return servedResult{
		Products:     catalog.ToRecords(res.Products),
		Stage:        string(res.Stage),
		Fallback:     string(res.Fallback),
		ModelVersion: res.ModelVersion,
	}
}

func (s *servedResult) list() ProductList {
	return ProductList{Products: s.Products, Count: len(s.Products)}
}

func (s *servedResult) metadata() Metadata {
	return Metadata{
		ModelVersion: s.ModelVersion,
		Stage:        s.Stage,
		Fallback:     s.Fallback,
		Cached:       s.cached,
	}
}

// cachedResult returns the cached result for (operation, params) under the
// currently published model version, computing and storing it on a miss.
// Results are stored under the version that actually produced them.
func (h *Handler) cachedResult(ctx context.Context, operation string, params interface{}, compute func() (recommend.Result, error)) (servedResult, error) {
	version := h.engine.Status().ModelVersion
	if data, ok := h.cache.Get(ctx, cache.Key(operation, version, params)); ok {
		var out servedResult
		if err := json.Unmarshal(data, &out); err == nil {
			out.cached = true
			return out, nil
		}
		logging.Ctx(ctx).Warn().Str("operation", operation).Msg("discarding undecodable cache entry")
	}

	res, err := compute()
	if err != nil {
		return servedResult{}, err
	}
	out := newServedResult(res)

	if data, err := json.Marshal(&out); err == nil {
		h.cache.Set(ctx, cache.Key(operation, res.ModelVersion, params), data)
	}
	return out, nil
}
