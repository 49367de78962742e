// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package cache provides the API result cache.
//
// Two backends implement ResultCache:
//
//   - MemoryCache: a bounded in-process TTL map (default)
//   - RedisCache: a shared cache backed by Redis, for multiple replicas
//
// Values are opaque byte slices, normally the encoded JSON response body.
// Callers build keys with Key, which embeds the model version so a newly
// published snapshot never serves results computed by its predecessor.
//
// Backend failures are never surfaced to callers. A Redis error counts as
// a miss and is recorded in the cache_errors_total metric.
package cache
