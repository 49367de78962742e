// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limiter rejections (counter)

Recommendation Metrics:
  - recommend_requests_total: Served requests by operation and outcome
    (search stage such as keyword or semantic, or a fallback such as cold_start)
  - recommend_result_size: Products returned per request (histogram)
  - recommend_training_duration_seconds, recommend_training_runs_total
  - recommend_model_version, recommend_model_size

Intent Parser Metrics:
  - intent_parse_total: Parses by outcome (parsed, no_api_key, empty_query,
    fallback, rate_limited)
  - intent_parse_duration_seconds: Upstream call latency
  - circuit_breaker_state, circuit_breaker_state_transitions_total

Cache and Ingestion Metrics:
  - cache_hits_total, cache_misses_total, cache_errors_total
  - interactions_published_total, interactions_stored_total,
    interactions_rejected_total
  - catalog_load_duration_seconds

# Usage

	metrics.RecordRecommendation("search", string(res.Stage), len(res.Products))
	metrics.RecordTraining(time.Since(start), err)
*/
package metrics
