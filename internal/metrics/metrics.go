// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Recommendation and search outcomes
// - Model training runs
// - Query-intent parsing and its circuit breaker
// - Result cache efficiency
// - Interaction ingestion

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of served recommendation and search requests",
		},
		// operation: "user", "similar", "search"
		// outcome: search stage, fallback name, or "personalized"/"similar"
		[]string{"operation", "outcome"},
	)

	RecommendResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of products returned per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 180, 600, 1800},
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"result"}, // "success", "failure", "skipped"
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_training_last_success_timestamp",
			Help: "Unix timestamp of the last successful training run",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_version",
			Help: "Version of the currently published model set",
		},
	)

	ModelSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_model_size",
			Help: "Entity counts of the currently published model set",
		},
		[]string{"entity"}, // "products", "users", "interactions", "vocabulary"
	)

	// Query-Intent Parser Metrics
	IntentParseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_parse_total",
			Help: "Total number of query-intent parses by outcome",
		},
		// outcome: "parsed", "no_api_key", "empty_query", "fallback", "rate_limited"
		[]string{"outcome"},
	)

	IntentParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intent_parse_duration_seconds",
			Help:    "Latency of upstream query-intent parser calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "memory", "redis"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of cache backend errors",
		},
		[]string{"cache_type"},
	)

	// Interaction Ingestion Metrics
	InteractionsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interactions_published_total",
			Help: "Total number of interaction events published",
		},
	)

	InteractionsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interactions_stored_total",
			Help: "Total number of interaction events written to the interaction log",
		},
	)

	InteractionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_rejected_total",
			Help: "Total number of interaction events dropped",
		},
		[]string{"reason"}, // "decode", "invalid", "store"
	)

	// Catalog Ingestion Metrics
	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of catalog and interaction file loads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"}, // "products", "interactions"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one served request and its result size.
func RecordRecommendation(operation, outcome string, size int) {
	RecommendRequests.WithLabelValues(operation, outcome).Inc()
	RecommendResultSize.WithLabelValues(operation).Observe(float64(size))
}

// RecordTraining records the outcome of a training run.
func RecordTraining(duration time.Duration, err error) {
	if err != nil {
		TrainingRuns.WithLabelValues("failure").Inc()
		return
	}
	TrainingDuration.Observe(duration.Seconds())
	TrainingRuns.WithLabelValues("success").Inc()
	TrainingLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordTrainingSkipped records a trigger that found training already running.
func RecordTrainingSkipped() {
	TrainingRuns.WithLabelValues("skipped").Inc()
}

// SetModelInfo publishes the dimensions of the served model set.
func SetModelInfo(version, products, users, interactions, vocabulary int) {
	ModelVersion.Set(float64(version))
	ModelSize.WithLabelValues("products").Set(float64(products))
	ModelSize.WithLabelValues("users").Set(float64(users))
	ModelSize.WithLabelValues("interactions").Set(float64(interactions))
	ModelSize.WithLabelValues("vocabulary").Set(float64(vocabulary))
}

// RecordIntentParse records a parser outcome. Zero durations are not observed
// since they mark answers produced without an upstream call.
func RecordIntentParse(outcome string, duration time.Duration) {
	IntentParseTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		IntentParseDuration.Observe(duration.Seconds())
	}
}

// RecordCircuitBreakerTransition records a breaker state change.
// States map to 0=closed, 1=half-open, 2=open.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	switch to {
	case "closed":
		CircuitBreakerState.WithLabelValues(name).Set(0)
	case "half-open":
		CircuitBreakerState.WithLabelValues(name).Set(1)
	case "open":
		CircuitBreakerState.WithLabelValues(name).Set(2)
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordCacheError records a cache backend failure.
func RecordCacheError(cacheType string) {
	CacheErrors.WithLabelValues(cacheType).Inc()
}

// RecordInteractionPublished records a published interaction event.
func RecordInteractionPublished() {
	InteractionsPublished.Inc()
}

// RecordInteractionStored records an interaction written to the log.
func RecordInteractionStored() {
	InteractionsStored.Inc()
}

// RecordInteractionRejected records a dropped interaction event.
func RecordInteractionRejected(reason string) {
	InteractionsRejected.WithLabelValues(reason).Inc()
}

// RecordCatalogLoad records how long a catalog source took to load.
func RecordCatalogLoad(source string, duration time.Duration) {
	CatalogLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}
