// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package middleware provides the HTTP middleware shared by the API router.
//
// All middleware uses the func(http.Handler) http.Handler shape so it can be
// mounted with chi's Router.Use:
//
//   - RequestID: accepts or generates X-Request-ID and stores it in the
//     request context for logging and response metadata
//   - PrometheusMetrics: records request count, latency and in-flight
//     requests labelled by chi route pattern
//   - AccessLog: logs each request and warns on slow ones
//
// Recommended order:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.AccessLog(time.Second))
//	r.Use(middleware.PrometheusMetrics)
package middleware
