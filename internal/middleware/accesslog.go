// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/shopwise/internal/logging"
)

// AccessLog logs every request at debug level and requests slower than
// slow at warn level. A zero slow disables the warning.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)
			took := time.Since(start)

			event := logging.Ctx(r.Context()).Debug()
			if slow > 0 && took > slow {
				event = logging.Ctx(r.Context()).Warn().Dur("threshold", slow)
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", rec.status).
				Int64("duration_ms", took.Milliseconds()).
				Msg("http request")
		})
	}
}
