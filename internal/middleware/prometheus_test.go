// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/metrics"
)

func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/recommend/user/{userID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/api/v1/model/train", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	return r
}

func TestPrometheusMetrics_RoutePattern(t *testing.T) {
	r := newTestRouter()
	pattern := "/api/v1/recommend/user/{userID}"
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, pattern, "200"))

	for _, user := range []string{"alice", "bob", "carol"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommend/user/"+user, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, pattern, "200"))
	if after-before != 3 {
		t.Errorf("requests recorded under pattern = %v, want 3", after-before)
	}
}

func TestPrometheusMetrics_StatusAndUnmatched(t *testing.T) {
	r := newTestRouter()

	conflicts := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/model/train", "409"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/model/train", nil))
	if d := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/model/train", "409")) - conflicts; d != 1 {
		t.Errorf("409 delta = %v, want 1", d)
	}

	h := PrometheusMetrics(http.NotFoundHandler())
	unmatched := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if d := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")) - unmatched; d != 1 {
		t.Errorf("unmatched delta = %v, want 1", d)
	}

	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v after completion, want 0", got)
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	slowHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusAccepted)
	})
	h := RequestID(AccessLog(5 * time.Millisecond)(slowHandler))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/interactions", nil))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"status":202`, `"path":"/api/v1/interactions"`, `"request_id"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s: %s", want, out)
		}
	}
}

func TestStatusRecorder_FirstStatusWins(t *testing.T) {
	rec := newStatusRecorder(httptest.NewRecorder())
	_, _ = rec.Write([]byte("ok"))
	rec.WriteHeader(http.StatusTeapot)
	if rec.status != http.StatusOK {
		t.Errorf("status = %d, want implicit 200", rec.status)
	}
}
