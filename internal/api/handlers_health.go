// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"net/http"
	"time"
)

// HealthLive handles GET /api/v1/health/live.
// Returns 200 while the process is alive, regardless of model state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, Metadata{})
}

// HealthReady handles GET /api/v1/health/ready.
// Returns 200 once a model has been published and 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.engine.Ready()
	status := h.engine.Status()

	data := map[string]interface{}{
		"ready_to_serve": ready,
		"model_version":  status.ModelVersion,
		"is_training":    status.IsTraining,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if h.parser != nil {
		data["intent_parser_available"] = h.parser.Available()
		data["intent_breaker_state"] = h.parser.BreakerState()
	}

	code, label := http.StatusOK, "ready"
	if !ready {
		code, label = http.StatusServiceUnavailable, "not_ready"
	}
	respondJSON(w, r, code, &APIResponse{
		Status:   label,
		Data:     data,
		Metadata: Metadata{ModelVersion: status.ModelVersion},
	})
}
