// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopwise/internal/eventprocessor"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/validation"
)

// maxInteractionBody caps the POST /interactions request body.
const maxInteractionBody = 16 << 10

// RecordInteraction handles POST /api/v1/interactions.
//
// The interaction is validated and published on the event bus; it is
// persisted by the interaction consumer and takes effect after the next
// training run.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Interaction ingestion is disabled", nil)
		return
	}

	var req InteractionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInteractionBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "Request body must be a JSON interaction object", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	event := eventprocessor.NewInteractionEvent(req.UserID, req.ProductID, req.EventType, req.Weight)
	if err := event.Validate(); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	if err := h.publisher.PublishInteraction(r.Context(), event); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodePublishFailed, "Failed to record interaction", err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Msg("interaction published")

	respondJSON(w, r, http.StatusAccepted, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"event_id":   event.EventID,
			"event_type": event.EventType,
			"weight":     event.Weight,
		},
	})
}
