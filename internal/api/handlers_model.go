// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/recommend"
)

// ModelStatus handles GET /api/v1/model/status.
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	respondSuccess(w, r, status, Metadata{ModelVersion: status.ModelVersion})
}

// TriggerTraining handles POST /api/v1/model/train.
// Training runs in the background; the response is 202 Accepted, or 409
// when a run is already in progress.
func (h *Handler) TriggerTraining(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	if status.IsTraining {
		respondError(w, r, http.StatusConflict, ErrCodeTrainingInProgress, "Training is already in progress", nil)
		return
	}

	logger := logging.Ctx(r.Context())
	go func() {
		ctx, cancel := context.WithTimeout(h.trainCtx, h.config.TrainingTimeout)
		defer cancel()

		err := h.engine.Train(ctx)
		switch {
		case errors.Is(err, recommend.ErrTrainingInProgress):
			logger.Debug().Msg("training already in progress")
		case err != nil:
			logger.Error().Err(err).Msg("training triggered through the API failed")
		default:
			logger.Info().Msg("training triggered through the API completed")
		}
	}()

	respondJSON(w, r, http.StatusAccepted, &APIResponse{
		Status:   "success",
		Data:     map[string]string{"message": "Training started"},
		Metadata: Metadata{ModelVersion: status.ModelVersion},
	})
}
