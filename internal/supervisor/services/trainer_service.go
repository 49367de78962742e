// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopwise/internal/recommend"
)

// ModelTrainer is satisfied by *recommend.Engine.
type ModelTrainer interface {
	Train(ctx context.Context) error
}

// TrainerServiceConfig holds configuration for the trainer service.
type TrainerServiceConfig struct {
	// Interval is how often to retrain. Zero disables periodic retraining
	// and the service idles until shutdown.
	Interval time.Duration

	// Timeout bounds a single training run. Default: 30m
	Timeout time.Duration
}

// TrainerService runs periodic model retraining under supervision.
// The initial model is loaded or trained by the caller before the tree
// starts, so the first run happens one Interval after startup.
type TrainerService struct {
	trainer ModelTrainer
	config  TrainerServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainerService creates a new trainer service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainerService(trainer ModelTrainer, cfg TrainerServiceConfig, logger zerolog.Logger) *TrainerService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &TrainerService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "trainer").Logger(),
		name:    "trainer-service",
	}
}

// Serve implements suture.Service.
func (s *TrainerService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Info().Msg("periodic retraining disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.config.Interval).Msg("trainer service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trainer service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

// train runs one training cycle. A run already in progress (for example one
// started through the API) is skipped rather than reported as a failure.
func (s *TrainerService) train(ctx context.Context) error {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	err := s.trainer.Train(trainCtx)
	if errors.Is(err, recommend.ErrTrainingInProgress) {
		s.logger.Debug().Msg("training already in progress, skipping scheduled run")
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info().Dur("duration", time.Since(start)).Msg("scheduled training complete")
	return nil
}

// String returns the service name for logging.
func (s *TrainerService) String() string {
	return s.name
}
