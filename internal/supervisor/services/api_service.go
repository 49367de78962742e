// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopwise/internal/recommend"
)

// HTTPServer is the part of *http.Server the API service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// ModelReporter reports the model behind the API.
// Satisfied by *recommend.Engine.
type ModelReporter interface {
	Status() recommend.Status
}

// APIServiceConfig holds configuration for the API service.
type APIServiceConfig struct {
	// Addr is the listen address, used in log lines only.
	Addr string

	// ShutdownTimeout bounds connection draining. Default: 10s
	ShutdownTimeout time.Duration
}

// APIService runs the recommendation HTTP API under supervision.
//
// Start and stop are logged with the model version being served. Starting
// before any model is published is allowed; the handlers answer 503 until
// the trainer publishes one, and the start line is logged at warn level.
type APIService struct {
	server HTTPServer
	models ModelReporter
	config APIServiceConfig
	logger zerolog.Logger
	name   string
}

// NewAPIService creates the API service. models may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAPIService(server HTTPServer, models ModelReporter, cfg APIServiceConfig, logger zerolog.Logger) *APIService {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &APIService{
		server: server,
		models: models,
		config: cfg,
		logger: logger.With().Str("service", "api").Str("addr", cfg.Addr).Logger(),
		name:   "api-server",
	}
}

// Serve implements suture.Service. A listener failure is returned so the
// supervisor restarts the server; cancellation drains connections first.
func (s *APIService) Serve(ctx context.Context) error {
	s.logModel("API server listening")

	done := make(chan error, 1)
	go func() {
		done <- s.server.ListenAndServe()
	}()

	select {
	case err := <-done:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn().Msg("API server closed outside the supervisor")
			return nil
		}
		return fmt.Errorf("api server %s: %w", s.config.Addr, err)
	case <-ctx.Done():
	}

	// ctx is already canceled; draining gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	<-done
	if err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	s.logModel("API server stopped")
	return ctx.Err()
}

func (s *APIService) logModel(msg string) {
	if s.models == nil {
		s.logger.Info().Msg(msg)
		return
	}
	st := s.models.Status()
	ev := s.logger.Info()
	if !st.Ready {
		ev = s.logger.Warn()
	}
	ev.Bool("model_ready", st.Ready).
		Int("model_version", st.ModelVersion).
		Bool("training", st.IsTraining).
		Msg(msg)
}

// String implements fmt.Stringer for suture logs.
func (s *APIService) String() string {
	return s.name
}
