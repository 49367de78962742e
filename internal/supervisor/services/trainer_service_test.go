// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/shopwise/internal/recommend"
)

type mockTrainer struct {
	calls atomic.Int32
	err   error
}

func (m *mockTrainer) Train(ctx context.Context) error {
	m.calls.Add(1)
	return m.err
}

func TestTrainerService_Interface(t *testing.T) {
	var _ suture.Service = (*TrainerService)(nil)
}

func TestNewTrainerService_DefaultTimeout(t *testing.T) {
	svc := NewTrainerService(&mockTrainer{}, TrainerServiceConfig{}, zerolog.Nop())
	if svc.config.Timeout != 30*time.Minute {
		t.Errorf("expected default timeout 30m, got %v", svc.config.Timeout)
	}
	if svc.String() != "trainer-service" {
		t.Errorf("expected 'trainer-service', got %q", svc.String())
	}
}

func TestTrainerService_Serve(t *testing.T) {
	t.Run("disabled interval idles until canceled", func(t *testing.T) {
		trainer := &mockTrainer{}
		svc := NewTrainerService(trainer, TrainerServiceConfig{}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
		if trainer.calls.Load() != 0 {
			t.Errorf("expected no training runs, got %d", trainer.calls.Load())
		}
	})

	t.Run("retrains on every tick", func(t *testing.T) {
		trainer := &mockTrainer{}
		svc := NewTrainerService(trainer, TrainerServiceConfig{Interval: 10 * time.Millisecond}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		_ = svc.Serve(ctx)
		if trainer.calls.Load() < 2 {
			t.Errorf("expected at least 2 training runs, got %d", trainer.calls.Load())
		}
	})

	t.Run("training failures do not stop the service", func(t *testing.T) {
		trainer := &mockTrainer{err: errors.New("catalog unavailable")}
		svc := NewTrainerService(trainer, TrainerServiceConfig{Interval: 10 * time.Millisecond}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
		if trainer.calls.Load() < 2 {
			t.Errorf("expected retries after failure, got %d runs", trainer.calls.Load())
		}
	})
}

func TestTrainerService_TrainSkipsBusy(t *testing.T) {
	svc := NewTrainerService(&mockTrainer{err: recommend.ErrTrainingInProgress}, TrainerServiceConfig{}, zerolog.Nop())
	if err := svc.train(context.Background()); err != nil {
		t.Errorf("train() = %v, want nil when training is already in progress", err)
	}

	failing := NewTrainerService(&mockTrainer{err: errors.New("boom")}, TrainerServiceConfig{}, zerolog.Nop())
	if err := failing.train(context.Background()); err == nil {
		t.Error("train() should return other errors")
	}
}
