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

	"github.com/thejerf/suture/v4"
)

type mockRouter struct {
	runErr error
	closed atomic.Int32
}

func (m *mockRouter) Run(ctx context.Context) error {
	if m.runErr != nil {
		return m.runErr
	}
	<-ctx.Done()
	return nil
}

func (m *mockRouter) Close() error {
	m.closed.Add(1)
	return nil
}

func TestRouterService_Interface(t *testing.T) {
	var _ suture.Service = (*RouterService)(nil)
}

func TestRouterService_Serve(t *testing.T) {
	t.Run("stops on context cancellation", func(t *testing.T) {
		router := &mockRouter{}
		svc := NewRouterService(func() (RouterRunner, error) { return router, nil })

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
		if router.closed.Load() != 1 {
			t.Errorf("expected router to be closed once, got %d", router.closed.Load())
		}
	})

	t.Run("build failure is returned", func(t *testing.T) {
		buildErr := errors.New("nats unreachable")
		svc := NewRouterService(func() (RouterRunner, error) { return nil, buildErr })

		if err := svc.Serve(context.Background()); !errors.Is(err, buildErr) {
			t.Errorf("expected build error, got %v", err)
		}
	})

	t.Run("run failure is returned", func(t *testing.T) {
		runErr := errors.New("subscribe failed")
		svc := NewRouterService(func() (RouterRunner, error) { return &mockRouter{runErr: runErr}, nil })

		if err := svc.Serve(context.Background()); !errors.Is(err, runErr) {
			t.Errorf("expected run error, got %v", err)
		}
	})

	t.Run("unexpected clean stop is an error", func(t *testing.T) {
		svc := NewRouterService(func() (RouterRunner, error) {
			return &stoppingRouter{}, nil
		})
		if err := svc.Serve(context.Background()); err == nil {
			t.Error("expected error when router stops without cancellation")
		}
	})
}

func TestRouterService_RebuildsOnRestart(t *testing.T) {
	var builds atomic.Int32
	svc := NewRouterService(func() (RouterRunner, error) {
		if builds.Add(1) == 1 {
			return &mockRouter{runErr: errors.New("first run fails")}, nil
		}
		return &mockRouter{}, nil
	})

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 5,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	errCh := sup.ServeBackground(ctx)
	<-errCh

	if builds.Load() < 2 {
		t.Errorf("expected router to be rebuilt after failure, got %d builds", builds.Load())
	}
}

type stoppingRouter struct{}

func (stoppingRouter) Run(context.Context) error { return nil }
func (stoppingRouter) Close() error              { return nil }
