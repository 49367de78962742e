// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package services

import (
	"context"
	"fmt"
)

// RouterRunner matches the lifecycle of *eventprocessor.Router.
type RouterRunner interface {
	Run(ctx context.Context) error
	Close() error
}

// RouterFactory builds a fresh router with its handlers registered.
// A Watermill router cannot be restarted once closed, so every Serve call
// asks the factory for a new one.
type RouterFactory func() (RouterRunner, error)

// RouterService wraps the interaction event router as a supervised service.
//
// Example usage:
//
//	svc := services.NewRouterService(func() (services.RouterRunner, error) {
//	    r, err := eventprocessor.NewRouter(&cfg.Router, bus.Publisher, wmLogger)
//	    if err != nil {
//	        return nil, err
//	    }
//	    consumer.Register(r, cfg.Topic, bus.Subscriber)
//	    return r, nil
//	})
//	tree.AddIngestService(svc)
type RouterService struct {
	build RouterFactory
	name  string
}

// NewRouterService creates a new router service.
func NewRouterService(build RouterFactory) *RouterService {
	return &RouterService{build: build, name: "interaction-router"}
}

// Serve implements suture.Service.
//
// Run returns when ctx is canceled; any other return is reported as an
// error so suture restarts the service with a new router.
func (s *RouterService) Serve(ctx context.Context) error {
	router, err := s.build()
	if err != nil {
		return fmt.Errorf("build interaction router: %w", err)
	}

	runErr := router.Run(ctx)
	_ = router.Close()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if runErr != nil {
		return fmt.Errorf("interaction router stopped: %w", runErr)
	}
	return fmt.Errorf("interaction router stopped unexpectedly")
}

// String implements fmt.Stringer for logging.
func (s *RouterService) String() string {
	return s.name
}
