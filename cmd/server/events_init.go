// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package main

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shopwise/internal/config"
	"github.com/tomtom215/shopwise/internal/eventprocessor"
	"github.com/tomtom215/shopwise/internal/logging"
	"github.com/tomtom215/shopwise/internal/supervisor/services"
)

// EventComponents holds the interaction ingestion pipeline.
type EventComponents struct {
	Bus       *eventprocessor.Bus
	Log       *eventprocessor.InteractionLog
	Publisher *eventprocessor.Publisher
	Consumer  *eventprocessor.InteractionConsumer

	config   eventprocessor.Config
	wmLogger watermill.LoggerAdapter
	logger   zerolog.Logger
}

// initEvents opens the interaction log and the message bus. It returns
// nil, nil when ingestion is disabled.
func initEvents(cfg *config.Config) (*EventComponents, error) {
	logger := logging.WithComponent("events")
	if !cfg.Events.Enabled {
		logger.Info().Msg("Interaction ingestion disabled (EVENTS_ENABLED=false)")
		return nil, nil
	}

	ecfg := cfg.EventsConfig()
	if err := ecfg.Validate(); err != nil {
		return nil, err
	}

	wmLogger := watermill.NewSlogLogger(logging.NewSlogLogger())

	interactionLog, err := eventprocessor.OpenInteractionLog(ecfg.StorePath, ecfg.SyncWrites)
	if err != nil {
		return nil, fmt.Errorf("open interaction log: %w", err)
	}

	bus, err := eventprocessor.NewBus(ecfg, wmLogger)
	if err != nil {
		_ = interactionLog.Close()
		return nil, fmt.Errorf("create message bus: %w", err)
	}

	count, err := interactionLog.Count()
	if err != nil {
		logger.Warn().Err(err).Msg("could not count logged interactions")
	}
	logger.Info().
		Str("backend", bus.Backend()).
		Str("store_path", ecfg.StorePath).
		Int("logged_interactions", count).
		Msg("Interaction ingestion initialized")

	return &EventComponents{
		Bus:       bus,
		Log:       interactionLog,
		Publisher: eventprocessor.NewPublisher(bus.Publisher, ecfg.Topic, eventprocessor.NewCircuitBreaker(ecfg.CircuitBreaker)),
		Consumer:  eventprocessor.NewInteractionConsumer(interactionLog, logger),
		config:    ecfg,
		wmLogger:  wmLogger,
		logger:    logger,
	}, nil
}

// RouterFactory builds a fresh router per supervised run; a closed
// Watermill router cannot be started again.
func (c *EventComponents) RouterFactory() services.RouterFactory {
	return func() (services.RouterRunner, error) {
		router, err := eventprocessor.NewRouter(&c.config.Router, c.Bus.Publisher, c.wmLogger)
		if err != nil {
			return nil, err
		}
		c.Consumer.Register(router, c.config.Topic, c.Bus.Subscriber)
		return router, nil
	}
}

// Close shuts the publisher, the bus and the log down in that order.
// It is safe on a nil receiver.
func (c *EventComponents) Close() {
	if c == nil {
		return
	}
	if err := c.Publisher.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Error closing interaction publisher")
	}
	if err := c.Bus.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Error closing message bus")
	}
	stats := c.Consumer.Stats()
	if err := c.Log.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Error closing interaction log")
	}
	c.logger.Info().
		Int64("stored", stats.Stored).
		Int64("duplicates", stats.Duplicates).
		Int64("rejected", stats.Rejected).
		Msg("Interaction ingestion stopped")
}
