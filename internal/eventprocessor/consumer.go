// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import (
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shopwise/internal/metrics"
)

// InteractionConsumer writes interaction events from the bus into the
// interaction log. Recorded interactions only influence recommendations
// after the next full retrain.
type InteractionConsumer struct {
	log    *InteractionLog
	logger zerolog.Logger

	stored     atomic.Int64
	duplicates atomic.Int64
	rejected   atomic.Int64
}

// ConsumerStats holds consumer counters.
type ConsumerStats struct {
	Stored     int64 `json:"stored"`
	Duplicates int64 `json:"duplicates"`
	Rejected   int64 `json:"rejected"`
}

// NewInteractionConsumer creates a consumer writing into log.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewInteractionConsumer(log *InteractionLog, logger zerolog.Logger) *InteractionConsumer {
	return &InteractionConsumer{
		log:    log,
		logger: logger.With().Str("component", "interaction-consumer").Logger(),
	}
}

// Handle processes one message. Malformed or invalid events are dropped
// (acked) since redelivery cannot fix them; storage failures are returned
// so the router retries.
func (c *InteractionConsumer) Handle(msg *message.Message) error {
	event, err := DeserializeEvent(msg.Payload)
	if err != nil {
		c.reject("decode", msg, err)
		return nil
	}
	if err := event.Validate(); err != nil {
		c.reject("invalid", msg, err)
		return nil
	}

	stored, err := c.log.Append(msg.Context(), event)
	if err != nil {
		metrics.RecordInteractionRejected("store")
		return fmt.Errorf("store interaction %s: %w", event.EventID, err)
	}
	if !stored {
		c.duplicates.Add(1)
		return nil
	}

	c.stored.Add(1)
	metrics.RecordInteractionStored()
	c.logger.Debug().
		Str("event_id", event.EventID).
		Str("user_id", event.UserID).
		Str("product_id", event.ProductID).
		Msg("interaction stored")
	return nil
}

func (c *InteractionConsumer) reject(reason string, msg *message.Message, err error) {
	c.rejected.Add(1)
	metrics.RecordInteractionRejected(reason)
	c.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Str("reason", reason).Msg("dropping interaction event")
}

// Stats returns the consumer counters.
func (c *InteractionConsumer) Stats() ConsumerStats {
	return ConsumerStats{
		Stored:     c.stored.Load(),
		Duplicates: c.duplicates.Load(),
		Rejected:   c.rejected.Load(),
	}
}

// Register adds the consumer to router under the given topic.
func (c *InteractionConsumer) Register(r *Router, topic string, sub message.Subscriber) {
	r.AddConsumerHandler("interaction-log", topic, sub, c.Handle)
}
