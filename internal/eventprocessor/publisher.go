// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/shopwise/internal/metrics"
)

// Publisher wraps a Watermill publisher with circuit breaker protection.
type Publisher struct {
	publisher      message.Publisher
	topic          string
	circuitBreaker *gobreaker.CircuitBreaker[interface{}]
	mu             sync.RWMutex
	closed         bool
}

// NewPublisher creates a publisher for topic. cb may be nil.
func NewPublisher(pub message.Publisher, topic string, cb *gobreaker.CircuitBreaker[interface{}]) *Publisher {
	return &Publisher{
		publisher:      pub,
		topic:          topic,
		circuitBreaker: cb,
	}
}

// Publish sends a message with circuit breaker protection.
// The message UUID is used as Nats-Msg-Id for deduplication if not already set.
func (p *Publisher) Publish(ctx context.Context, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}
	msg.SetContext(ctx)

	var err error
	if p.circuitBreaker != nil {
		_, err = ExecuteWithBreaker(p.circuitBreaker, func() (interface{}, error) {
			return nil, p.publisher.Publish(p.topic, msg)
		})
	} else {
		err = p.publisher.Publish(p.topic, msg)
	}

	if err == nil {
		metrics.RecordInteractionPublished()
	}
	return err
}

// PublishInteraction serializes and publishes an interaction event.
func (p *Publisher) PublishInteraction(ctx context.Context, event *InteractionEvent) error {
	data, err := SerializeEvent(event)
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("user_id", event.UserID)
	msg.Metadata.Set("event_type", event.EventType)

	return p.Publish(ctx, msg)
}

// Close marks the publisher closed. The underlying bus is owned by the caller.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
