// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
)

func TestInteractionConsumer_Handle(t *testing.T) {
	l := openTestLog(t)
	c := NewInteractionConsumer(l, zerolog.Nop())

	valid := NewInteractionEvent("u1", "p1", "view", 1)
	data, err := SerializeEvent(valid)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		payload []byte
	}{
		{"valid", data},
		{"duplicate", data},
		{"malformed", []byte("{")},
		{"invalid", []byte(`{"event_id":"x","user_id":"","product_id":"p","weight":1}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := message.NewMessage("m-"+tt.name, tt.payload)
			if err := c.Handle(msg); err != nil {
				t.Errorf("Handle() error = %v, want nil (ack)", err)
			}
		})
	}

	want := ConsumerStats{Stored: 1, Duplicates: 1, Rejected: 2}
	if got := c.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestInteractionConsumer_StoreFailureRetries(t *testing.T) {
	l, err := OpenInteractionLog("", false)
	if err != nil {
		t.Fatal(err)
	}
	_ = l.Close()

	c := NewInteractionConsumer(l, zerolog.Nop())
	data, err := SerializeEvent(NewInteractionEvent("u1", "p1", "view", 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Handle(message.NewMessage("m", data)); !errors.Is(err, ErrLogClosed) {
		t.Errorf("Handle() error = %v, want ErrLogClosed so the router retries", err)
	}
}

func TestPipeline_MemoryBus(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Router.RetryMaxRetries = 0
	cfg.Router.PoisonQueueTopic = ""

	bus, err := NewBus(cfg, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	defer func() { _ = bus.Close() }()

	l := openTestLog(t)
	consumer := NewInteractionConsumer(l, zerolog.Nop())

	router, err := NewRouter(&cfg.Router, nil, nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	consumer.Register(router, cfg.Topic, bus.Subscriber)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- router.Run(ctx) }()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}
	if !router.IsRunning() {
		t.Error("IsRunning() = false after start")
	}

	pub := NewPublisher(bus.Publisher, cfg.Topic, NewCircuitBreaker(cfg.CircuitBreaker))
	for _, p := range []string{"p1", "p2", "p3"} {
		if err := pub.PublishInteraction(ctx, NewInteractionEvent("u1", p, "view", 0)); err != nil {
			t.Fatalf("PublishInteraction() error = %v", err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		n, err := l.Count()
		if err != nil {
			t.Fatal(err)
		}
		if n == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("log holds %d interactions, want 3", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := pub.Close(); err != nil {
		t.Fatal(err)
	}
	if err := pub.PublishInteraction(ctx, NewInteractionEvent("u1", "p4", "view", 0)); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("PublishInteraction() after Close error = %v", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(35 * time.Second):
		t.Fatal("router did not stop")
	}
}

func TestPublisher_RejectsInvalidEvent(t *testing.T) {
	bus, err := NewBus(DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = bus.Close() }()

	pub := NewPublisher(bus.Publisher, DefaultTopic, nil)
	if err := pub.PublishInteraction(context.Background(), &InteractionEvent{EventID: "x"}); err == nil {
		t.Error("PublishInteraction() should reject an invalid event")
	}
}
