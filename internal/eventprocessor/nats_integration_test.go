// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

//go:build integration

package eventprocessor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopwise/internal/testinfra"
)

func TestPipeline_NATSJetStream(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	natsC, err := testinfra.NewNATSContainer(ctx)
	if err != nil {
		t.Fatalf("NewNATSContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, context.Background(), natsC)

	cfg := DefaultConfig()
	cfg.Backend = BackendNATS
	cfg.NATSURL = natsC.URL
	cfg.Router.PoisonQueueTopic = ""

	bus, err := NewBus(cfg, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	defer func() { _ = bus.Close() }()
	if bus.Backend() != BackendNATS {
		t.Fatalf("Backend() = %q", bus.Backend())
	}

	l := openTestLog(t)
	consumer := NewInteractionConsumer(l, zerolog.Nop())
	router, err := NewRouter(&cfg.Router, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	consumer.Register(router, cfg.Topic, bus.Subscriber)

	go func() { _ = router.Run(ctx) }()
	select {
	case <-router.Running():
	case <-time.After(30 * time.Second):
		t.Fatal("router did not start")
	}

	pub := NewPublisher(bus.Publisher, cfg.Topic, NewCircuitBreaker(cfg.CircuitBreaker))
	event := NewInteractionEvent("u1", "p1", "purchase", 0)
	for i := 0; i < 2; i++ {
		// The second publish is a redelivery of the same event id.
		if err := pub.PublishInteraction(ctx, event); err != nil {
			t.Fatalf("PublishInteraction() error = %v", err)
		}
	}

	// The broker may drop the replay by message id; either way the log
	// must hold the interaction exactly once.
	deadline := time.Now().Add(30 * time.Second)
	for consumer.Stats().Stored < 1 {
		if time.Now().After(deadline) {
			t.Fatalf("consumer stats = %+v after 30s", consumer.Stats())
		}
		time.Sleep(50 * time.Millisecond)
	}
	time.Sleep(time.Second)
	if stats := consumer.Stats(); stats.Stored != 1 {
		t.Errorf("Stats() = %+v, want exactly one stored", stats)
	}

	got, err := l.Interactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ProductID != "p1" || got[0].Weight != event.Weight {
		t.Errorf("Interactions() = %+v", got)
	}
}
