// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
)

// Bus is a connected publisher/subscriber pair for one backend.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	backend    string
}

// NewBus connects the message bus selected by cfg.Backend.
// The memory backend shares one GoChannel between both sides, so events only
// reach consumers in the same process.
//
//nolint:gocritic // hugeParam: Config is read once at startup
func NewBus(cfg Config, logger watermill.LoggerAdapter) (*Bus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	if cfg.Backend == BackendMemory {
		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 1024,
		}, logger)
		return &Bus{Publisher: ch, Subscriber: ch, backend: BackendMemory}, nil
	}

	pub, err := newNATSPublisher(cfg.NATSURL, cfg.Publisher, logger)
	if err != nil {
		return nil, err
	}
	sub, err := newNATSSubscriber(cfg.NATSURL, &cfg.Subscriber, logger)
	if err != nil {
		_ = pub.Close() //nolint:errcheck // already failing
		return nil, err
	}
	return &Bus{Publisher: pub, Subscriber: sub, backend: BackendNATS}, nil
}

// Backend returns the backend name.
func (b *Bus) Backend() string {
	return b.backend
}

// Close shuts down both sides of the bus.
func (b *Bus) Close() error {
	if b.backend == BackendMemory {
		return b.Publisher.Close()
	}
	return errors.Join(b.Publisher.Close(), b.Subscriber.Close())
}

func natsConnOptions(maxReconnects int, reconnectWait time.Duration, logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(maxReconnects),
		natsgo.ReconnectWait(reconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}
}

// newNATSPublisher creates a JetStream publisher with message id tracking
// so broker-side deduplication drops redelivered publishes.
func newNATSPublisher(url string, cfg PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	opts := natsConnOptions(cfg.MaxReconnects, cfg.ReconnectWait, logger)
	opts = append(opts, natsgo.ReconnectBufSize(cfg.ReconnectBuffer))

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: opts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: true,
			TrackMsgId:    cfg.EnableTrackMsgID,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return pub, nil
}

// newNATSSubscriber creates a durable JetStream subscriber.
func newNATSSubscriber(url string, cfg *SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	subOpts := []natsgo.SubOpt{
		natsgo.MaxDeliver(cfg.MaxDeliver),
		natsgo.MaxAckPending(cfg.MaxAckPending),
		natsgo.AckWait(cfg.AckWaitTimeout),
		natsgo.DeliverAll(),
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              url,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: cfg.SubscribersCount,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      natsConnOptions(cfg.MaxReconnects, cfg.ReconnectWait, logger),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision:    true,
			AckAsync:         false,
			SubscribeOptions: subOpts,
			DurablePrefix:    cfg.DurableName,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	return sub, nil
}
