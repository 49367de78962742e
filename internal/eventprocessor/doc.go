// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package eventprocessor ingests user-product interactions through Watermill
// and persists them in a BadgerDB interaction log read by the trainer.
//
// # Flow
//
//	POST /api/v1/interactions
//	        │
//	        ▼
//	  Publisher (circuit breaker) ──► Bus (GoChannel or NATS JetStream)
//	                                        │
//	                                        ▼
//	                        Router (Recoverer, PoisonQueue, Retry)
//	                                        │
//	                                        ▼
//	                              InteractionConsumer
//	                                        │
//	                                        ▼
//	                              InteractionLog (Badger)
//	                                        │
//	                                        ▼
//	                        DataProvider.LoadInteractions at next retrain
//
// The memory backend keeps everything in one process. The NATS backend uses
// JetStream with Nats-Msg-Id tracking so republished events are deduplicated
// by the broker; the log additionally ignores event ids it has already stored.
//
// Interactions never update a published model in place. They are picked up
// by the next full training run.
package eventprocessor
