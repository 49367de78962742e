// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package testinfra provides test infrastructure for Shopwise.
//
// Container helpers use testcontainers-go and are built only with the
// integration tag:
//
//	go test -tags integration ./internal/cache/... ./internal/eventprocessor/...
//
// NewRedisContainer backs the Redis result cache tests and
// NewNATSContainer backs the JetStream ingestion tests. Both skip cleanly
// through SkipIfNoDocker when no Docker daemon is reachable.
//
// MockCompletionServer is always available. It speaks the OpenAI chat
// completions protocol so the intent parser can be tested through the real
// HTTP client:
//
//	srv := testinfra.NewMockCompletionServer(t, `{"intent":"search","search_term":"mouse"}`)
//	cfg := intent.DefaultConfig()
//	cfg.APIKey = "test"
//	cfg.BaseURL = srv.URL()
package testinfra
