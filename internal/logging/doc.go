// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package logging provides the zerolog-based structured logger used across
// Shopwise.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("products", path).Msg("catalog loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("cache lookup failed")
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json or console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Request Context
//
// The request id middleware stores request and correlation ids in the
// request context. Ctx returns a logger carrying both fields, so handler
// logs can be joined with the X-Request-ID response header.
//
// # slog Bridge
//
// Suture (through sutureslog) and Watermill (through NewSlogLogger) take an
// *slog.Logger. NewSlogLogger returns one that writes through zerolog so
// every component shares one output and level.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
