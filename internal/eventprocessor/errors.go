// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPublisherClosed is returned when publishing after Close.
	ErrPublisherClosed = errors.New("publisher is closed")

	// ErrLogClosed is returned when using the interaction log after Close.
	ErrLogClosed = errors.New("interaction log is closed")
)
