// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

// Package validation wraps go-playground/validator for request and event
// structs.
//
// Field names in messages are the JSON names clients send:
//
//	type interactionRequest struct {
//	    UserID string `json:"user_id" validate:"required,entity_id,max=128"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError() // Code "VALIDATION_ERROR"
//	}
//
// ValidateStruct returns a typed *RequestValidationError. Compare it with
// nil before returning it as an error, otherwise a nil pointer becomes a
// non-nil error interface.
//
// Custom tags:
//
//   - entity_id: non-empty, no whitespace or control characters
package validation
