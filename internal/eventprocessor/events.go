// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/validation"
)

// EventSchemaVersion is the current InteractionEvent layout.
const EventSchemaVersion = 1

// DefaultTopic is where recorded interactions are published.
const DefaultTopic = "interactions.recorded"

// DefaultEventType is recorded when the caller names no event type.
const DefaultEventType = "view"

// Default weights per event type when the caller sends none.
var defaultWeights = map[string]float64{
	"view":     1,
	"click":    2,
	"cart":     3,
	"wishlist": 3,
	"purchase": 5,
	"rating":   1,
}

// InteractionEvent is a single user-product interaction travelling through
// the message bus.
type InteractionEvent struct {
	EventID       string    `json:"event_id" validate:"required,max=64"`
	SchemaVersion int       `json:"schema_version"`
	UserID        string    `json:"user_id" validate:"required,entity_id,max=128"`
	ProductID     string    `json:"product_id" validate:"required,entity_id,max=128"`
	EventType     string    `json:"event_type" validate:"omitempty,max=64"`
	Weight        float64   `json:"weight" validate:"gt=0,lte=1000"`
	RecordedAt    time.Time `json:"recorded_at"`
	Source        string    `json:"source,omitempty" validate:"omitempty,max=64"`
}

// NewInteractionEvent creates an event with a fresh id and timestamp.
// An empty eventType becomes DefaultEventType; a non-positive weight is
// replaced by the default for eventType, or 1.
func NewInteractionEvent(userID, productID, eventType string, weight float64) *InteractionEvent {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	if eventType == "" {
		eventType = DefaultEventType
	}
	if weight <= 0 {
		weight = defaultWeights[eventType]
		if weight == 0 {
			weight = 1
		}
	}
	return &InteractionEvent{
		EventID:       uuid.New().String(),
		SchemaVersion: EventSchemaVersion,
		UserID:        strings.TrimSpace(userID),
		ProductID:     strings.TrimSpace(productID),
		EventType:     eventType,
		Weight:        weight,
		RecordedAt:    time.Now().UTC(),
		Source:        "api",
	}
}

// Validate checks the event's required fields and bounds.
func (e *InteractionEvent) Validate() error {
	if verr := validation.ValidateStruct(e); verr != nil {
		return verr
	}
	return nil
}

// Interaction converts the event to the training record.
func (e *InteractionEvent) Interaction() catalog.Interaction {
	return catalog.Interaction{
		UserID:     e.UserID,
		ProductID:  e.ProductID,
		EventType:  e.EventType,
		Weight:     e.Weight,
		RecordedAt: e.RecordedAt,
	}
}
