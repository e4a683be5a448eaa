package events

import (
	"context"
	"time"
)

// DomainEvent represents a domain event interface
type DomainEvent interface {
	// GetAggregateID returns the ID of the aggregate that generated the event
	GetAggregateID() string

	// GetEventType returns the type/name of the event
	GetEventType() string

	// GetOccurredAt returns when the event occurred
	GetOccurredAt() time.Time

	// GetVersion returns the event version for schema evolution
	GetVersion() int
}

// BaseEvent provides common fields for all domain events
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	Version     int       `json:"version"`
}

// NewBaseEvent builds a version 1 event header.
func NewBaseEvent(eventType, aggregateID string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  occurredAt.UTC(),
		Version:     1,
	}
}

// GetAggregateID returns the aggregate ID
func (e BaseEvent) GetAggregateID() string {
	return e.AggregateID
}

// GetEventType returns the event type
func (e BaseEvent) GetEventType() string {
	return e.EventType
}

// GetOccurredAt returns when the event occurred
func (e BaseEvent) GetOccurredAt() time.Time {
	return e.OccurredAt
}

// GetVersion returns the event version
func (e BaseEvent) GetVersion() int {
	return e.Version
}

// EventPublisher records domain events for delivery after the surrounding
// transaction commits.
type EventPublisher interface {
	// Publish records a single event
	Publish(ctx context.Context, event DomainEvent) error
}
