// Package outbox models events recorded in the same transaction as the state
// change that produced them and delivered afterwards by the relay.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
)

// Status is the delivery state of a message.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// Message is one recorded domain event awaiting delivery.
type Message struct {
	id          string
	eventType   string
	aggregateID string
	payload     []byte
	status      Status
	attempts    int
	lastError   string
	availableAt time.Time
	deliveredAt *time.Time
	createdAt   time.Time
}

// NewMessage serializes event into a pending message available immediately.
func NewMessage(event events.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.GetEventType(), err)
	}

	occurredAt := event.GetOccurredAt()
	return &Message{
		id:          uuid.NewString(),
		eventType:   event.GetEventType(),
		aggregateID: event.GetAggregateID(),
		payload:     payload,
		status:      StatusPending,
		availableAt: occurredAt,
		createdAt:   occurredAt,
	}, nil
}

// ReconstructMessage reconstructs a message from persistence
func ReconstructMessage(
	id, eventType, aggregateID string,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	availableAt time.Time,
	deliveredAt *time.Time,
	createdAt time.Time,
) *Message {
	return &Message{
		id:          id,
		eventType:   eventType,
		aggregateID: aggregateID,
		payload:     payload,
		status:      status,
		attempts:    attempts,
		lastError:   lastError,
		availableAt: availableAt,
		deliveredAt: deliveredAt,
		createdAt:   createdAt,
	}
}

func (m *Message) ID() string              { return m.id }
func (m *Message) EventType() string       { return m.eventType }
func (m *Message) AggregateID() string     { return m.aggregateID }
func (m *Message) Payload() []byte         { return m.payload }
func (m *Message) Status() Status          { return m.status }
func (m *Message) Attempts() int           { return m.attempts }
func (m *Message) LastError() string       { return m.lastError }
func (m *Message) AvailableAt() time.Time  { return m.availableAt }
func (m *Message) DeliveredAt() *time.Time { return m.deliveredAt }
func (m *Message) CreatedAt() time.Time    { return m.createdAt }

// Decode unmarshals the payload into v.
func (m *Message) Decode(v any) error {
	if err := json.Unmarshal(m.payload, v); err != nil {
		return fmt.Errorf("failed to decode %s message %s: %w", m.eventType, m.id, err)
	}
	return nil
}

// MarkDelivered records a successful delivery.
func (m *Message) MarkDelivered(now time.Time) {
	m.status = StatusDelivered
	m.deliveredAt = &now
	m.lastError = ""
}

// MarkAttemptFailed records a failed delivery. The message is retried after
// an exponential backoff until maxAttempts is reached, then parked as failed.
func (m *Message) MarkAttemptFailed(cause error, now time.Time, maxAttempts int) {
	m.attempts++
	m.lastError = cause.Error()
	if m.attempts >= maxAttempts {
		m.status = StatusFailed
		return
	}
	m.availableAt = now.Add(Backoff(m.attempts))
}

// Backoff returns the delay before the next attempt: 30s doubled per attempt,
// capped at one hour.
func Backoff(attempts int) time.Duration {
	const (
		base    = 30 * time.Second
		ceiling = time.Hour
	)
	if attempts < 1 {
		return base
	}
	delay := base
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= ceiling {
			return ceiling
		}
	}
	return delay
}

type Repository interface {
	Enqueue(ctx context.Context, message *Message) error
	// ClaimDue returns up to limit pending messages available at now, oldest first.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*Message, error)
	Update(ctx context.Context, message *Message) error
}
