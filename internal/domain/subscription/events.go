package subscription

import (
	"strconv"
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
)

const (
	EventSubscriptionStarted      = "subscription.started"
	EventSubscriptionCancelled    = "subscription.cancelled"
	EventPaymentFailed            = "payment.failed"
	EventPaymentReminderRequested = "payment.reminder_requested"
)

// StartedEvent announces a new subscription. It drives the welcome email and
// the admin notification.
type StartedEvent struct {
	events.BaseEvent
	SubscriptionID    uint   `json:"subscription_id"`
	UserID            uint   `json:"user_id"`
	BusinessID        uint   `json:"business_id"`
	BlockName         string `json:"block_name"`
	MonthlyPriceCents int64  `json:"monthly_price_cents"`
	CustomerEmail     string `json:"customer_email"`
}

func NewStartedEvent(s *Subscription, now time.Time) *StartedEvent {
	return &StartedEvent{
		BaseEvent:         events.NewBaseEvent(EventSubscriptionStarted, strconv.FormatUint(uint64(s.ID()), 10), now),
		SubscriptionID:    s.ID(),
		UserID:            s.UserID(),
		BusinessID:        s.BusinessID(),
		BlockName:         s.BlockName(),
		MonthlyPriceCents: s.MonthlyPriceCents(),
		CustomerEmail:     s.CustomerEmail(),
	}
}

// CancelledEvent announces that a subscription ended or was scheduled to end.
type CancelledEvent struct {
	events.BaseEvent
	SubscriptionID uint      `json:"subscription_id"`
	BlockName      string    `json:"block_name"`
	CustomerEmail  string    `json:"customer_email"`
	EffectiveAt    time.Time `json:"effective_at"`
	Reason         string    `json:"reason"`
}

func NewCancelledEvent(s *Subscription, effectiveAt time.Time, reason string, now time.Time) *CancelledEvent {
	return &CancelledEvent{
		BaseEvent:      events.NewBaseEvent(EventSubscriptionCancelled, strconv.FormatUint(uint64(s.ID()), 10), now),
		SubscriptionID: s.ID(),
		BlockName:      s.BlockName(),
		CustomerEmail:  s.CustomerEmail(),
		EffectiveAt:    effectiveAt,
		Reason:         reason,
	}
}

// PaymentFailedEvent announces a failed invoice charge.
type PaymentFailedEvent struct {
	events.BaseEvent
	SubscriptionID uint       `json:"subscription_id"`
	FailureID      uint       `json:"failure_id"`
	InvoiceID      string     `json:"invoice_id"`
	AttemptCount   int        `json:"attempt_count"`
	BlockName      string     `json:"block_name"`
	CustomerEmail  string     `json:"customer_email"`
	GracePeriodEnd *time.Time `json:"grace_period_end,omitempty"`
}

func NewPaymentFailedEvent(s *Subscription, f *PaymentFailure, now time.Time) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent:      events.NewBaseEvent(EventPaymentFailed, strconv.FormatUint(uint64(s.ID()), 10), now),
		SubscriptionID: s.ID(),
		FailureID:      f.ID(),
		InvoiceID:      f.InvoiceID(),
		AttemptCount:   f.AttemptCount(),
		BlockName:      s.BlockName(),
		CustomerEmail:  s.CustomerEmail(),
		GracePeriodEnd: s.GracePeriodEnd(),
	}
}

// ReminderRequestedEvent asks the notifier to send a payment reminder.
type ReminderRequestedEvent struct {
	events.BaseEvent
	SubscriptionID uint       `json:"subscription_id"`
	FailureID      uint       `json:"failure_id"`
	ReminderCount  int        `json:"reminder_count"`
	BlockName      string     `json:"block_name"`
	CustomerEmail  string     `json:"customer_email"`
	GracePeriodEnd *time.Time `json:"grace_period_end,omitempty"`
}

func NewReminderRequestedEvent(s *Subscription, f *PaymentFailure, now time.Time) *ReminderRequestedEvent {
	return &ReminderRequestedEvent{
		BaseEvent:      events.NewBaseEvent(EventPaymentReminderRequested, strconv.FormatUint(uint64(f.ID()), 10), now),
		SubscriptionID: s.ID(),
		FailureID:      f.ID(),
		ReminderCount:  f.ReminderCount(),
		BlockName:      s.BlockName(),
		CustomerEmail:  s.CustomerEmail(),
		GracePeriodEnd: s.GracePeriodEnd(),
	}
}
