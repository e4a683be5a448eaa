package subscription

import (
	"fmt"
	"time"
)

// PaymentFailure tracks one failed invoice of a subscription until it is
// resolved. Rows are never deleted.
type PaymentFailure struct {
	id                 uint
	subscriptionID     uint
	invoiceID          string
	attemptCount       int
	failureReason      string
	nextRetryDate      *time.Time
	resolved           bool
	resolvedAt         *time.Time
	lastReminderSentAt *time.Time
	reminderCount      int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewPaymentFailure records the first failed attempt of an invoice.
func NewPaymentFailure(subscriptionID uint, invoiceID, reason string, nextRetryDate *time.Time, now time.Time) (*PaymentFailure, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if invoiceID == "" {
		return nil, ErrInvoiceRequired
	}

	return &PaymentFailure{
		subscriptionID: subscriptionID,
		invoiceID:      invoiceID,
		attemptCount:   1,
		failureReason:  reason,
		nextRetryDate:  nextRetryDate,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructPaymentFailure reconstructs a payment failure from persistence
func ReconstructPaymentFailure(
	id, subscriptionID uint,
	invoiceID string,
	attemptCount int,
	failureReason string,
	nextRetryDate *time.Time,
	resolved bool,
	resolvedAt, lastReminderSentAt *time.Time,
	reminderCount int,
	createdAt, updatedAt time.Time,
) (*PaymentFailure, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment failure ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}

	return &PaymentFailure{
		id:                 id,
		subscriptionID:     subscriptionID,
		invoiceID:          invoiceID,
		attemptCount:       attemptCount,
		failureReason:      failureReason,
		nextRetryDate:      nextRetryDate,
		resolved:           resolved,
		resolvedAt:         resolvedAt,
		lastReminderSentAt: lastReminderSentAt,
		reminderCount:      reminderCount,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (f *PaymentFailure) ID() uint                       { return f.id }
func (f *PaymentFailure) SubscriptionID() uint           { return f.subscriptionID }
func (f *PaymentFailure) InvoiceID() string              { return f.invoiceID }
func (f *PaymentFailure) AttemptCount() int              { return f.attemptCount }
func (f *PaymentFailure) FailureReason() string          { return f.failureReason }
func (f *PaymentFailure) NextRetryDate() *time.Time      { return f.nextRetryDate }
func (f *PaymentFailure) IsResolved() bool               { return f.resolved }
func (f *PaymentFailure) ResolvedAt() *time.Time         { return f.resolvedAt }
func (f *PaymentFailure) LastReminderSentAt() *time.Time { return f.lastReminderSentAt }
func (f *PaymentFailure) ReminderCount() int             { return f.reminderCount }
func (f *PaymentFailure) CreatedAt() time.Time           { return f.createdAt }
func (f *PaymentFailure) UpdatedAt() time.Time           { return f.updatedAt }

// SetID sets the ID after persisting.
func (f *PaymentFailure) SetID(id uint) {
	f.id = id
}

// RecordAttempt counts another failed charge of the same invoice.
func (f *PaymentFailure) RecordAttempt(reason string, nextRetryDate *time.Time, now time.Time) error {
	if f.resolved {
		return ErrFailureResolved
	}

	f.attemptCount++
	if reason != "" {
		f.failureReason = reason
	}
	f.nextRetryDate = nextRetryDate
	f.updatedAt = now
	return nil
}

// CanSendReminder reports whether a reminder may go out at now. A reminder is
// allowed for an unresolved failure that has never been reminded or whose
// last reminder is at least cooldown old.
func (f *PaymentFailure) CanSendReminder(now time.Time, cooldown time.Duration) error {
	if f.resolved {
		return ErrFailureResolved
	}
	if f.lastReminderSentAt != nil && now.Sub(*f.lastReminderSentAt) < cooldown {
		return fmt.Errorf("%w: next reminder allowed at %s", ErrReminderCooldown,
			f.lastReminderSentAt.Add(cooldown).UTC().Format(time.RFC3339))
	}
	return nil
}

// MarkReminderSent records a reminder at now if the cooldown allows it.
func (f *PaymentFailure) MarkReminderSent(now time.Time, cooldown time.Duration) error {
	if err := f.CanSendReminder(now, cooldown); err != nil {
		return err
	}

	f.reminderCount++
	f.lastReminderSentAt = &now
	f.updatedAt = now
	return nil
}

// Resolve marks the failure as settled. It reports false when the failure was
// already resolved.
func (f *PaymentFailure) Resolve(now time.Time) bool {
	if f.resolved {
		return false
	}

	f.resolved = true
	f.resolvedAt = &now
	f.updatedAt = now
	return true
}
