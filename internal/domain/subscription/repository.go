package subscription

import (
	"context"
	"time"

	"github.com/bizblocks/bizblocks/internal/shared/query"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Subscription, error)
	GetByExternalID(ctx context.Context, externalSubscriptionID string) (*Subscription, error)
	// ListByUser returns the user's subscriptions in every status.
	// businessID 0 matches every business.
	ListByUser(ctx context.Context, userID, businessID uint) ([]*Subscription, error)
	// ListLapseCandidates returns non-terminal subscriptions whose grace period
	// or scheduled cancellation may have elapsed at now.
	ListLapseCandidates(ctx context.Context, now time.Time) ([]*Subscription, error)
	// Update saves the subscription if its stored version still matches,
	// otherwise it returns ErrConcurrentModification.
	Update(ctx context.Context, subscription *Subscription) error
}

type PaymentFailureRepository interface {
	Create(ctx context.Context, failure *PaymentFailure) error
	GetByID(ctx context.Context, id uint) (*PaymentFailure, error)
	GetBySubscriptionAndInvoice(ctx context.Context, subscriptionID uint, invoiceID string) (*PaymentFailure, error)
	ListUnresolvedBySubscription(ctx context.Context, subscriptionID uint) ([]*PaymentFailure, error)
	List(ctx context.Context, filter PaymentFailureFilter) ([]*PaymentFailure, int64, error)
	Update(ctx context.Context, failure *PaymentFailure) error
	// TryMarkReminderSent atomically increments the reminder count and stamps
	// the send time, but only when the failure is unresolved and no reminder
	// was sent within cooldown before now. It reports whether the row changed.
	TryMarkReminderSent(ctx context.Context, id uint, now time.Time, cooldown time.Duration) (bool, error)
}

// FailureStatus filters payment failures by resolution.
type FailureStatus string

const (
	FailureStatusAll      FailureStatus = ""
	FailureStatusOpen     FailureStatus = "open"
	FailureStatusResolved FailureStatus = "resolved"
)

func (s FailureStatus) IsValid() bool {
	return s == FailureStatusAll || s == FailureStatusOpen || s == FailureStatusResolved
}

// PaymentFailureFilter selects payment failures for the admin listing.
type PaymentFailureFilter struct {
	query.ListFilter
	Status FailureStatus
	// From and To bound created_at, inclusive.
	From *time.Time
	To   *time.Time
	// EmailSearch matches a case-folded substring of the customer email.
	EmailSearch string
}
