package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrSubscriptionInactive    = errors.New("subscription inactive")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidPrice            = errors.New("invalid price")
	ErrInvalidPeriod           = errors.New("invalid billing period")
	ErrSameBlock               = errors.New("subscription already uses this block")
	ErrPaymentFailureNotFound  = errors.New("payment failure not found")
	ErrFailureResolved         = errors.New("payment failure already resolved")
	ErrReminderCooldown        = errors.New("reminder sent too recently")
	ErrInvoiceRequired         = errors.New("invoice ID is required")
	ErrConcurrentModification  = errors.New("subscription was modified concurrently")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
