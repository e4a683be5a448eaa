package usecases

import (
	"errors"

	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
)

// toAppError maps lifecycle rule violations to client errors. Anything else
// is returned unchanged.
func toAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, subscription.ErrReminderCooldown),
		errors.Is(err, subscription.ErrFailureResolved),
		errors.Is(err, subscription.ErrInvalidStatusTransition),
		errors.Is(err, subscription.ErrSubscriptionInactive),
		errors.Is(err, subscription.ErrConcurrentModification):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, subscription.ErrSameBlock),
		errors.Is(err, subscription.ErrInvalidPrice),
		errors.Is(err, subscription.ErrInvalidPeriod):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return apperrors.NewNotFoundError(err.Error())
	case errors.Is(err, subscription.ErrPaymentFailureNotFound):
		return apperrors.NewNotFoundError(err.Error())
	default:
		return err
	}
}
