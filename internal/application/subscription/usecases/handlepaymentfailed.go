package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type HandlePaymentFailedCommand struct {
	ExternalSubscriptionID string
	InvoiceID              string
	FailureReason          string
	NextRetryAt            *time.Time
}

type HandlePaymentFailedResult struct {
	SubscriptionID uint
	FailureID      uint
	AttemptCount   int
	GracePeriodEnd *time.Time
	// Ignored is set when the subscription had already ended.
	Ignored bool
}

// HandlePaymentFailedUseCase records a failed invoice charge and moves the
// subscription into its grace period.
type HandlePaymentFailedUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	failureRepo      subscription.PaymentFailureRepository
	publisher        events.EventPublisher
	txManager        db.Transactor
	policy           subscription.Policy
	clock            biztime.Clock
	logger           logger.Interface
}

func NewHandlePaymentFailedUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	failureRepo subscription.PaymentFailureRepository,
	publisher events.EventPublisher,
	txManager db.Transactor,
	policy subscription.Policy,
	clock biztime.Clock,
	logger logger.Interface,
) *HandlePaymentFailedUseCase {
	return &HandlePaymentFailedUseCase{
		subscriptionRepo: subscriptionRepo,
		failureRepo:      failureRepo,
		publisher:        publisher,
		txManager:        txManager,
		policy:           policy,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *HandlePaymentFailedUseCase) Execute(ctx context.Context, cmd HandlePaymentFailedCommand) (*HandlePaymentFailedResult, error) {
	if cmd.InvoiceID == "" {
		return nil, apperrors.NewValidationError(subscription.ErrInvoiceRequired.Error())
	}

	sub, err := uc.subscriptionRepo.GetByExternalID(ctx, cmd.ExternalSubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "external_subscription_id", cmd.ExternalSubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found", cmd.ExternalSubscriptionID)
	}

	now := uc.clock.Now()
	result := &HandlePaymentFailedResult{SubscriptionID: sub.ID()}

	if status := sub.EffectiveStatus(now); status.IsTerminal() {
		uc.logger.Warnw("ignoring payment failure for ended subscription",
			"subscription_id", sub.ID(),
			"status", status,
			"invoice_id", cmd.InvoiceID,
		)
		result.Ignored = true
		return result, nil
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		failure, err := uc.recordFailure(txCtx, sub.ID(), cmd, now)
		if err != nil {
			return err
		}

		if err := sub.RecordPaymentFailure(now, uc.policy.GracePeriod); err != nil {
			return err
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		if err := uc.publisher.Publish(txCtx, subscription.NewPaymentFailedEvent(sub, failure, now)); err != nil {
			return fmt.Errorf("failed to enqueue payment failed event: %w", err)
		}

		result.FailureID = failure.ID()
		result.AttemptCount = failure.AttemptCount()
		return nil
	})
	if err != nil {
		if errors.Is(err, subscription.ErrFailureResolved) {
			uc.logger.Warnw("ignoring failure for already resolved invoice",
				"subscription_id", sub.ID(),
				"invoice_id", cmd.InvoiceID,
			)
			result.Ignored = true
			return result, nil
		}
		uc.logger.Errorw("failed to record payment failure", "error", err,
			"subscription_id", sub.ID(),
			"invoice_id", cmd.InvoiceID,
		)
		return nil, toAppError(err)
	}

	result.GracePeriodEnd = sub.GracePeriodEnd()

	uc.logger.Infow("payment failure recorded",
		"subscription_id", sub.ID(),
		"invoice_id", cmd.InvoiceID,
		"attempt_count", result.AttemptCount,
		"grace_period_end", result.GracePeriodEnd,
	)

	return result, nil
}

// recordFailure finds or creates the failure row for the invoice.
func (uc *HandlePaymentFailedUseCase) recordFailure(ctx context.Context, subscriptionID uint, cmd HandlePaymentFailedCommand, now time.Time) (*subscription.PaymentFailure, error) {
	failure, err := uc.failureRepo.GetBySubscriptionAndInvoice(ctx, subscriptionID, cmd.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment failure: %w", err)
	}

	if failure == nil {
		failure, err = subscription.NewPaymentFailure(subscriptionID, cmd.InvoiceID, cmd.FailureReason, cmd.NextRetryAt, now)
		if err != nil {
			return nil, err
		}
		if err := uc.failureRepo.Create(ctx, failure); err != nil {
			return nil, fmt.Errorf("failed to create payment failure: %w", err)
		}
		return failure, nil
	}

	if err := failure.RecordAttempt(cmd.FailureReason, cmd.NextRetryAt, now); err != nil {
		return nil, err
	}
	if err := uc.failureRepo.Update(ctx, failure); err != nil {
		return nil, fmt.Errorf("failed to update payment failure: %w", err)
	}
	return failure, nil
}
