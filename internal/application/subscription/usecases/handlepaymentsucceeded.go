package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type HandlePaymentSucceededCommand struct {
	ExternalSubscriptionID string
	InvoiceID              string
	PeriodStart            *time.Time
	PeriodEnd              *time.Time
}

type HandlePaymentSucceededResult struct {
	SubscriptionID   uint
	ResolvedFailures int
	Reactivated      bool
	Ignored          bool
}

// HandlePaymentSucceededUseCase resolves the failure of a paid invoice and
// reactivates the subscription once nothing is left unpaid.
type HandlePaymentSucceededUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	failureRepo      subscription.PaymentFailureRepository
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewHandlePaymentSucceededUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	failureRepo subscription.PaymentFailureRepository,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *HandlePaymentSucceededUseCase {
	return &HandlePaymentSucceededUseCase{
		subscriptionRepo: subscriptionRepo,
		failureRepo:      failureRepo,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *HandlePaymentSucceededUseCase) Execute(ctx context.Context, cmd HandlePaymentSucceededCommand) (*HandlePaymentSucceededResult, error) {
	sub, err := uc.subscriptionRepo.GetByExternalID(ctx, cmd.ExternalSubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "external_subscription_id", cmd.ExternalSubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found", cmd.ExternalSubscriptionID)
	}

	now := uc.clock.Now()
	result := &HandlePaymentSucceededResult{SubscriptionID: sub.ID()}

	if status := sub.EffectiveStatus(now); status.IsTerminal() {
		uc.logger.Warnw("ignoring payment success for ended subscription",
			"subscription_id", sub.ID(),
			"status", status,
			"invoice_id", cmd.InvoiceID,
		)
		result.Ignored = true
		return result, nil
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.InvoiceID != "" {
			failure, err := uc.failureRepo.GetBySubscriptionAndInvoice(txCtx, sub.ID(), cmd.InvoiceID)
			if err != nil {
				return fmt.Errorf("failed to get payment failure: %w", err)
			}
			if failure != nil && failure.Resolve(now) {
				if err := uc.failureRepo.Update(txCtx, failure); err != nil {
					return fmt.Errorf("failed to resolve payment failure: %w", err)
				}
				result.ResolvedFailures++
			}
		}

		reactivated, err := reactivateIfSettled(txCtx, uc.subscriptionRepo, uc.failureRepo, sub, now, cmd.PeriodStart, cmd.PeriodEnd)
		if err != nil {
			return err
		}
		result.Reactivated = reactivated
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to record payment success", "error", err,
			"subscription_id", sub.ID(),
			"invoice_id", cmd.InvoiceID,
		)
		return nil, toAppError(err)
	}

	uc.logger.Infow("payment success recorded",
		"subscription_id", sub.ID(),
		"invoice_id", cmd.InvoiceID,
		"resolved_failures", result.ResolvedFailures,
		"reactivated", result.Reactivated,
	)

	return result, nil
}

// reactivateIfSettled returns the subscription to active when it has no
// unresolved failures left. A non-nil period renews the billing period.
func reactivateIfSettled(
	ctx context.Context,
	subscriptionRepo subscription.SubscriptionRepository,
	failureRepo subscription.PaymentFailureRepository,
	sub *subscription.Subscription,
	now time.Time,
	periodStart, periodEnd *time.Time,
) (bool, error) {
	open, err := failureRepo.ListUnresolvedBySubscription(ctx, sub.ID())
	if err != nil {
		return false, fmt.Errorf("failed to list unresolved payment failures: %w", err)
	}
	if len(open) > 0 {
		return false, nil
	}

	if err := sub.RecordPaymentSuccess(now, periodStart, periodEnd); err != nil {
		return false, err
	}
	if err := subscriptionRepo.Update(ctx, sub); err != nil {
		return false, fmt.Errorf("failed to update subscription: %w", err)
	}
	return true, nil
}
