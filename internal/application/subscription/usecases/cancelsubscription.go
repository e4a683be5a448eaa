package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

const cancelReasonCustomer = "customer_request"

type CancelSubscriptionCommand struct {
	UserID         uint
	SubscriptionID uint
}

// CancelSubscriptionUseCase schedules a subscription to end with its current
// billing period.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	gateway          paymentgateway.Gateway
	publisher        events.EventPublisher
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	gateway paymentgateway.Gateway,
	publisher events.EventPublisher,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		publisher:        publisher,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.CancelSubscriptionResult, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.NewUnauthorizedError("sign in to manage subscriptions")
	}

	sub, err := getOwnedSubscription(ctx, uc.subscriptionRepo, cmd.UserID, cmd.SubscriptionID)
	if err != nil {
		if !apperrors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to load subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		}
		return nil, err
	}

	now := uc.clock.Now()
	if status := sub.EffectiveStatus(now); !status.GrantsAccess() {
		return nil, apperrors.NewConflictError("subscription has already ended", "status: "+status.String())
	}

	result := &dto.CancelSubscriptionResult{
		SubscriptionID:    sub.ID(),
		CancelAtPeriodEnd: true,
		EffectiveAt:       sub.CurrentPeriodEnd(),
	}
	if sub.CancelAtPeriodEnd() {
		return result, nil
	}

	if err := uc.gateway.CancelSubscription(ctx, paymentgateway.CancelSubscriptionRequest{
		ExternalSubscriptionID: sub.ExternalSubscriptionID(),
		AtPeriodEnd:            true,
	}); err != nil {
		uc.logger.Errorw("payment gateway rejected cancellation", "error", err, "subscription_id", sub.ID())
		return nil, apperrors.NewUpstreamError("payment processor unavailable", err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		changed, err := sub.ScheduleCancellation(now)
		if err != nil || !changed {
			return err
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		event := subscription.NewCancelledEvent(sub, sub.CurrentPeriodEnd(), cancelReasonCustomer, now)
		if err := uc.publisher.Publish(txCtx, event); err != nil {
			return fmt.Errorf("failed to enqueue cancellation event: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to schedule cancellation", "error", err, "subscription_id", sub.ID())
		return nil, toAppError(err)
	}

	uc.logger.Infow("subscription cancellation scheduled",
		"subscription_id", sub.ID(),
		"effective_at", sub.CurrentPeriodEnd(),
	)

	return result, nil
}
