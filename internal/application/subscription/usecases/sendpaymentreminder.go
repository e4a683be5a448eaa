package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type SendPaymentReminderCommand struct {
	FailureID uint
}

// SendPaymentReminderUseCase queues a payment reminder email for an
// unresolved failure, at most once per cooldown window.
type SendPaymentReminderUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	failureRepo      subscription.PaymentFailureRepository
	publisher        events.EventPublisher
	txManager        db.Transactor
	policy           subscription.Policy
	clock            biztime.Clock
	logger           logger.Interface
}

func NewSendPaymentReminderUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	failureRepo subscription.PaymentFailureRepository,
	publisher events.EventPublisher,
	txManager db.Transactor,
	policy subscription.Policy,
	clock biztime.Clock,
	logger logger.Interface,
) *SendPaymentReminderUseCase {
	return &SendPaymentReminderUseCase{
		subscriptionRepo: subscriptionRepo,
		failureRepo:      failureRepo,
		publisher:        publisher,
		txManager:        txManager,
		policy:           policy,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *SendPaymentReminderUseCase) Execute(ctx context.Context, cmd SendPaymentReminderCommand) (*dto.ReminderResult, error) {
	failure, err := uc.failureRepo.GetByID(ctx, cmd.FailureID)
	if err != nil {
		uc.logger.Errorw("failed to get payment failure", "error", err, "failure_id", cmd.FailureID)
		return nil, fmt.Errorf("failed to get payment failure: %w", err)
	}
	if failure == nil {
		return nil, apperrors.NewNotFoundError("payment failure not found")
	}

	now := uc.clock.Now()
	cooldown := uc.policy.ReminderCooldown

	if err := failure.CanSendReminder(now, cooldown); err != nil {
		uc.logger.Infow("payment reminder refused", "failure_id", failure.ID(), "reason", err)
		return nil, toAppError(err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Concurrent senders race here and only one update matches.
		marked, err := uc.failureRepo.TryMarkReminderSent(txCtx, failure.ID(), now, cooldown)
		if err != nil {
			return fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		if !marked {
			return subscription.ErrReminderCooldown
		}

		failure, err = uc.failureRepo.GetByID(txCtx, failure.ID())
		if err != nil {
			return fmt.Errorf("failed to reload payment failure: %w", err)
		}
		if failure == nil {
			return subscription.ErrPaymentFailureNotFound
		}

		sub, err := uc.subscriptionRepo.GetByID(txCtx, failure.SubscriptionID())
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return subscription.ErrSubscriptionNotFound
		}

		if err := uc.publisher.Publish(txCtx, subscription.NewReminderRequestedEvent(sub, failure, now)); err != nil {
			return fmt.Errorf("failed to enqueue reminder event: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("payment reminder not sent", "error", err, "failure_id", cmd.FailureID)
		return nil, toAppError(err)
	}

	sentAt := now
	if last := failure.LastReminderSentAt(); last != nil {
		sentAt = *last
	}

	uc.logger.Infow("payment reminder queued",
		"failure_id", failure.ID(),
		"subscription_id", failure.SubscriptionID(),
		"reminder_count", failure.ReminderCount(),
	)

	return &dto.ReminderResult{
		FailureID:             failure.ID(),
		ReminderCount:         failure.ReminderCount(),
		LastReminderSentAt:    sentAt,
		NextReminderAllowedAt: sentAt.Add(cooldown),
	}, nil
}
