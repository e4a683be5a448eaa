package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type ResolvePaymentFailureCommand struct {
	FailureID uint
}

// ResolvePaymentFailureUseCase lets an admin settle a failure paid outside
// the processor.
type ResolvePaymentFailureUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	failureRepo      subscription.PaymentFailureRepository
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewResolvePaymentFailureUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	failureRepo subscription.PaymentFailureRepository,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *ResolvePaymentFailureUseCase {
	return &ResolvePaymentFailureUseCase{
		subscriptionRepo: subscriptionRepo,
		failureRepo:      failureRepo,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ResolvePaymentFailureUseCase) Execute(ctx context.Context, cmd ResolvePaymentFailureCommand) (*dto.PaymentFailureDTO, error) {
	failure, err := uc.failureRepo.GetByID(ctx, cmd.FailureID)
	if err != nil {
		uc.logger.Errorw("failed to get payment failure", "error", err, "failure_id", cmd.FailureID)
		return nil, fmt.Errorf("failed to get payment failure: %w", err)
	}
	if failure == nil {
		return nil, apperrors.NewNotFoundError("payment failure not found")
	}

	now := uc.clock.Now()
	if !failure.Resolve(now) {
		return dto.ToPaymentFailureDTO(failure), nil
	}

	reactivated := false
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.failureRepo.Update(txCtx, failure); err != nil {
			return fmt.Errorf("failed to update payment failure: %w", err)
		}

		sub, err := uc.subscriptionRepo.GetByID(txCtx, failure.SubscriptionID())
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil || sub.EffectiveStatus(now).IsTerminal() {
			return nil
		}

		reactivated, err = reactivateIfSettled(txCtx, uc.subscriptionRepo, uc.failureRepo, sub, now, nil, nil)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to resolve payment failure", "error", err, "failure_id", failure.ID())
		return nil, toAppError(err)
	}

	uc.logger.Infow("payment failure resolved",
		"failure_id", failure.ID(),
		"subscription_id", failure.SubscriptionID(),
		"reactivated", reactivated,
	)

	return dto.ToPaymentFailureDTO(failure), nil
}
