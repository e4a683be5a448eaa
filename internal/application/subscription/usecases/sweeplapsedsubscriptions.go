package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	vo "github.com/bizblocks/bizblocks/internal/domain/subscription/valueobjects"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// SweepLapsedSubscriptionsUseCase persists expirations and period-end
// cancellations that reads already apply lazily.
type SweepLapsedSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	clock            biztime.Clock
	logger           logger.Interface
}

func NewSweepLapsedSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *SweepLapsedSubscriptionsUseCase {
	return &SweepLapsedSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *SweepLapsedSubscriptionsUseCase) Execute(ctx context.Context) (*dto.SweepResult, error) {
	now := uc.clock.Now()

	candidates, err := uc.subscriptionRepo.ListLapseCandidates(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to list lapse candidates", "error", err)
		return nil, fmt.Errorf("failed to list lapse candidates: %w", err)
	}

	result := &dto.SweepResult{Examined: len(candidates)}
	for _, sub := range candidates {
		if !sub.Settle(now) {
			continue
		}

		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			if errors.Is(err, subscription.ErrConcurrentModification) {
				uc.logger.Warnw("subscription changed during sweep, skipping", "subscription_id", sub.ID())
				continue
			}
			uc.logger.Errorw("failed to settle subscription", "error", err, "subscription_id", sub.ID())
			return result, fmt.Errorf("failed to settle subscription %d: %w", sub.ID(), err)
		}

		switch sub.Status() {
		case vo.StatusExpired:
			result.Expired++
		case vo.StatusCancelled:
			result.Cancelled++
		}
	}

	uc.logger.Infow("lapsed subscriptions swept",
		"examined", result.Examined,
		"expired", result.Expired,
		"cancelled", result.Cancelled,
	)

	return result, nil
}
