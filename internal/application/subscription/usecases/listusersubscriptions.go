package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type ListUserSubscriptionsQuery struct {
	UserID     uint
	BusinessID uint
}

type ListUserSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	clock            biztime.Clock
	logger           logger.Interface
}

func NewListUserSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *ListUserSubscriptionsUseCase {
	return &ListUserSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ListUserSubscriptionsUseCase) Execute(ctx context.Context, query ListUserSubscriptionsQuery) ([]*dto.SubscriptionDTO, error) {
	if query.UserID == 0 {
		return nil, apperrors.NewUnauthorizedError("sign in to list subscriptions")
	}

	subs, err := uc.subscriptionRepo.ListByUser(ctx, query.UserID, query.BusinessID)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err, "user_id", query.UserID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	now := uc.clock.Now()
	result := make([]*dto.SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		result = append(result, dto.ToSubscriptionDTO(s, now))
	}
	return result, nil
}
