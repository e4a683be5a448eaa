// Package entitlement loads the ownership records of a user and resolves them
// per block.
package entitlement

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// OwnershipService reads free unlocks, purchases and subscriptions and ranks
// them with entitlement.Resolve.
type OwnershipService struct {
	freeUnlockRepo   entitlement.FreeUnlockRepository
	purchaseRepo     entitlement.PurchaseRepository
	subscriptionRepo subscription.SubscriptionRepository
	clock            biztime.Clock
	logger           logger.Interface
}

func NewOwnershipService(
	freeUnlockRepo entitlement.FreeUnlockRepository,
	purchaseRepo entitlement.PurchaseRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *OwnershipService {
	return &OwnershipService{
		freeUnlockRepo:   freeUnlockRepo,
		purchaseRepo:     purchaseRepo,
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

// Load returns the owned blocks of userID keyed by block name. businessID 0
// considers every business of the user. An anonymous caller (userID 0) owns
// nothing.
func (s *OwnershipService) Load(ctx context.Context, userID, businessID uint) (map[string]entitlement.Ownership, error) {
	if userID == 0 {
		return map[string]entitlement.Ownership{}, nil
	}

	records, err := s.records(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}

	return entitlement.ResolveAll(records, s.clock.Now()), nil
}

// OwnershipOf resolves a single block.
func (s *OwnershipService) OwnershipOf(ctx context.Context, userID, businessID uint, blockName string) (entitlement.Ownership, error) {
	owned, err := s.Load(ctx, userID, businessID)
	if err != nil {
		return entitlement.NotOwned, err
	}
	return owned[blockName], nil
}

func (s *OwnershipService) records(ctx context.Context, userID, businessID uint) ([]entitlement.Entitlement, error) {
	unlocks, err := s.freeUnlockRepo.ListByUser(ctx, userID, businessID)
	if err != nil {
		s.logger.Errorw("failed to list free unlocks", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list free unlocks: %w", err)
	}

	purchases, err := s.purchaseRepo.ListByUser(ctx, userID, businessID)
	if err != nil {
		s.logger.Errorw("failed to list purchases", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	subs, err := s.subscriptionRepo.ListByUser(ctx, userID, businessID)
	if err != nil {
		s.logger.Errorw("failed to list subscriptions", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	records := make([]entitlement.Entitlement, 0, len(unlocks)+len(purchases)+len(subs))
	for _, u := range unlocks {
		records = append(records, u)
	}
	for _, p := range purchases {
		records = append(records, p)
	}
	for _, sub := range subs {
		records = append(records, sub)
	}
	return records, nil
}
