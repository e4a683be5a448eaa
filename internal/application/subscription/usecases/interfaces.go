package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
)

// SnapshotLoader returns one consistent resolution of catalog and pricing.
type SnapshotLoader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// OwnershipLoader resolves which blocks a user owns within a business.
type OwnershipLoader interface {
	Load(ctx context.Context, userID, businessID uint) (map[string]entitlement.Ownership, error)
}

// CheckoutStarter opens a prepared checkout session at the payment gateway.
type CheckoutStarter interface {
	Start(ctx context.Context, session *checkout.Session) error
}

// getOwnedSubscription loads a subscription of userID. Subscriptions of other
// users are reported as not found.
func getOwnedSubscription(ctx context.Context, repo subscription.SubscriptionRepository, userID, subscriptionID uint) (*subscription.Subscription, error) {
	sub, err := repo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil || sub.UserID() != userID {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	return sub, nil
}
