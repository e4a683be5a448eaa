package usecases

import (
	"context"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
)

// SnapshotLoader returns one consistent resolution of catalog and pricing.
type SnapshotLoader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// OwnershipLoader resolves which blocks a user owns within a business.
type OwnershipLoader interface {
	Load(ctx context.Context, userID, businessID uint) (map[string]entitlement.Ownership, error)
}

// CheckoutURLs are the redirect targets handed to the payment processor.
type CheckoutURLs struct {
	SuccessURL string
	CancelURL  string
	Currency   string
}
