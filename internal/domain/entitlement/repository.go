package entitlement

import "context"

// FreeUnlockRepository persists free unlocks.
type FreeUnlockRepository interface {
	// Create inserts the unlock unless one already exists for the same
	// (user, business, block). It reports whether a row was inserted.
	Create(ctx context.Context, unlock *FreeUnlock) (bool, error)
	// ListByUser returns the user's unlocks. businessID 0 matches every business.
	ListByUser(ctx context.Context, userID, businessID uint) ([]*FreeUnlock, error)
}

// PurchaseRepository persists one-time purchases.
type PurchaseRepository interface {
	// Create inserts the purchase unless one already exists for the same
	// (user, business, block). It reports whether a row was inserted.
	Create(ctx context.Context, purchase *Purchase) (bool, error)
	// ListByUser returns the user's purchases. businessID 0 matches every business.
	ListByUser(ctx context.Context, userID, businessID uint) ([]*Purchase, error)
}
