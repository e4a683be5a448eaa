package models

// All returns every model managed by the engine, for AutoMigrate in tests
// and local sqlite setups.
func All() []any {
	return []any{
		&BusinessModel{},
		&PricingRecordModel{},
		&FreeUnlockModel{},
		&PurchaseModel{},
		&SubscriptionModel{},
		&PaymentFailureModel{},
		&CheckoutSessionModel{},
		&OutboxMessageModel{},
	}
}
