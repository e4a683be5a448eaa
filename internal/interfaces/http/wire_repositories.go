package http

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/business"
	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/infrastructure/cache"
	"github.com/bizblocks/bizblocks/internal/infrastructure/repository"
	"github.com/bizblocks/bizblocks/internal/shared/db"
)

const pricingCacheTTL = 5 * time.Minute

// repositories holds all repository instances used by the application.
type repositories struct {
	businessRepo        business.Repository
	pricingRepo         catalog.PricingRepository
	checkoutSessionRepo checkout.SessionRepository
	freeUnlockRepo      entitlement.FreeUnlockRepository
	purchaseRepo        entitlement.PurchaseRepository
	subscriptionRepo    subscription.SubscriptionRepository
	paymentFailureRepo  subscription.PaymentFailureRepository
	outboxRepo          *repository.OutboxRepositoryImpl

	txManager *db.TransactionManager
}

func (c *Container) initRepositories() *repositories {
	var pricingRepo catalog.PricingRepository = repository.NewPricingRepository(c.db, c.log)
	if c.redis != nil {
		pricingRepo = cache.NewCachedPricingRepository(pricingRepo, c.redis, pricingCacheTTL, c.log)
	}

	return &repositories{
		businessRepo:        repository.NewBusinessRepository(c.db, c.log),
		pricingRepo:         pricingRepo,
		checkoutSessionRepo: repository.NewCheckoutSessionRepository(c.db, c.log),
		freeUnlockRepo:      repository.NewFreeUnlockRepository(c.db, c.log),
		purchaseRepo:        repository.NewPurchaseRepository(c.db, c.log),
		subscriptionRepo:    repository.NewSubscriptionRepository(c.db, c.log),
		paymentFailureRepo:  repository.NewPaymentFailureRepository(c.db, c.log),
		outboxRepo:          repository.NewOutboxRepository(c.db, c.log),
		txManager:           db.NewTransactionManager(c.db),
	}
}
