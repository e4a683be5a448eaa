package http

import (
	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers"
	adminHandlers "github.com/bizblocks/bizblocks/internal/interfaces/http/handlers/admin"
	"github.com/bizblocks/bizblocks/internal/shared/version"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler       *handlers.HealthHandler
	blockHandler        *handlers.BlockHandler
	checkoutHandler     *handlers.CheckoutHandler
	subscriptionHandler *handlers.SubscriptionHandler
	webhookHandler      *handlers.PaymentWebhookHandler

	adminPricingHandler        *adminHandlers.PricingHandler
	adminPaymentFailureHandler *adminHandlers.PaymentFailureHandler
	adminSubscriptionHandler   *adminHandlers.SubscriptionHandler
}

func (c *Container) initHandlers() *allHandlers {
	u := c.ucs

	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	} else {
		c.log.Warnw("database handle unavailable for health checks", "error", err)
	}

	return &allHandlers{
		healthHandler:   handlers.NewHealthHandler(pinger, version.Current),
		blockHandler:    handlers.NewBlockHandler(u.getResolvedBlocksUC, c.log),
		checkoutHandler: handlers.NewCheckoutHandler(u.selectAndCheckoutUC, c.log),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			u.listUserSubscriptionsUC, u.changeSubscriptionUC, u.cancelSubscriptionUC, c.log,
		),
		webhookHandler: handlers.NewPaymentWebhookHandler(
			c.gateway, u.completeCheckoutUC, u.failCheckoutUC,
			u.handlePaymentFailedUC, u.handlePaymentOKUC, c.log,
		),

		adminPricingHandler: adminHandlers.NewPricingHandler(u.listPricingUC, u.upsertPricingUC, c.log),
		adminPaymentFailureHandler: adminHandlers.NewPaymentFailureHandler(
			u.listPaymentFailuresUC, u.sendReminderUC, u.resolveFailureUC, c.log,
		),
		adminSubscriptionHandler: adminHandlers.NewSubscriptionHandler(u.sweepLapsedUC, c.log),
	}
}
