package http

import (
	adminUsecases "github.com/bizblocks/bizblocks/internal/application/admin/usecases"
	catalogUsecases "github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	checkoutUsecases "github.com/bizblocks/bizblocks/internal/application/checkout/usecases"
	entitlementApp "github.com/bizblocks/bizblocks/internal/application/entitlement"
	"github.com/bizblocks/bizblocks/internal/application/notification"
	notificationUsecases "github.com/bizblocks/bizblocks/internal/application/notification/usecases"
	subscriptionUsecases "github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Catalog
	getResolvedBlocksUC *catalogUsecases.GetResolvedBlocksUseCase
	listPricingUC       *catalogUsecases.ListPricingUseCase
	upsertPricingUC     *catalogUsecases.UpsertPricingUseCase

	// Checkout
	selectAndCheckoutUC *checkoutUsecases.SelectAndCheckoutUseCase
	completeCheckoutUC  *checkoutUsecases.CompleteCheckoutUseCase
	failCheckoutUC      *checkoutUsecases.FailCheckoutUseCase

	// Subscription
	listUserSubscriptionsUC *subscriptionUsecases.ListUserSubscriptionsUseCase
	changeSubscriptionUC    *subscriptionUsecases.ChangeSubscriptionUseCase
	cancelSubscriptionUC    *subscriptionUsecases.CancelSubscriptionUseCase
	handlePaymentFailedUC   *subscriptionUsecases.HandlePaymentFailedUseCase
	handlePaymentOKUC       *subscriptionUsecases.HandlePaymentSucceededUseCase
	resolveFailureUC        *subscriptionUsecases.ResolvePaymentFailureUseCase
	sendReminderUC          *subscriptionUsecases.SendPaymentReminderUseCase
	sweepLapsedUC           *subscriptionUsecases.SweepLapsedSubscriptionsUseCase

	// Admin
	listPaymentFailuresUC *adminUsecases.ListPaymentFailuresUseCase

	// Notification
	relayOutboxUC *notificationUsecases.RelayOutboxUseCase
}

func (c *Container) initUseCases() *allUseCases {
	r := c.repos
	log := c.log
	currency := c.cfg.Billing.Currency
	urls := checkoutUsecases.CheckoutURLs{
		SuccessURL: c.cfg.Billing.SuccessURL,
		CancelURL:  c.cfg.Billing.CancelURL,
		Currency:   currency,
	}

	snapshots := catalogUsecases.NewSnapshotProvider(c.catalogSource, r.pricingRepo, c.clock, log)
	ownership := entitlementApp.NewOwnershipService(r.freeUnlockRepo, r.purchaseRepo, r.subscriptionRepo, c.clock, log)
	starter := checkoutUsecases.NewCheckoutStarter(r.checkoutSessionRepo, c.gateway, urls, c.clock, log)

	return &allUseCases{
		getResolvedBlocksUC: catalogUsecases.NewGetResolvedBlocksUseCase(snapshots, ownership, currency, log),
		listPricingUC:       catalogUsecases.NewListPricingUseCase(c.catalogSource, r.pricingRepo, log),
		upsertPricingUC:     catalogUsecases.NewUpsertPricingUseCase(c.catalogSource, r.pricingRepo, log),

		selectAndCheckoutUC: checkoutUsecases.NewSelectAndCheckoutUseCase(
			snapshots, ownership, r.businessRepo, r.freeUnlockRepo, r.checkoutSessionRepo,
			c.gateway, r.txManager, c.clock, urls, log,
		),
		completeCheckoutUC: checkoutUsecases.NewCompleteCheckoutUseCase(
			r.checkoutSessionRepo, r.purchaseRepo, r.subscriptionRepo, ownership,
			c.gateway, r.outboxRepo, r.txManager, c.clock, log,
		),
		failCheckoutUC: checkoutUsecases.NewFailCheckoutUseCase(r.checkoutSessionRepo, c.clock, log),

		listUserSubscriptionsUC: subscriptionUsecases.NewListUserSubscriptionsUseCase(r.subscriptionRepo, c.clock, log),
		changeSubscriptionUC: subscriptionUsecases.NewChangeSubscriptionUseCase(
			r.subscriptionRepo, snapshots, ownership, c.gateway, starter,
			r.txManager, currency, c.clock, log,
		),
		cancelSubscriptionUC: subscriptionUsecases.NewCancelSubscriptionUseCase(
			r.subscriptionRepo, c.gateway, r.outboxRepo, r.txManager, c.clock, log,
		),
		handlePaymentFailedUC: subscriptionUsecases.NewHandlePaymentFailedUseCase(
			r.subscriptionRepo, r.paymentFailureRepo, r.outboxRepo, r.txManager, c.policy, c.clock, log,
		),
		handlePaymentOKUC: subscriptionUsecases.NewHandlePaymentSucceededUseCase(
			r.subscriptionRepo, r.paymentFailureRepo, r.txManager, c.clock, log,
		),
		resolveFailureUC: subscriptionUsecases.NewResolvePaymentFailureUseCase(
			r.subscriptionRepo, r.paymentFailureRepo, r.txManager, c.clock, log,
		),
		sendReminderUC: subscriptionUsecases.NewSendPaymentReminderUseCase(
			r.subscriptionRepo, r.paymentFailureRepo, r.outboxRepo, r.txManager, c.policy, c.clock, log,
		),
		sweepLapsedUC: subscriptionUsecases.NewSweepLapsedSubscriptionsUseCase(r.subscriptionRepo, c.clock, log),

		listPaymentFailuresUC: adminUsecases.NewListPaymentFailuresUseCase(
			r.paymentFailureRepo, r.subscriptionRepo, c.policy, c.clock, log,
		),

		relayOutboxUC: notificationUsecases.NewRelayOutboxUseCase(
			r.outboxRepo, c.notifier,
			notification.MessageSettings{
				AdminEmail: c.cfg.Email.AdminAddress,
				BaseURL:    c.cfg.Server.BaseURL,
				Currency:   currency,
			},
			c.cfg.Outbox.BatchSize, c.cfg.Outbox.MaxAttempts, c.clock, log,
		),
	}
}
