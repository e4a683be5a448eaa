package usecases

import (
	"context"

	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// CheckoutStarter opens prepared sessions at the payment gateway for flows
// outside the cart, such as switching a subscription to a one-time purchase.
type CheckoutStarter struct {
	sessionRepo checkout.SessionRepository
	gateway     paymentgateway.Gateway
	urls        CheckoutURLs
	clock       biztime.Clock
	logger      logger.Interface
}

func NewCheckoutStarter(
	sessionRepo checkout.SessionRepository,
	gateway paymentgateway.Gateway,
	urls CheckoutURLs,
	clock biztime.Clock,
	logger logger.Interface,
) *CheckoutStarter {
	return &CheckoutStarter{
		sessionRepo: sessionRepo,
		gateway:     gateway,
		urls:        urls,
		clock:       clock,
		logger:      logger,
	}
}

// Start persists the session and attaches the gateway checkout URL to it.
func (s *CheckoutStarter) Start(ctx context.Context, session *checkout.Session) error {
	return startCheckout(ctx, s.sessionRepo, s.gateway, s.urls, s.clock, session, s.logger)
}
