package handlers

import (
	"context"

	catalogdto "github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	catalogusecases "github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	checkoutdto "github.com/bizblocks/bizblocks/internal/application/checkout/dto"
	checkoutusecases "github.com/bizblocks/bizblocks/internal/application/checkout/usecases"
	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	subdto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	subusecases "github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
)

// Use case interfaces for BlockHandler

type getResolvedBlocksUseCase interface {
	Execute(ctx context.Context, query catalogusecases.GetResolvedBlocksQuery) ([]*catalogdto.ResolvedBlockDTO, error)
}

// Use case interfaces for CheckoutHandler

type selectAndCheckoutUseCase interface {
	Execute(ctx context.Context, cmd checkoutusecases.SelectAndCheckoutCommand) (*checkoutdto.CheckoutPlanDTO, error)
}

// Use case interfaces for SubscriptionHandler

type listUserSubscriptionsUseCase interface {
	Execute(ctx context.Context, query subusecases.ListUserSubscriptionsQuery) ([]*subdto.SubscriptionDTO, error)
}

type changeSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subusecases.ChangeSubscriptionCommand) (*subdto.ChangeSubscriptionResult, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subusecases.CancelSubscriptionCommand) (*subdto.CancelSubscriptionResult, error)
}

// Dependencies of PaymentWebhookHandler

type webhookVerifier interface {
	VerifyWebhook(payload []byte, signature string) (*paymentgateway.WebhookEvent, error)
}

type completeCheckoutUseCase interface {
	Execute(ctx context.Context, cmd checkoutusecases.CompleteCheckoutCommand) (*checkoutusecases.CompleteCheckoutResult, error)
}

type failCheckoutUseCase interface {
	Execute(ctx context.Context, cmd checkoutusecases.FailCheckoutCommand) error
}

type handlePaymentFailedUseCase interface {
	Execute(ctx context.Context, cmd subusecases.HandlePaymentFailedCommand) (*subusecases.HandlePaymentFailedResult, error)
}

type handlePaymentSucceededUseCase interface {
	Execute(ctx context.Context, cmd subusecases.HandlePaymentSucceededCommand) (*subusecases.HandlePaymentSucceededResult, error)
}
