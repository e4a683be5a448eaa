package admin

import (
	"context"

	adminusecases "github.com/bizblocks/bizblocks/internal/application/admin/usecases"
	catalogdto "github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	catalogusecases "github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	subdto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	subusecases "github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
)

// Use case interfaces for PricingHandler

type listPricingUseCase interface {
	Execute(ctx context.Context) ([]*catalogdto.PricingRecordDTO, error)
}

type upsertPricingUseCase interface {
	Execute(ctx context.Context, cmd catalogusecases.UpsertPricingCommand) (*catalogdto.PricingRecordDTO, error)
}

// Use case interfaces for PaymentFailureHandler

type listPaymentFailuresUseCase interface {
	Execute(ctx context.Context, query adminusecases.ListPaymentFailuresQuery) (*adminusecases.ListPaymentFailuresResult, error)
}

type sendPaymentReminderUseCase interface {
	Execute(ctx context.Context, cmd subusecases.SendPaymentReminderCommand) (*subdto.ReminderResult, error)
}

type resolvePaymentFailureUseCase interface {
	Execute(ctx context.Context, cmd subusecases.ResolvePaymentFailureCommand) (*subdto.PaymentFailureDTO, error)
}

// Use case interfaces for SubscriptionHandler

type sweepLapsedSubscriptionsUseCase interface {
	Execute(ctx context.Context) (*subdto.SweepResult, error)
}
