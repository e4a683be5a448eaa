package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/application/testutil"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	vo "github.com/bizblocks/bizblocks/internal/domain/subscription/valueobjects"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
)

func changeCmd(subID uint, action, block string) ChangeSubscriptionCommand {
	return ChangeSubscriptionCommand{
		UserID:                    testUserID,
		SubscriptionID:            subID,
		ChangeSubscriptionRequest: dto.ChangeSubscriptionRequest{Action: action, NewBlockName: block},
	}
}

func TestChangeSubscription_UpgradeProratesHalfPeriod(t *testing.T) {
	env := newLifecycleEnv(t)
	// 30 day period with 15 days left, $10 -> $20.
	sub := env.addSubscription(t, "seo", 1000, "sub_1", 15*24*time.Hour)

	result, err := env.changeUC().Execute(context.Background(), changeCmd(sub.ID(), ActionUpgrade, "ads"))
	require.NoError(t, err)

	require.NotNil(t, result.ProrationAmountCents)
	proration := *result.ProrationAmountCents
	assert.Equal(t, int64(500), proration)
	assert.Positive(t, proration)
	assert.Less(t, proration, int64(1000))

	require.Len(t, env.gateway.ChangePriceRequests, 1)
	assert.Equal(t, paymentgateway.ChangePriceRequest{
		ExternalSubscriptionID: "sub_1",
		NewBlockName:           "ads",
		NewMonthlyPriceCents:   2000,
		ProrationAmountCents:   500,
		Currency:               "USD",
	}, env.gateway.ChangePriceRequests[0])

	assert.Equal(t, "ads", sub.BlockName())
	assert.Equal(t, int64(2000), sub.MonthlyPriceCents())
	assert.True(t, env.owned(t, "ads"))
	assert.False(t, env.owned(t, "seo"))
}

func TestChangeSubscription_GatewayFailureLeavesSubscriptionUnchanged(t *testing.T) {
	env := newLifecycleEnv(t)
	sub := env.addSubscription(t, "seo", 1000, "sub_1", 15*24*time.Hour)
	env.gateway.ChangeSubscriptionPriceFunc = func(ctx context.Context, req paymentgateway.ChangePriceRequest) (*paymentgateway.ChangePriceResponse, error) {
		return nil, errors.New("card declined")
	}

	_, err := env.changeUC().Execute(context.Background(), changeCmd(sub.ID(), ActionUpgrade, "ads"))
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))

	assert.Equal(t, "seo", sub.BlockName())
	assert.Equal(t, int64(1000), sub.MonthlyPriceCents())
	assert.False(t, env.owned(t, "ads"))
	assert.Zero(t, env.subs.UpdateCalls())
}

func TestChangeSubscription_LocalSaveFailureLogsReconciliationFields(t *testing.T) {
	env := newLifecycleEnv(t)
	sub := env.addSubscription(t, "seo", 1000, "sub_1", 15*24*time.Hour)
	env.gateway.ChangeSubscriptionPriceFunc = func(ctx context.Context, req paymentgateway.ChangePriceRequest) (*paymentgateway.ChangePriceResponse, error) {
		return &paymentgateway.ChangePriceResponse{InvoiceID: "in_prorate"}, nil
	}
	env.subs.SetUpdateError(subscription.ErrConcurrentModification)
	log := testutil.NewRecordingLogger()

	_, err := env.changeUCWithLogger(log).Execute(context.Background(), changeCmd(sub.ID(), ActionUpgrade, "ads"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
	require.Len(t, env.gateway.ChangePriceRequests, 1)

	entry, ok := log.Find("error", "subscription price changed at payment processor but not saved locally")
	require.True(t, ok)
	assert.Equal(t, "in_prorate", entry.Fields["invoice_id"])
	assert.Equal(t, "sub_1", entry.Fields["external_subscription_id"])
	assert.Equal(t, int64(1000), entry.Fields["from_monthly_price_cents"])
	assert.Equal(t, int64(2000), entry.Fields["to_monthly_price_cents"])
	assert.Equal(t, int64(500), entry.Fields["proration_amount_cents"])
}

func TestChangeSubscription_DowngradeCredits(t *testing.T) {
	env := newLifecycleEnv(t)
	sub := env.addSubscription(t, "ads", 2000, "sub_1", 15*24*time.Hour)

	result, err := env.changeUC().Execute(context.Background(), changeCmd(sub.ID(), ActionDowngrade, "seo"))
	require.NoError(t, err)
	assert.Equal(t, int64(-500), *result.ProrationAmountCents)
	assert.Equal(t, "seo", sub.BlockName())
}

func TestChangeSubscription_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(env *lifecycleEnv, subID uint)
		cmd     func(subID uint) ChangeSubscriptionCommand
		checkFn func(error) bool
	}{
		{
			name:    "change to current block",
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, ActionUpgrade, "seo") },
			checkFn: apperrors.IsValidationError,
		},
		{
			name:    "downgrade to pricier block",
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, ActionDowngrade, "ads") },
			checkFn: apperrors.IsValidationError,
		},
		{
			name:    "target is one-time",
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, ActionUpgrade, "legal") },
			checkFn: apperrors.IsValidationError,
		},
		{
			name:    "target unknown",
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, ActionUpgrade, "crm") },
			checkFn: apperrors.IsNotFoundError,
		},
		{
			name:    "missing target",
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, ActionUpgrade, "") },
			checkFn: apperrors.IsValidationError,
		},
		{
			name:    "unknown action",
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, "pause", "ads") },
			checkFn: apperrors.IsValidationError,
		},
		{
			name: "subscription of another user",
			cmd: func(id uint) ChangeSubscriptionCommand {
				cmd := changeCmd(id, ActionUpgrade, "ads")
				cmd.UserID = 99
				return cmd
			},
			checkFn: apperrors.IsNotFoundError,
		},
		{
			name: "target already owned",
			setup: func(env *lifecycleEnv, _ uint) {
				env.addSubscription(t, "ads", 2000, "sub_2", time.Hour)
			},
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, ActionUpgrade, "ads") },
			checkFn: apperrors.IsConflictError,
		},
		{
			name: "past due subscription",
			setup: func(env *lifecycleEnv, _ uint) {
				failInvoice(t, env, "sub_1", "in_1")
			},
			cmd:     func(id uint) ChangeSubscriptionCommand { return changeCmd(id, ActionUpgrade, "ads") },
			checkFn: apperrors.IsConflictError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newLifecycleEnv(t)
			sub := env.addSubscription(t, "seo", 1000, "sub_1", 15*24*time.Hour)
			if tt.setup != nil {
				tt.setup(env, sub.ID())
			}

			_, err := env.changeUC().Execute(context.Background(), tt.cmd(sub.ID()))
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
			assert.Empty(t, env.gateway.ChangePriceRequests)
			assert.Equal(t, "seo", sub.BlockName())
		})
	}
}

func TestChangeSubscription_SwitchToOneTimeOpensCheckout(t *testing.T) {
	env := newLifecycleEnv(t)
	sub := env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)

	result, err := env.changeUC().Execute(context.Background(), changeCmd(sub.ID(), ActionSwitchToOneTime, "legal"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.CheckoutURL)
	assert.Nil(t, result.ProrationAmountCents)

	sessions := env.sessions.All()
	require.Len(t, sessions, 1)
	session := sessions[0]
	assert.Equal(t, result.CheckoutSessionID, session.ID())
	assert.Equal(t, checkout.ModeOneTime, session.Mode())
	require.NotNil(t, session.SwitchFromSubscriptionID())
	assert.Equal(t, sub.ID(), *session.SwitchFromSubscriptionID())
	assert.Equal(t, []checkout.LineItem{{BlockName: "legal", AmountCents: 19900}}, session.Items())
	assert.Equal(t, "owner@example.com", session.CustomerEmail())

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Empty(t, env.gateway.CancelRequests)
}

func TestChangeSubscription_SwitchSessionFailureKeepsSubscription(t *testing.T) {
	env := newLifecycleEnv(t)
	sub := env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)
	env.gateway.CreateCheckoutSessionFunc = func(ctx context.Context, req paymentgateway.CreateCheckoutSessionRequest) (*paymentgateway.CheckoutSessionResponse, error) {
		return nil, errors.New("processor down")
	}

	_, err := env.changeUC().Execute(context.Background(), changeCmd(sub.ID(), ActionSwitchToOneTime, "legal"))
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.False(t, sub.CancelAtPeriodEnd())
	assert.True(t, env.owned(t, "seo"))
	assert.Zero(t, env.purchases.Count())

	o, err := env.ownership.OwnershipOf(context.Background(), testUserID, testBusinessID, "legal")
	require.NoError(t, err)
	assert.Equal(t, entitlement.NotOwned, o)
}

func TestChangeSubscription_SwitchRequiresOneTimeTarget(t *testing.T) {
	env := newLifecycleEnv(t)
	sub := env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)

	// Without a target the subscribed block itself is used, and seo is monthly.
	_, err := env.changeUC().Execute(context.Background(), changeCmd(sub.ID(), ActionSwitchToOneTime, ""))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, env.sessions.All())
}
