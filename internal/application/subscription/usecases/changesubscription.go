package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	vo "github.com/bizblocks/bizblocks/internal/domain/subscription/valueobjects"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

const (
	ActionUpgrade         = "upgrade"
	ActionDowngrade       = "downgrade"
	ActionSwitchToOneTime = "switch_to_one_time"
)

type ChangeSubscriptionCommand struct {
	UserID         uint
	CustomerEmail  string
	SubscriptionID uint
	dto.ChangeSubscriptionRequest
}

// ChangeSubscriptionUseCase moves a subscription to another monthly block or
// starts the checkout that replaces it with a one-time purchase.
type ChangeSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	snapshots        SnapshotLoader
	ownership        OwnershipLoader
	gateway          paymentgateway.Gateway
	checkouts        CheckoutStarter
	txManager        db.Transactor
	currency         string
	clock            biztime.Clock
	logger           logger.Interface
}

func NewChangeSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	snapshots SnapshotLoader,
	ownership OwnershipLoader,
	gateway paymentgateway.Gateway,
	checkouts CheckoutStarter,
	txManager db.Transactor,
	currency string,
	clock biztime.Clock,
	logger logger.Interface,
) *ChangeSubscriptionUseCase {
	return &ChangeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		snapshots:        snapshots,
		ownership:        ownership,
		gateway:          gateway,
		checkouts:        checkouts,
		txManager:        txManager,
		currency:         currency,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ChangeSubscriptionUseCase) Execute(ctx context.Context, cmd ChangeSubscriptionCommand) (*dto.ChangeSubscriptionResult, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.NewUnauthorizedError("sign in to manage subscriptions")
	}
	if err := utils.ValidateStruct(cmd.ChangeSubscriptionRequest); err != nil {
		return nil, err
	}

	sub, err := getOwnedSubscription(ctx, uc.subscriptionRepo, cmd.UserID, cmd.SubscriptionID)
	if err != nil {
		if !apperrors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to load subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		}
		return nil, err
	}

	snapshot, err := uc.snapshots.Load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load catalog snapshot", "error", err)
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	if cmd.Action == ActionSwitchToOneTime {
		return uc.switchToOneTime(ctx, cmd, sub, snapshot)
	}
	return uc.changePrice(ctx, cmd, sub, snapshot)
}

func (uc *ChangeSubscriptionUseCase) changePrice(ctx context.Context, cmd ChangeSubscriptionCommand, sub *subscription.Subscription, snapshot *catalog.Snapshot) (*dto.ChangeSubscriptionResult, error) {
	now := uc.clock.Now()

	if status := sub.EffectiveStatus(now); status != vo.StatusActive {
		return nil, apperrors.NewConflictError("only active subscriptions can change block", "status: "+status.String())
	}

	target, ok := snapshot.Lookup(cmd.NewBlockName)
	if !ok {
		return nil, apperrors.NewNotFoundError("block not found", cmd.NewBlockName)
	}
	if !target.IsMonthly() {
		return nil, apperrors.NewValidationError("new block must have monthly pricing", cmd.NewBlockName)
	}
	if target.Name == sub.BlockName() {
		return nil, apperrors.NewValidationError(subscription.ErrSameBlock.Error())
	}

	newPrice := target.MonthlyPriceCents
	oldPrice := sub.MonthlyPriceCents()
	if cmd.Action == ActionUpgrade && newPrice < oldPrice {
		return nil, apperrors.NewValidationError("upgrade requires a price at least the current one")
	}
	if cmd.Action == ActionDowngrade && newPrice > oldPrice {
		return nil, apperrors.NewValidationError("downgrade requires a price at most the current one")
	}

	if err := uc.ensureNotOwned(ctx, sub, target.Name); err != nil {
		return nil, err
	}

	proration, err := sub.ProrationFor(newPrice, now)
	if err != nil {
		return nil, toAppError(err)
	}

	resp, err := uc.gateway.ChangeSubscriptionPrice(ctx, paymentgateway.ChangePriceRequest{
		ExternalSubscriptionID: sub.ExternalSubscriptionID(),
		NewBlockName:           target.Name,
		NewMonthlyPriceCents:   newPrice,
		ProrationAmountCents:   proration,
		Currency:               uc.currency,
	})
	if err != nil {
		uc.logger.Errorw("payment gateway rejected price change", "error", err,
			"subscription_id", sub.ID(),
			"new_block", target.Name,
		)
		return nil, apperrors.NewUpstreamError("payment processor unavailable", err.Error())
	}

	invoiceID := ""
	if resp != nil {
		invoiceID = resp.InvoiceID
	}

	oldBlock := sub.BlockName()
	oldPrice = sub.MonthlyPriceCents()
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := sub.ChangeBlock(target.Name, newPrice, now); err != nil {
			return err
		}
		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		// The processor already bills the new price; these fields are what
		// reconciliation needs.
		uc.logger.Errorw("subscription price changed at payment processor but not saved locally", "error", err,
			"subscription_id", sub.ID(),
			"external_subscription_id", sub.ExternalSubscriptionID(),
			"invoice_id", invoiceID,
			"from_block", oldBlock,
			"to_block", target.Name,
			"from_monthly_price_cents", oldPrice,
			"to_monthly_price_cents", newPrice,
			"proration_amount_cents", proration,
		)
		return nil, toAppError(err)
	}

	uc.logger.Infow("subscription block changed",
		"subscription_id", sub.ID(),
		"action", cmd.Action,
		"from_block", oldBlock,
		"to_block", target.Name,
		"proration_amount_cents", proration,
		"invoice_id", invoiceID,
	)

	return &dto.ChangeSubscriptionResult{
		Action:               cmd.Action,
		SubscriptionID:       sub.ID(),
		BlockName:            sub.BlockName(),
		MonthlyPriceCents:    sub.MonthlyPriceCents(),
		ProrationAmountCents: &proration,
	}, nil
}

// switchToOneTime opens a one-time checkout for the replacement block. The
// subscription is only cancelled once that checkout completes.
func (uc *ChangeSubscriptionUseCase) switchToOneTime(ctx context.Context, cmd ChangeSubscriptionCommand, sub *subscription.Subscription, snapshot *catalog.Snapshot) (*dto.ChangeSubscriptionResult, error) {
	now := uc.clock.Now()

	if status := sub.EffectiveStatus(now); !status.GrantsAccess() {
		return nil, apperrors.NewConflictError("subscription has already ended", "status: "+status.String())
	}

	targetName := cmd.NewBlockName
	if targetName == "" {
		targetName = sub.BlockName()
	}

	target, ok := snapshot.Lookup(targetName)
	if !ok {
		return nil, apperrors.NewNotFoundError("block not found", targetName)
	}
	if !target.IsOneTime() {
		return nil, apperrors.NewValidationError("target block must have one-time pricing", targetName)
	}
	if target.Name != sub.BlockName() {
		if err := uc.ensureNotOwned(ctx, sub, target.Name); err != nil {
			return nil, err
		}
	}

	email := cmd.CustomerEmail
	if email == "" {
		email = sub.CustomerEmail()
	}

	items := []checkout.LineItem{{BlockName: target.Name, AmountCents: target.ChargeCents()}}
	session, err := checkout.NewSession(cmd.UserID, sub.BusinessID(), checkout.ModeOneTime, items, email, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout session: %w", err)
	}
	if err := session.MarkSwitchFrom(sub.ID()); err != nil {
		return nil, fmt.Errorf("failed to link checkout session: %w", err)
	}

	if err := uc.checkouts.Start(ctx, session); err != nil {
		return nil, err
	}

	uc.logger.Infow("switch to one-time checkout created",
		"subscription_id", sub.ID(),
		"checkout_session_id", session.ID(),
		"block", target.Name,
		"amount_cents", session.AmountCents(),
	)

	return &dto.ChangeSubscriptionResult{
		Action:            cmd.Action,
		SubscriptionID:    sub.ID(),
		BlockName:         target.Name,
		CheckoutSessionID: session.ID(),
		CheckoutURL:       session.CheckoutURL(),
	}, nil
}

func (uc *ChangeSubscriptionUseCase) ensureNotOwned(ctx context.Context, sub *subscription.Subscription, blockName string) error {
	owned, err := uc.ownership.Load(ctx, sub.UserID(), sub.BusinessID())
	if err != nil {
		uc.logger.Errorw("failed to load ownership", "error", err, "user_id", sub.UserID())
		return fmt.Errorf("failed to load ownership: %w", err)
	}
	if o := owned[blockName]; o.Owned {
		return apperrors.NewConflictError("block already owned", blockName+" ("+string(o.Label)+")")
	}
	return nil
}
