package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type CompleteCheckoutCommand struct {
	// CheckoutSessionID is our session ID echoed back by the processor.
	CheckoutSessionID string
	PaymentReference  string
	// ExternalSubscriptionIDs maps block name to processor subscription ID.
	ExternalSubscriptionIDs map[string]string
}

type CompleteCheckoutResult struct {
	CheckoutSessionID string
	AlreadyCompleted  bool
	GrantedBlocks     []string
}

// CompleteCheckoutUseCase turns a paid checkout session into purchases or
// subscriptions. The blocks always come from the stored session.
type CompleteCheckoutUseCase struct {
	sessionRepo      checkout.SessionRepository
	purchaseRepo     entitlement.PurchaseRepository
	subscriptionRepo subscription.SubscriptionRepository
	ownership        OwnershipLoader
	gateway          paymentgateway.Gateway
	publisher        events.EventPublisher
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewCompleteCheckoutUseCase(
	sessionRepo checkout.SessionRepository,
	purchaseRepo entitlement.PurchaseRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	ownership OwnershipLoader,
	gateway paymentgateway.Gateway,
	publisher events.EventPublisher,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *CompleteCheckoutUseCase {
	return &CompleteCheckoutUseCase{
		sessionRepo:      sessionRepo,
		purchaseRepo:     purchaseRepo,
		subscriptionRepo: subscriptionRepo,
		ownership:        ownership,
		gateway:          gateway,
		publisher:        publisher,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *CompleteCheckoutUseCase) Execute(ctx context.Context, cmd CompleteCheckoutCommand) (*CompleteCheckoutResult, error) {
	session, err := uc.sessionRepo.GetByID(ctx, cmd.CheckoutSessionID)
	if err != nil {
		uc.logger.Errorw("failed to get checkout session", "error", err, "checkout_session_id", cmd.CheckoutSessionID)
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	if session == nil {
		return nil, apperrors.NewNotFoundError("checkout session not found", cmd.CheckoutSessionID)
	}

	result := &CompleteCheckoutResult{CheckoutSessionID: session.ID(), GrantedBlocks: []string{}}
	if session.Status() == checkout.SessionStatusCompleted {
		result.AlreadyCompleted = true
		return result, nil
	}
	if session.Status() != checkout.SessionStatusPending {
		return nil, apperrors.NewConflictError("checkout session is not pending", string(session.Status()))
	}

	var replaced *subscription.Subscription
	if session.IsSwitch() {
		replaced, err = uc.cancelReplacedSubscription(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	now := uc.clock.Now()
	claimed := false
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Concurrent deliveries of the same event race here; the loser
		// grants nothing.
		ok, err := uc.sessionRepo.CompleteIfPending(txCtx, session.ID(), now)
		if err != nil {
			return err
		}
		claimed = ok
		if !claimed {
			return nil
		}

		if replaced != nil {
			if err := replaced.CancelImmediately(now); err != nil {
				return fmt.Errorf("failed to cancel replaced subscription: %w", err)
			}
			if err := uc.subscriptionRepo.Update(txCtx, replaced); err != nil {
				return fmt.Errorf("failed to update replaced subscription: %w", err)
			}
			if err := uc.publisher.Publish(txCtx, subscription.NewCancelledEvent(replaced, now, "switched_to_one_time", now)); err != nil {
				return fmt.Errorf("failed to record cancellation event: %w", err)
			}
		}

		owned, err := uc.ownership.Load(txCtx, session.UserID(), session.BusinessID())
		if err != nil {
			return fmt.Errorf("failed to reload ownership: %w", err)
		}

		for _, item := range session.Items() {
			if owned[item.BlockName].Owned {
				uc.logger.Warnw("skipping grant of already owned block",
					"checkout_session_id", session.ID(),
					"block_name", item.BlockName,
					"label", owned[item.BlockName].Label,
				)
				continue
			}

			var granted bool
			switch session.Mode() {
			case checkout.ModeOneTime:
				granted, err = uc.grantPurchase(txCtx, session, item, cmd.PaymentReference, now)
			case checkout.ModeSubscription:
				granted, err = uc.startSubscription(txCtx, session, item, cmd.ExternalSubscriptionIDs[item.BlockName], now)
			}
			if err != nil {
				return err
			}
			if granted {
				result.GrantedBlocks = append(result.GrantedBlocks, item.BlockName)
			}
		}

		if _, err := session.Complete(now); err != nil {
			return fmt.Errorf("failed to complete checkout session: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to complete checkout", "error", err, "checkout_session_id", session.ID())
		return nil, err
	}
	if !claimed {
		return uc.resultForSettledSession(ctx, session.ID(), result)
	}

	uc.logger.Infow("checkout completed",
		"checkout_session_id", session.ID(),
		"mode", session.Mode(),
		"user_id", session.UserID(),
		"business_id", session.BusinessID(),
		"granted", result.GrantedBlocks,
	)

	return result, nil
}

// resultForSettledSession answers a delivery that lost the completion race
// with whatever the winning delivery left behind.
func (uc *CompleteCheckoutUseCase) resultForSettledSession(ctx context.Context, id string, result *CompleteCheckoutResult) (*CompleteCheckoutResult, error) {
	current, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	if current == nil {
		return nil, apperrors.NewNotFoundError("checkout session not found", id)
	}
	if current.Status() != checkout.SessionStatusCompleted {
		return nil, apperrors.NewConflictError("checkout session is not pending", string(current.Status()))
	}

	uc.logger.Infow("checkout already completed by another delivery", "checkout_session_id", id)
	result.AlreadyCompleted = true
	return result, nil
}

// cancelReplacedSubscription cancels the subscription a switch session
// replaces at the gateway. The local cancellation happens in the same
// transaction as the purchase grant. A subscription that already ended,
// cancelled or swept to expired, is left alone.
func (uc *CompleteCheckoutUseCase) cancelReplacedSubscription(ctx context.Context, session *checkout.Session) (*subscription.Subscription, error) {
	subID := *session.SwitchFromSubscriptionID()
	sub, err := uc.subscriptionRepo.GetByID(ctx, subID)
	if err != nil {
		uc.logger.Errorw("failed to get replaced subscription", "error", err, "subscription_id", subID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	if sub.Status().IsTerminal() {
		uc.logger.Infow("replaced subscription already ended, granting purchase only",
			"checkout_session_id", session.ID(),
			"subscription_id", subID,
			"status", sub.Status(),
		)
		return nil, nil
	}

	if sub.ExternalSubscriptionID() != "" {
		err = uc.gateway.CancelSubscription(ctx, paymentgateway.CancelSubscriptionRequest{
			ExternalSubscriptionID: sub.ExternalSubscriptionID(),
			AtPeriodEnd:            false,
		})
		if err != nil {
			uc.logger.Errorw("payment gateway failed to cancel subscription", "error", err, "subscription_id", subID)
			return nil, apperrors.NewUpstreamError("failed to cancel subscription at payment processor", err.Error())
		}
	}
	return sub, nil
}

func (uc *CompleteCheckoutUseCase) grantPurchase(ctx context.Context, session *checkout.Session, item checkout.LineItem, paymentRef string, now time.Time) (bool, error) {
	purchase, err := entitlement.NewPurchase(
		session.UserID(), session.BusinessID(), item.BlockName, item.AmountCents,
		catalog.PricingTypeOneTime, paymentRef, session.ID(), now,
	)
	if err != nil {
		return false, fmt.Errorf("failed to build purchase for %s: %w", item.BlockName, err)
	}

	created, err := uc.purchaseRepo.Create(ctx, purchase)
	if err != nil {
		return false, fmt.Errorf("failed to grant purchase of %s: %w", item.BlockName, err)
	}
	if !created {
		return false, nil
	}

	if err := uc.publisher.Publish(ctx, entitlement.NewPurchaseCompletedEvent(purchase, session.CustomerEmail(), now)); err != nil {
		return false, fmt.Errorf("failed to record purchase event: %w", err)
	}
	return true, nil
}

func (uc *CompleteCheckoutUseCase) startSubscription(ctx context.Context, session *checkout.Session, item checkout.LineItem, externalID string, now time.Time) (bool, error) {
	if externalID == "" {
		externalID = session.ExternalSessionID() + ":" + item.BlockName
	}

	sub, err := subscription.NewSubscription(
		session.UserID(), session.BusinessID(), item.BlockName, item.AmountCents,
		externalID, session.CustomerEmail(), now, now.AddDate(0, 1, 0),
	)
	if err != nil {
		return false, fmt.Errorf("failed to build subscription for %s: %w", item.BlockName, err)
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		return false, fmt.Errorf("failed to create subscription for %s: %w", item.BlockName, err)
	}

	if err := uc.publisher.Publish(ctx, subscription.NewStartedEvent(sub, now)); err != nil {
		return false, fmt.Errorf("failed to record subscription event: %w", err)
	}
	return true, nil
}
