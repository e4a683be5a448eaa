package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/checkout/dto"
	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/domain/business"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

type SelectAndCheckoutCommand struct {
	UserID        uint
	CustomerEmail string
	dto.SelectAndCheckoutRequest
}

// SelectAndCheckoutUseCase grants the free blocks of a selection and routes
// the paid ones to exactly one checkout flow.
type SelectAndCheckoutUseCase struct {
	snapshots      SnapshotLoader
	ownership      OwnershipLoader
	businessRepo   business.Repository
	freeUnlockRepo entitlement.FreeUnlockRepository
	sessionRepo    checkout.SessionRepository
	gateway        paymentgateway.Gateway
	txManager      db.Transactor
	clock          biztime.Clock
	urls           CheckoutURLs
	logger         logger.Interface
}

func NewSelectAndCheckoutUseCase(
	snapshots SnapshotLoader,
	ownership OwnershipLoader,
	businessRepo business.Repository,
	freeUnlockRepo entitlement.FreeUnlockRepository,
	sessionRepo checkout.SessionRepository,
	gateway paymentgateway.Gateway,
	txManager db.Transactor,
	clock biztime.Clock,
	urls CheckoutURLs,
	logger logger.Interface,
) *SelectAndCheckoutUseCase {
	return &SelectAndCheckoutUseCase{
		snapshots:      snapshots,
		ownership:      ownership,
		businessRepo:   businessRepo,
		freeUnlockRepo: freeUnlockRepo,
		sessionRepo:    sessionRepo,
		gateway:        gateway,
		txManager:      txManager,
		clock:          clock,
		urls:           urls,
		logger:         logger,
	}
}

// Execute returns the plan. A mixed cart yields both the plan (with the free
// blocks already granted) and a ValidationError.
func (uc *SelectAndCheckoutUseCase) Execute(ctx context.Context, cmd SelectAndCheckoutCommand) (*dto.CheckoutPlanDTO, error) {
	if cmd.UserID == 0 {
		return nil, apperrors.NewUnauthorizedError("sign in to select blocks")
	}
	if err := utils.ValidateStruct(cmd.SelectAndCheckoutRequest); err != nil {
		return nil, err
	}

	if err := uc.ensureBusinessOwner(ctx, cmd.UserID, cmd.BusinessID); err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	owned, err := uc.ownership.Load(ctx, cmd.UserID, cmd.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ownership: %w", err)
	}

	plan, err := checkout.RouteSelection(cmd.BlockNames, snapshot, owned)
	if err != nil {
		return nil, toRoutingError(err)
	}

	result := dto.NewCheckoutPlanDTO(plan)

	granted, err := uc.grantFreeBlocks(ctx, cmd.UserID, cmd.BusinessID, plan)
	if err != nil {
		return nil, err
	}
	result.GrantedBlocks = granted

	mode, routed := plan.Mode()
	switch {
	case plan.Route == checkout.RouteRejected:
		uc.logger.Infow("mixed cart rejected",
			"user_id", cmd.UserID,
			"business_id", cmd.BusinessID,
			"granted_free", granted,
		)
		result.CheckoutBlocks = []string{}
		result.AmountCents = 0
		return result, apperrors.NewValidationError(checkout.ErrMixedCart.Error())
	case !routed:
		uc.logger.Infow("free blocks granted",
			"user_id", cmd.UserID,
			"business_id", cmd.BusinessID,
			"granted", granted,
		)
		return result, nil
	}

	session, err := checkout.NewSession(cmd.UserID, cmd.BusinessID, mode, plan.LineItems(), cmd.CustomerEmail, uc.clock.Now())
	if err != nil {
		uc.logger.Errorw("failed to build checkout session", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to build checkout session: %w", err)
	}

	if err := startCheckout(ctx, uc.sessionRepo, uc.gateway, uc.urls, uc.clock, session, uc.logger); err != nil {
		return nil, err
	}

	result.CheckoutSessionID = session.ID()
	result.CheckoutURL = session.CheckoutURL()

	uc.logger.Infow("checkout session created",
		"user_id", cmd.UserID,
		"business_id", cmd.BusinessID,
		"checkout_session_id", session.ID(),
		"mode", mode,
		"blocks", session.BlockNames(),
		"amount_cents", session.AmountCents(),
	)

	return result, nil
}

func (uc *SelectAndCheckoutUseCase) ensureBusinessOwner(ctx context.Context, userID, businessID uint) error {
	biz, err := uc.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		uc.logger.Errorw("failed to get business", "error", err, "business_id", businessID)
		return fmt.Errorf("failed to get business: %w", err)
	}
	if biz == nil || !biz.IsOwnedBy(userID) {
		return apperrors.NewNotFoundError("business not found")
	}
	return nil
}

// grantFreeBlocks inserts a free unlock per free block in one transaction.
// Ownership is checked again right before the inserts; the unique index
// catches whatever still races past the check.
func (uc *SelectAndCheckoutUseCase) grantFreeBlocks(ctx context.Context, userID, businessID uint, plan *checkout.Plan) ([]string, error) {
	granted := []string{}
	if len(plan.FreeBlocks) == 0 {
		return granted, nil
	}

	now := uc.clock.Now()
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		owned, err := uc.ownership.Load(txCtx, userID, businessID)
		if err != nil {
			return fmt.Errorf("failed to reload ownership: %w", err)
		}

		for _, block := range plan.FreeBlocks {
			if owned[block.Name].Owned {
				continue
			}

			unlock, err := entitlement.NewFreeUnlock(userID, businessID, block.Name, entitlement.UnlockTypeFreeBlock, now, nil)
			if err != nil {
				return fmt.Errorf("failed to build free unlock for %s: %w", block.Name, err)
			}

			created, err := uc.freeUnlockRepo.Create(txCtx, unlock)
			if err != nil {
				return fmt.Errorf("failed to grant %s: %w", block.Name, err)
			}
			if created {
				granted = append(granted, block.Name)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to grant free blocks", "error", err, "user_id", userID, "business_id", businessID)
		return nil, err
	}

	return granted, nil
}

// startCheckout persists a pending session and opens it at the gateway. A
// gateway failure marks the session failed and surfaces as UpstreamError.
func startCheckout(
	ctx context.Context,
	sessionRepo checkout.SessionRepository,
	gateway paymentgateway.Gateway,
	urls CheckoutURLs,
	clock biztime.Clock,
	session *checkout.Session,
	log logger.Interface,
) error {
	if err := sessionRepo.Create(ctx, session); err != nil {
		log.Errorw("failed to create checkout session", "error", err, "checkout_session_id", session.ID())
		return fmt.Errorf("failed to create checkout session: %w", err)
	}

	items := session.Items()
	lineItems := make([]paymentgateway.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, paymentgateway.LineItem{
			BlockName:   item.BlockName,
			AmountCents: item.AmountCents,
			Recurring:   session.Mode() == checkout.ModeSubscription,
		})
	}

	resp, err := gateway.CreateCheckoutSession(ctx, paymentgateway.CreateCheckoutSessionRequest{
		ReferenceID:   session.ID(),
		Mode:          paymentgateway.CheckoutMode(session.Mode()),
		LineItems:     lineItems,
		Currency:      urls.Currency,
		CustomerEmail: session.CustomerEmail(),
		SuccessURL:    urls.SuccessURL,
		CancelURL:     urls.CancelURL,
	})
	if err != nil {
		log.Errorw("payment gateway rejected checkout session", "error", err, "checkout_session_id", session.ID())
		if failErr := session.Fail("gateway_error", clock.Now()); failErr == nil {
			if updateErr := sessionRepo.Update(ctx, session); updateErr != nil {
				log.Warnw("failed to mark checkout session failed", "error", updateErr, "checkout_session_id", session.ID())
			}
		}
		return apperrors.NewUpstreamError("payment processor unavailable", err.Error())
	}

	session.AttachExternal(resp.ExternalSessionID, resp.CheckoutURL, clock.Now())
	if err := sessionRepo.Update(ctx, session); err != nil {
		log.Errorw("failed to save checkout session", "error", err, "checkout_session_id", session.ID())
		return fmt.Errorf("failed to save checkout session: %w", err)
	}
	return nil
}

func toRoutingError(err error) error {
	switch {
	case errors.Is(err, checkout.ErrUnknownBlock):
		return apperrors.NewNotFoundError("block not found", err.Error())
	case errors.Is(err, checkout.ErrEmptySelection):
		return apperrors.NewValidationError(err.Error())
	default:
		return fmt.Errorf("failed to route selection: %w", err)
	}
}
