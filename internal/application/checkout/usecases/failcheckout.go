package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type FailCheckoutCommand struct {
	CheckoutSessionID string
	Reason            string
}

// FailCheckoutUseCase records an abandoned or declined checkout. Nothing is
// granted and a replaced subscription stays untouched.
type FailCheckoutUseCase struct {
	sessionRepo checkout.SessionRepository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewFailCheckoutUseCase(
	sessionRepo checkout.SessionRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *FailCheckoutUseCase {
	return &FailCheckoutUseCase{
		sessionRepo: sessionRepo,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *FailCheckoutUseCase) Execute(ctx context.Context, cmd FailCheckoutCommand) error {
	session, err := uc.sessionRepo.GetByID(ctx, cmd.CheckoutSessionID)
	if err != nil {
		uc.logger.Errorw("failed to get checkout session", "error", err, "checkout_session_id", cmd.CheckoutSessionID)
		return fmt.Errorf("failed to get checkout session: %w", err)
	}
	if session == nil {
		return apperrors.NewNotFoundError("checkout session not found", cmd.CheckoutSessionID)
	}

	if session.Status() != checkout.SessionStatusPending {
		uc.logger.Infow("ignoring failure of settled checkout session",
			"checkout_session_id", session.ID(),
			"status", session.Status(),
		)
		return nil
	}

	if err := session.Fail(cmd.Reason, uc.clock.Now()); err != nil {
		return fmt.Errorf("failed to mark checkout session failed: %w", err)
	}
	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, checkout.ErrSessionNotPending) {
			uc.logger.Infow("checkout session settled before failure was recorded", "checkout_session_id", session.ID())
			return nil
		}
		uc.logger.Errorw("failed to update checkout session", "error", err, "checkout_session_id", session.ID())
		return fmt.Errorf("failed to update checkout session: %w", err)
	}

	uc.logger.Infow("checkout session failed",
		"checkout_session_id", session.ID(),
		"reason", cmd.Reason,
		"is_switch", session.IsSwitch(),
	)
	return nil
}
