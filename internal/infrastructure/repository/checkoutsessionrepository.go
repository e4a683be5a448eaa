package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/mappers"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type CheckoutSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CheckoutSessionMapper
	logger logger.Interface
}

func NewCheckoutSessionRepository(db *gorm.DB, logger logger.Interface) checkout.SessionRepository {
	return &CheckoutSessionRepositoryImpl{
		db:     db,
		mapper: mappers.NewCheckoutSessionMapper(),
		logger: logger,
	}
}

func (r *CheckoutSessionRepositoryImpl) Create(ctx context.Context, session *checkout.Session) error {
	model, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create checkout session", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create checkout session: %w", err)
	}
	return nil
}

func (r *CheckoutSessionRepositoryImpl) GetByID(ctx context.Context, id string) (*checkout.Session, error) {
	var model models.CheckoutSessionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get checkout session", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// Update writes a session that was still pending in storage. A session
// completed or failed in the meantime yields checkout.ErrSessionNotPending.
func (r *CheckoutSessionRepositoryImpl) Update(ctx context.Context, session *checkout.Session) error {
	model, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CheckoutSessionModel{}).
		Where("id = ? AND status = ?", model.ID, string(checkout.SessionStatusPending)).
		Updates(map[string]interface{}{
			"external_session_id": model.ExternalSessionID,
			"checkout_url":        model.CheckoutURL,
			"status":              model.Status,
			"failure_reason":      model.FailureReason,
			"completed_at":        model.CompletedAt,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update checkout session", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update checkout session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return checkout.ErrSessionNotPending
	}
	return nil
}

func (r *CheckoutSessionRepositoryImpl) CompleteIfPending(ctx context.Context, id string, now time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.CheckoutSessionModel{}).
		Where("id = ? AND status = ?", id, string(checkout.SessionStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(checkout.SessionStatusCompleted),
			"completed_at": now,
			"updated_at":   now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to claim checkout session", "id", id, "error", result.Error)
		return false, fmt.Errorf("failed to complete checkout session: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
