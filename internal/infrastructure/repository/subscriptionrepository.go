package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	vo "github.com/bizblocks/bizblocks/internal/domain/subscription/valueobjects"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/mappers"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model := r.mapper.ToModel(subscriptionEntity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := subscriptionEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set subscription ID", "error", err)
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created successfully",
		"id", model.ID,
		"user_id", model.UserID,
		"business_id", model.BusinessID,
		"block_name", model.BlockName,
	)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*subscription.Subscription, error) {
	result := make(map[uint]*subscription.Subscription, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []*models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	for _, entity := range entities {
		result[entity.ID()] = entity
	}
	return result, nil
}

func (r *SubscriptionRepositoryImpl) GetByExternalID(ctx context.Context, externalSubscriptionID string) (*subscription.Subscription, error) {
	if externalSubscriptionID == "" {
		return nil, nil
	}

	var model models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("external_subscription_id = ?", externalSubscriptionID).
		Order("id DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by external ID", "external_subscription_id", externalSubscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

func (r *SubscriptionRepositoryImpl) ListByUser(ctx context.Context, userID, businessID uint) ([]*subscription.Subscription, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID)
	if businessID != 0 {
		query = query.Where("business_id = ?", businessID)
	}

	var rows []*models.SubscriptionModel
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	return entities, nil
}

func (r *SubscriptionRepositoryImpl) ListLapseCandidates(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status IN ?", []string{vo.StatusActive.String(), vo.StatusPastDue.String()}).
		Where(
			r.db.Where("status = ? AND grace_period_end IS NOT NULL AND grace_period_end <= ?", vo.StatusPastDue.String(), now).
				Or("cancel_at_period_end = ? AND current_period_end <= ?", true, now),
		).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list lapse candidates", "error", err)
		return nil, fmt.Errorf("failed to list lapse candidates: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

// Update writes the subscription only if the stored version still matches the
// entity's, then bumps the version on both.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model := r.mapper.ToModel(subscriptionEntity)
	nextVersion := model.Version + 1

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"block_name":               model.BlockName,
			"status":                   model.Status,
			"monthly_price_cents":      model.MonthlyPriceCents,
			"current_period_start":     model.CurrentPeriodStart,
			"current_period_end":       model.CurrentPeriodEnd,
			"cancel_at_period_end":     model.CancelAtPeriodEnd,
			"last_payment_status":      model.LastPaymentStatus,
			"payment_retry_count":      model.PaymentRetryCount,
			"grace_period_end":         model.GracePeriodEnd,
			"external_subscription_id": model.ExternalSubscriptionID,
			"customer_email":           model.CustomerEmail,
			"cancelled_at":             model.CancelledAt,
			"version":                  nextVersion,
			"updated_at":               model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription version conflict", "id", model.ID, "version", model.Version)
		return subscription.ErrConcurrentModification
	}

	subscriptionEntity.SetVersion(nextVersion)
	r.logger.Infow("subscription updated successfully", "id", model.ID, "status", model.Status)
	return nil
}
