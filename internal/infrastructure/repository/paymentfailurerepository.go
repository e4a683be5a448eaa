package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/mappers"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

var allowedPaymentFailureSortFields = map[string]string{
	"id":         "payment_failures.id",
	"created_at": "payment_failures.created_at",
	"updated_at": "payment_failures.updated_at",
}

type PaymentFailureRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewPaymentFailureRepository(db *gorm.DB, logger logger.Interface) subscription.PaymentFailureRepository {
	return &PaymentFailureRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *PaymentFailureRepositoryImpl) Create(ctx context.Context, failure *subscription.PaymentFailure) error {
	model := r.mapper.FailureToModel(failure)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment failure",
			"subscription_id", model.SubscriptionID,
			"invoice_id", model.InvoiceID,
			"error", err,
		)
		return fmt.Errorf("failed to create payment failure: %w", err)
	}

	failure.SetID(model.ID)
	return nil
}

func (r *PaymentFailureRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.PaymentFailure, error) {
	var model models.PaymentFailureModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment failure", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get payment failure: %w", err)
	}
	return r.mapper.FailureToEntity(&model)
}

func (r *PaymentFailureRepositoryImpl) GetBySubscriptionAndInvoice(ctx context.Context, subscriptionID uint, invoiceID string) (*subscription.PaymentFailure, error) {
	var model models.PaymentFailureModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND invoice_id = ?", subscriptionID, invoiceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment failure by invoice", "subscription_id", subscriptionID, "invoice_id", invoiceID, "error", err)
		return nil, fmt.Errorf("failed to get payment failure: %w", err)
	}
	return r.mapper.FailureToEntity(&model)
}

func (r *PaymentFailureRepositoryImpl) ListUnresolvedBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.PaymentFailure, error) {
	var rows []*models.PaymentFailureModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ? AND resolved = ?", subscriptionID, false).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list unresolved payment failures", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list payment failures: %w", err)
	}
	return r.mapper.FailuresToEntities(rows)
}

// List filters payment failures for the admin listing. The email search joins
// subscriptions and matches the lowercased customer email.
func (r *PaymentFailureRepositoryImpl) List(ctx context.Context, filter subscription.PaymentFailureFilter) ([]*subscription.PaymentFailure, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentFailureModel{})

	switch filter.Status {
	case subscription.FailureStatusOpen:
		query = query.Where("payment_failures.resolved = ?", false)
	case subscription.FailureStatusResolved:
		query = query.Where("payment_failures.resolved = ?", true)
	}
	if filter.From != nil {
		query = query.Where("payment_failures.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payment_failures.created_at <= ?", *filter.To)
	}
	if filter.EmailSearch != "" {
		query = query.
			Joins("JOIN "+constants.TableSubscriptions+" ON "+constants.TableSubscriptions+".id = payment_failures.subscription_id").
			Where("LOWER("+constants.TableSubscriptions+".customer_email) LIKE ?", "%"+filter.EmailSearch+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count payment failures", "error", err)
		return nil, 0, fmt.Errorf("failed to count payment failures: %w", err)
	}

	var rows []*models.PaymentFailureModel
	if err := query.
		Select("payment_failures.*").
		Scopes(
			db.OrderBy(filter.Sort, allowedPaymentFailureSortFields, "payment_failures.id DESC"),
			db.Paginate(filter.Page),
		).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list payment failures", "error", err)
		return nil, 0, fmt.Errorf("failed to list payment failures: %w", err)
	}

	failures, err := r.mapper.FailuresToEntities(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map payment failures: %w", err)
	}
	return failures, total, nil
}

// Update writes attempt and resolution state. Reminder columns belong to
// TryMarkReminderSent alone, so a stale copy cannot reopen the cooldown.
func (r *PaymentFailureRepositoryImpl) Update(ctx context.Context, failure *subscription.PaymentFailure) error {
	model := r.mapper.FailureToModel(failure)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentFailureModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"attempt_count":   model.AttemptCount,
			"failure_reason":  model.FailureReason,
			"next_retry_date": model.NextRetryDate,
			"resolved":        model.Resolved,
			"resolved_at":     model.ResolvedAt,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update payment failure", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update payment failure: %w", result.Error)
	}
	return nil
}

// TryMarkReminderSent is a single conditional UPDATE, so two admins clicking
// remind at the same time send one reminder.
func (r *PaymentFailureRepositoryImpl) TryMarkReminderSent(ctx context.Context, id uint, now time.Time, cooldown time.Duration) (bool, error) {
	threshold := now.Add(-cooldown)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentFailureModel{}).
		Where("id = ? AND resolved = ?", id, false).
		Where("last_reminder_sent_at IS NULL OR last_reminder_sent_at <= ?", threshold).
		Updates(map[string]interface{}{
			"reminder_count":        gorm.Expr("reminder_count + 1"),
			"last_reminder_sent_at": now,
			"updated_at":            now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark reminder sent", "id", id, "error", result.Error)
		return false, fmt.Errorf("failed to mark reminder sent: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
