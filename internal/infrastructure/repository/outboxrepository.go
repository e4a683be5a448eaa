package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/domain/outbox"
	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/mappers"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// OutboxRepositoryImpl stores outbox messages. It is also the application's
// events.EventPublisher: publishing inside RunInTransaction writes the
// message in the same transaction as the state change.
type OutboxRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OutboxMessageMapper
	logger logger.Interface
}

var (
	_ outbox.Repository     = (*OutboxRepositoryImpl)(nil)
	_ events.EventPublisher = (*OutboxRepositoryImpl)(nil)
)

func NewOutboxRepository(db *gorm.DB, logger logger.Interface) *OutboxRepositoryImpl {
	return &OutboxRepositoryImpl{
		db:     db,
		mapper: mappers.NewOutboxMessageMapper(),
		logger: logger,
	}
}

func (r *OutboxRepositoryImpl) Publish(ctx context.Context, event events.DomainEvent) error {
	message, err := outbox.NewMessage(event)
	if err != nil {
		r.logger.Errorw("failed to build outbox message", "event_type", event.GetEventType(), "error", err)
		return err
	}
	return r.Enqueue(ctx, message)
}

func (r *OutboxRepositoryImpl) Enqueue(ctx context.Context, message *outbox.Message) error {
	model := r.mapper.ToModel(message)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to enqueue outbox message", "event_type", model.EventType, "error", err)
		return fmt.Errorf("failed to enqueue outbox message: %w", err)
	}
	return nil
}

// ClaimDue reads pending messages in availability order. A single relay
// process is expected; messages are not locked between claim and update.
func (r *OutboxRepositoryImpl) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error) {
	var rows []*models.OutboxMessageModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND available_at <= ?", string(outbox.StatusPending), now).
		Order("available_at ASC, created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to claim outbox messages", "error", err)
		return nil, fmt.Errorf("failed to claim outbox messages: %w", err)
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *OutboxRepositoryImpl) Update(ctx context.Context, message *outbox.Message) error {
	model := r.mapper.ToModel(message)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.OutboxMessageModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"attempts":     model.Attempts,
			"last_error":   model.LastError,
			"available_at": model.AvailableAt,
			"delivered_at": model.DeliveredAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update outbox message", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update outbox message: %w", result.Error)
	}
	return nil
}
