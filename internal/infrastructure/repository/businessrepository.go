package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/domain/business"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/mappers"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type BusinessRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewBusinessRepository(db *gorm.DB, logger logger.Interface) business.Repository {
	return &BusinessRepositoryImpl{db: db, logger: logger}
}

func (r *BusinessRepositoryImpl) Create(ctx context.Context, b *business.Business) error {
	model := mappers.BusinessToModel(b)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create business", "owner_user_id", model.OwnerUserID, "error", err)
		return fmt.Errorf("failed to create business: %w", err)
	}
	b.SetID(model.ID)
	return nil
}

func (r *BusinessRepositoryImpl) GetByID(ctx context.Context, id uint) (*business.Business, error) {
	var model models.BusinessModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get business", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return mappers.BusinessToEntity(&model)
}

func (r *BusinessRepositoryImpl) ListByOwner(ctx context.Context, ownerUserID uint) ([]*business.Business, error) {
	var rows []*models.BusinessModel
	if err := db.GetTxFromContext(ctx, r.db).Where("owner_user_id = ?", ownerUserID).Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list businesses", "owner_user_id", ownerUserID, "error", err)
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	result := make([]*business.Business, 0, len(rows))
	for _, row := range rows {
		b, err := mappers.BusinessToEntity(row)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, nil
}
