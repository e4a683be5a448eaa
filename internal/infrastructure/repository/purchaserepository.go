package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/mappers"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type PurchaseRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EntitlementMapper
	logger logger.Interface
}

func NewPurchaseRepository(db *gorm.DB, logger logger.Interface) entitlement.PurchaseRepository {
	return &PurchaseRepositoryImpl{
		db:     db,
		mapper: mappers.NewEntitlementMapper(),
		logger: logger,
	}
}

func (r *PurchaseRepositoryImpl) Create(ctx context.Context, purchase *entitlement.Purchase) (bool, error) {
	model := r.mapper.PurchaseToModel(purchase)

	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to create purchase", "user_id", model.UserID, "block_name", model.BlockName, "error", result.Error)
		return false, fmt.Errorf("failed to create purchase: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Infow("purchase already recorded",
			"user_id", model.UserID,
			"business_id", model.BusinessID,
			"block_name", model.BlockName,
		)
		return false, nil
	}

	purchase.SetID(model.ID)
	return true, nil
}

func (r *PurchaseRepositoryImpl) ListByUser(ctx context.Context, userID, businessID uint) ([]*entitlement.Purchase, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID)
	if businessID != 0 {
		query = query.Where("business_id = ?", businessID)
	}

	var rows []*models.PurchaseModel
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list purchases", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return r.mapper.PurchasesToEntities(rows)
}
