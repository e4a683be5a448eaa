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

type FreeUnlockRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EntitlementMapper
	logger logger.Interface
}

func NewFreeUnlockRepository(db *gorm.DB, logger logger.Interface) entitlement.FreeUnlockRepository {
	return &FreeUnlockRepositoryImpl{
		db:     db,
		mapper: mappers.NewEntitlementMapper(),
		logger: logger,
	}
}

// Create relies on the (user, business, block) unique index: a concurrent or
// repeated grant inserts nothing and reports false.
func (r *FreeUnlockRepositoryImpl) Create(ctx context.Context, unlock *entitlement.FreeUnlock) (bool, error) {
	model := r.mapper.FreeUnlockToModel(unlock)

	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to create free unlock", "user_id", model.UserID, "block_name", model.BlockName, "error", result.Error)
		return false, fmt.Errorf("failed to create free unlock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	unlock.SetID(model.ID)
	return true, nil
}

func (r *FreeUnlockRepositoryImpl) ListByUser(ctx context.Context, userID, businessID uint) ([]*entitlement.FreeUnlock, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID)
	if businessID != 0 {
		query = query.Where("business_id = ?", businessID)
	}

	var rows []*models.FreeUnlockModel
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list free unlocks", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list free unlocks: %w", err)
	}

	return r.mapper.FreeUnlocksToEntities(rows)
}
