package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/mappers"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type PricingRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PricingRecordMapper
	logger logger.Interface
}

func NewPricingRepository(db *gorm.DB, logger logger.Interface) *PricingRepositoryImpl {
	return &PricingRepositoryImpl{
		db:     db,
		mapper: mappers.NewPricingRecordMapper(),
		logger: logger,
	}
}

// List returns every pricing record ordered by block name. The result is
// never nil so callers can tell an empty table from a failed read.
func (r *PricingRepositoryImpl) List(ctx context.Context) ([]*catalog.PricingRecord, error) {
	var rows []*models.PricingRecordModel
	if err := db.GetTxFromContext(ctx, r.db).Order("block_name ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list pricing records", "error", err)
		return nil, fmt.Errorf("failed to list pricing records: %w", err)
	}

	records, err := r.mapper.ToEntities(rows)
	if err != nil {
		r.logger.Errorw("failed to map pricing records", "error", err)
		return nil, fmt.Errorf("failed to map pricing records: %w", err)
	}
	if records == nil {
		records = []*catalog.PricingRecord{}
	}
	return records, nil
}

func (r *PricingRepositoryImpl) GetByBlockName(ctx context.Context, blockName string) (*catalog.PricingRecord, error) {
	var model models.PricingRecordModel
	if err := db.GetTxFromContext(ctx, r.db).Where("block_name = ?", blockName).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get pricing record", "block_name", blockName, "error", err)
		return nil, fmt.Errorf("failed to get pricing record: %w", err)
	}

	record, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map pricing record", "block_name", blockName, "error", err)
		return nil, fmt.Errorf("failed to map pricing record: %w", err)
	}
	return record, nil
}

// Upsert inserts the record or overwrites the monetization columns of the
// row with the same block name.
func (r *PricingRepositoryImpl) Upsert(ctx context.Context, record *catalog.PricingRecord) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if record.ID() != 0 {
		result := tx.Model(&models.PricingRecordModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"price_cents":         model.PriceCents,
				"monthly_price_cents": model.MonthlyPriceCents,
				"pricing_type":        model.PricingType,
				"is_free":             model.IsFree,
				"updated_at":          model.UpdatedAt,
			})
		if result.Error != nil {
			r.logger.Errorw("failed to update pricing record", "block_name", model.BlockName, "error", result.Error)
			return fmt.Errorf("failed to update pricing record: %w", result.Error)
		}
		return nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "block_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_cents", "monthly_price_cents", "pricing_type", "is_free", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert pricing record", "block_name", model.BlockName, "error", err)
		return fmt.Errorf("failed to upsert pricing record: %w", err)
	}

	// The driver's last insert ID is unreliable when the upsert updated an
	// existing row, so read it back.
	var ids []uint
	if err := tx.Model(&models.PricingRecordModel{}).
		Where("block_name = ?", model.BlockName).
		Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to read pricing record ID: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("pricing record %s missing after upsert", model.BlockName)
	}
	if err := record.SetID(ids[0]); err != nil {
		return fmt.Errorf("failed to set pricing record ID: %w", err)
	}
	return nil
}
