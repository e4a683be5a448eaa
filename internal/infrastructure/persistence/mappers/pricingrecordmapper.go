package mappers

import (
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/mapper"
)

type PricingRecordMapper interface {
	ToEntity(model *models.PricingRecordModel) (*catalog.PricingRecord, error)
	ToModel(entity *catalog.PricingRecord) *models.PricingRecordModel
	ToEntities(rows []*models.PricingRecordModel) ([]*catalog.PricingRecord, error)
}

type PricingRecordMapperImpl struct{}

func NewPricingRecordMapper() PricingRecordMapper {
	return &PricingRecordMapperImpl{}
}

func (m *PricingRecordMapperImpl) ToEntity(model *models.PricingRecordModel) (*catalog.PricingRecord, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := catalog.ReconstructPricingRecord(
		model.ID,
		model.BlockName,
		model.PriceCents,
		model.MonthlyPriceCents,
		catalog.PricingType(model.PricingType),
		model.IsFree,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct pricing record: %w", err)
	}
	return entity, nil
}

func (m *PricingRecordMapperImpl) ToModel(entity *catalog.PricingRecord) *models.PricingRecordModel {
	if entity == nil {
		return nil
	}

	return &models.PricingRecordModel{
		ID:                entity.ID(),
		BlockName:         entity.BlockName(),
		PriceCents:        entity.PriceCents(),
		MonthlyPriceCents: entity.MonthlyPriceCents(),
		PricingType:       entity.PricingType().String(),
		IsFree:            entity.IsFree(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}

func (m *PricingRecordMapperImpl) ToEntities(rows []*models.PricingRecordModel) ([]*catalog.PricingRecord, error) {
	return mapper.Keyed(rows, m.ToEntity, func(model *models.PricingRecordModel) string {
		return model.BlockName
	})
}
