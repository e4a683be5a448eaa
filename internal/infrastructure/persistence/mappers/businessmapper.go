package mappers

import (
	"github.com/bizblocks/bizblocks/internal/domain/business"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
)

func BusinessToEntity(model *models.BusinessModel) (*business.Business, error) {
	if model == nil {
		return nil, nil
	}
	return business.ReconstructBusiness(model.ID, model.OwnerUserID, model.Name, model.CreatedAt, model.UpdatedAt)
}

func BusinessToModel(entity *business.Business) *models.BusinessModel {
	return &models.BusinessModel{
		ID:          entity.ID(),
		OwnerUserID: entity.OwnerUserID(),
		Name:        entity.Name(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}
