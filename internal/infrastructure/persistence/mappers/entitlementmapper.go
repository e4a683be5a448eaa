package mappers

import (
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/mapper"
)

// EntitlementMapper converts the two ownership tables owned by the
// entitlement package. Subscriptions have their own mapper.
type EntitlementMapper interface {
	FreeUnlockToEntity(model *models.FreeUnlockModel) (*entitlement.FreeUnlock, error)
	FreeUnlockToModel(entity *entitlement.FreeUnlock) *models.FreeUnlockModel
	FreeUnlocksToEntities(rows []*models.FreeUnlockModel) ([]*entitlement.FreeUnlock, error)

	PurchaseToEntity(model *models.PurchaseModel) (*entitlement.Purchase, error)
	PurchaseToModel(entity *entitlement.Purchase) *models.PurchaseModel
	PurchasesToEntities(rows []*models.PurchaseModel) ([]*entitlement.Purchase, error)
}

type EntitlementMapperImpl struct{}

func NewEntitlementMapper() EntitlementMapper {
	return &EntitlementMapperImpl{}
}

func (m *EntitlementMapperImpl) FreeUnlockToEntity(model *models.FreeUnlockModel) (*entitlement.FreeUnlock, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := entitlement.ReconstructFreeUnlock(
		model.ID,
		model.UserID,
		model.BusinessID,
		model.BlockName,
		entitlement.UnlockType(model.UnlockType),
		model.UnlockedAt,
		model.ExpiresAt,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct free unlock: %w", err)
	}
	return entity, nil
}

func (m *EntitlementMapperImpl) FreeUnlockToModel(entity *entitlement.FreeUnlock) *models.FreeUnlockModel {
	if entity == nil {
		return nil
	}

	return &models.FreeUnlockModel{
		ID:         entity.ID(),
		UserID:     entity.UserID(),
		BusinessID: entity.BusinessID(),
		BlockName:  entity.BlockName(),
		UnlockType: string(entity.UnlockType()),
		UnlockedAt: entity.UnlockedAt(),
		ExpiresAt:  entity.ExpiresAt(),
		CreatedAt:  entity.CreatedAt(),
	}
}

func (m *EntitlementMapperImpl) FreeUnlocksToEntities(rows []*models.FreeUnlockModel) ([]*entitlement.FreeUnlock, error) {
	return mapper.Keyed(rows, m.FreeUnlockToEntity, func(model *models.FreeUnlockModel) uint {
		return model.ID
	})
}

func (m *EntitlementMapperImpl) PurchaseToEntity(model *models.PurchaseModel) (*entitlement.Purchase, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := entitlement.ReconstructPurchase(
		model.ID,
		model.UserID,
		model.BusinessID,
		model.BlockName,
		model.PricePaidCents,
		catalog.PricingType(model.PricingType),
		model.PaymentReference,
		model.CheckoutSessionID,
		model.PurchasedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct purchase: %w", err)
	}
	return entity, nil
}

func (m *EntitlementMapperImpl) PurchaseToModel(entity *entitlement.Purchase) *models.PurchaseModel {
	if entity == nil {
		return nil
	}

	return &models.PurchaseModel{
		ID:                entity.ID(),
		UserID:            entity.UserID(),
		BusinessID:        entity.BusinessID(),
		BlockName:         entity.BlockName(),
		PricePaidCents:    entity.PricePaidCents(),
		PricingType:       entity.PricingType().String(),
		PaymentReference:  entity.PaymentReference(),
		CheckoutSessionID: entity.CheckoutSessionID(),
		PurchasedAt:       entity.PurchasedAt(),
	}
}

func (m *EntitlementMapperImpl) PurchasesToEntities(rows []*models.PurchaseModel) ([]*entitlement.Purchase, error) {
	return mapper.Keyed(rows, m.PurchaseToEntity, func(model *models.PurchaseModel) uint {
		return model.ID
	})
}
