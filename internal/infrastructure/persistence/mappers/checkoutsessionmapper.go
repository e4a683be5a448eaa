package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
)

type CheckoutSessionMapper interface {
	ToEntity(model *models.CheckoutSessionModel) (*checkout.Session, error)
	ToModel(entity *checkout.Session) (*models.CheckoutSessionModel, error)
}

type CheckoutSessionMapperImpl struct{}

func NewCheckoutSessionMapper() CheckoutSessionMapper {
	return &CheckoutSessionMapperImpl{}
}

func (m *CheckoutSessionMapperImpl) ToEntity(model *models.CheckoutSessionModel) (*checkout.Session, error) {
	if model == nil {
		return nil, nil
	}

	var items []checkout.LineItem
	if len(model.Items) > 0 {
		if err := json.Unmarshal(model.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal line items: %w", err)
		}
	}

	entity, err := checkout.ReconstructSession(
		model.ID,
		model.UserID,
		model.BusinessID,
		checkout.Mode(model.Mode),
		items,
		model.CustomerEmail,
		model.ExternalSessionID,
		model.CheckoutURL,
		checkout.SessionStatus(model.Status),
		model.SwitchFromSubscriptionID,
		model.FailureReason,
		model.CompletedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct checkout session: %w", err)
	}
	return entity, nil
}

func (m *CheckoutSessionMapperImpl) ToModel(entity *checkout.Session) (*models.CheckoutSessionModel, error) {
	if entity == nil {
		return nil, nil
	}

	items, err := json.Marshal(entity.Items())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line items: %w", err)
	}

	return &models.CheckoutSessionModel{
		ID:                       entity.ID(),
		UserID:                   entity.UserID(),
		BusinessID:               entity.BusinessID(),
		Mode:                     string(entity.Mode()),
		Items:                    datatypes.JSON(items),
		CustomerEmail:            entity.CustomerEmail(),
		ExternalSessionID:        entity.ExternalSessionID(),
		CheckoutURL:              entity.CheckoutURL(),
		Status:                   string(entity.Status()),
		SwitchFromSubscriptionID: entity.SwitchFromSubscriptionID(),
		FailureReason:            entity.FailureReason(),
		CompletedAt:              entity.CompletedAt(),
		CreatedAt:                entity.CreatedAt(),
		UpdatedAt:                entity.UpdatedAt(),
	}, nil
}
