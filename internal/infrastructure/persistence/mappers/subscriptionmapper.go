package mappers

import (
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	vo "github.com/bizblocks/bizblocks/internal/domain/subscription/valueobjects"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(rows []*models.SubscriptionModel) ([]*subscription.Subscription, error)

	FailureToEntity(model *models.PaymentFailureModel) (*subscription.PaymentFailure, error)
	FailureToModel(entity *subscription.PaymentFailure) *models.PaymentFailureModel
	FailuresToEntities(rows []*models.PaymentFailureModel) ([]*subscription.PaymentFailure, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.BusinessID,
		model.BlockName,
		status,
		model.MonthlyPriceCents,
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.CancelAtPeriodEnd,
		vo.PaymentStatus(model.LastPaymentStatus),
		model.PaymentRetryCount,
		model.GracePeriodEnd,
		model.ExternalSubscriptionID,
		model.CustomerEmail,
		model.CancelledAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionModel{
		ID:                     entity.ID(),
		UserID:                 entity.UserID(),
		BusinessID:             entity.BusinessID(),
		BlockName:              entity.BlockName(),
		Status:                 entity.Status().String(),
		MonthlyPriceCents:      entity.MonthlyPriceCents(),
		CurrentPeriodStart:     entity.CurrentPeriodStart(),
		CurrentPeriodEnd:       entity.CurrentPeriodEnd(),
		CancelAtPeriodEnd:      entity.CancelAtPeriodEnd(),
		LastPaymentStatus:      string(entity.LastPaymentStatus()),
		PaymentRetryCount:      entity.PaymentRetryCount(),
		GracePeriodEnd:         entity.GracePeriodEnd(),
		ExternalSubscriptionID: entity.ExternalSubscriptionID(),
		CustomerEmail:          entity.CustomerEmail(),
		CancelledAt:            entity.CancelledAt(),
		Version:                entity.Version(),
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) ToEntities(rows []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.Keyed(rows, m.ToEntity, func(model *models.SubscriptionModel) uint {
		return model.ID
	})
}

func (m *SubscriptionMapperImpl) FailureToEntity(model *models.PaymentFailureModel) (*subscription.PaymentFailure, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructPaymentFailure(
		model.ID,
		model.SubscriptionID,
		model.InvoiceID,
		model.AttemptCount,
		model.FailureReason,
		model.NextRetryDate,
		model.Resolved,
		model.ResolvedAt,
		model.LastReminderSentAt,
		model.ReminderCount,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct payment failure: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) FailureToModel(entity *subscription.PaymentFailure) *models.PaymentFailureModel {
	if entity == nil {
		return nil
	}

	return &models.PaymentFailureModel{
		ID:                 entity.ID(),
		SubscriptionID:     entity.SubscriptionID(),
		InvoiceID:          entity.InvoiceID(),
		AttemptCount:       entity.AttemptCount(),
		FailureReason:      entity.FailureReason(),
		NextRetryDate:      entity.NextRetryDate(),
		Resolved:           entity.IsResolved(),
		ResolvedAt:         entity.ResolvedAt(),
		LastReminderSentAt: entity.LastReminderSentAt(),
		ReminderCount:      entity.ReminderCount(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) FailuresToEntities(rows []*models.PaymentFailureModel) ([]*subscription.PaymentFailure, error) {
	return mapper.Keyed(rows, m.FailureToEntity, func(model *models.PaymentFailureModel) uint {
		return model.ID
	})
}
