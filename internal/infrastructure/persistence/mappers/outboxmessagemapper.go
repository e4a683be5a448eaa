package mappers

import (
	"gorm.io/datatypes"

	"github.com/bizblocks/bizblocks/internal/domain/outbox"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/mapper"
)

type OutboxMessageMapper interface {
	ToEntity(model *models.OutboxMessageModel) *outbox.Message
	ToModel(entity *outbox.Message) *models.OutboxMessageModel
	ToEntities(rows []*models.OutboxMessageModel) []*outbox.Message
}

type OutboxMessageMapperImpl struct{}

func NewOutboxMessageMapper() OutboxMessageMapper {
	return &OutboxMessageMapperImpl{}
}

func (m *OutboxMessageMapperImpl) ToEntity(model *models.OutboxMessageModel) *outbox.Message {
	if model == nil {
		return nil
	}

	return outbox.ReconstructMessage(
		model.ID,
		model.EventType,
		model.AggregateID,
		[]byte(model.Payload),
		outbox.Status(model.Status),
		model.Attempts,
		model.LastError,
		model.AvailableAt,
		model.DeliveredAt,
		model.CreatedAt,
	)
}

func (m *OutboxMessageMapperImpl) ToModel(entity *outbox.Message) *models.OutboxMessageModel {
	if entity == nil {
		return nil
	}

	return &models.OutboxMessageModel{
		ID:          entity.ID(),
		EventType:   entity.EventType(),
		AggregateID: entity.AggregateID(),
		Payload:     datatypes.JSON(entity.Payload()),
		Status:      string(entity.Status()),
		Attempts:    entity.Attempts(),
		LastError:   entity.LastError(),
		AvailableAt: entity.AvailableAt(),
		DeliveredAt: entity.DeliveredAt(),
		CreatedAt:   entity.CreatedAt(),
	}
}

func (m *OutboxMessageMapperImpl) ToEntities(rows []*models.OutboxMessageModel) []*outbox.Message {
	return mapper.Rows(rows, m.ToEntity)
}
