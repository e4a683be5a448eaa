package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// OutboxMessageModel is a domain event awaiting delivery by the relay.
type OutboxMessageModel struct {
	ID          string         `gorm:"primarykey;size:36"`
	EventType   string         `gorm:"not null;size:100"`
	AggregateID string         `gorm:"size:64"`
	Payload     datatypes.JSON `gorm:"not null"`
	Status      string         `gorm:"not null;size:20;index:idx_outbox_due,priority:1"`
	Attempts    int            `gorm:"not null;default:0"`
	LastError   string         `gorm:"type:text"`
	AvailableAt time.Time      `gorm:"not null;index:idx_outbox_due,priority:2"`
	DeliveredAt *time.Time
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (OutboxMessageModel) TableName() string {
	return constants.TableOutboxMessages
}
