package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// CheckoutSessionModel is a checkout handed to the payment processor. Items
// holds the quoted line items as JSON.
type CheckoutSessionModel struct {
	ID                       string         `gorm:"primarykey;size:36"`
	UserID                   uint           `gorm:"not null;index:idx_checkout_session_user"`
	BusinessID               uint           `gorm:"not null"`
	Mode                     string         `gorm:"not null;size:20"`
	Items                    datatypes.JSON `gorm:"not null"`
	CustomerEmail            string         `gorm:"size:255"`
	ExternalSessionID        string         `gorm:"size:255;index:idx_checkout_session_external"`
	CheckoutURL              string         `gorm:"size:1024"`
	Status                   string         `gorm:"not null;size:20"`
	SwitchFromSubscriptionID *uint
	FailureReason            string `gorm:"size:500"`
	CompletedAt              *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName specifies the table name for GORM
func (CheckoutSessionModel) TableName() string {
	return constants.TableCheckoutSessions
}
