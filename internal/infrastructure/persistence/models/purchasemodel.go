package models

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// PurchaseModel is a completed one-time payment for a block.
type PurchaseModel struct {
	ID                uint      `gorm:"primarykey"`
	UserID            uint      `gorm:"not null;uniqueIndex:uk_purchase_scope,priority:1;index:idx_purchase_user"`
	BusinessID        uint      `gorm:"not null;uniqueIndex:uk_purchase_scope,priority:2"`
	BlockName         string    `gorm:"not null;size:100;uniqueIndex:uk_purchase_scope,priority:3"`
	PricePaidCents    int64     `gorm:"not null"`
	PricingType       string    `gorm:"not null;size:20"`
	PaymentReference  string    `gorm:"size:255"`
	CheckoutSessionID string    `gorm:"size:36;index:idx_purchase_checkout_session"`
	PurchasedAt       time.Time `gorm:"not null"`
	CreatedAt         time.Time
}

// TableName specifies the table name for GORM
func (PurchaseModel) TableName() string {
	return constants.TablePurchases
}
