package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID                     uint      `gorm:"primarykey"`
	UserID                 uint      `gorm:"not null;index:idx_subscription_user,priority:1"`
	BusinessID             uint      `gorm:"not null;index:idx_subscription_user,priority:2"`
	BlockName              string    `gorm:"not null;size:100"`
	Status                 string    `gorm:"not null;size:20;index:idx_subscription_status"`
	MonthlyPriceCents      int64     `gorm:"not null"`
	CurrentPeriodStart     time.Time `gorm:"not null"`
	CurrentPeriodEnd       time.Time `gorm:"not null"`
	CancelAtPeriodEnd      bool      `gorm:"not null;default:false"`
	LastPaymentStatus      string    `gorm:"size:20"`
	PaymentRetryCount      int       `gorm:"not null;default:0"`
	GracePeriodEnd         *time.Time
	ExternalSubscriptionID string `gorm:"size:255;index:idx_subscription_external_id"`
	CustomerEmail          string `gorm:"size:255"`
	CancelledAt            *time.Time
	Version                int `gorm:"not null;default:1"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
