package models

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// PaymentFailureModel tracks one unpaid invoice of a subscription.
type PaymentFailureModel struct {
	ID                 uint   `gorm:"primarykey"`
	SubscriptionID     uint   `gorm:"not null;uniqueIndex:uk_payment_failure_invoice,priority:1"`
	InvoiceID          string `gorm:"not null;size:255;uniqueIndex:uk_payment_failure_invoice,priority:2"`
	AttemptCount       int    `gorm:"not null;default:1"`
	FailureReason      string `gorm:"size:500"`
	NextRetryDate      *time.Time
	Resolved           bool `gorm:"not null;default:false;index:idx_payment_failure_resolved"`
	ResolvedAt         *time.Time
	LastReminderSentAt *time.Time
	ReminderCount      int       `gorm:"not null;default:0"`
	CreatedAt          time.Time `gorm:"index:idx_payment_failure_created"`
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (PaymentFailureModel) TableName() string {
	return constants.TablePaymentFailures
}
