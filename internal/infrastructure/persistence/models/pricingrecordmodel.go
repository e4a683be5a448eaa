package models

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// PricingRecordModel is the admin-managed price of one catalog block.
type PricingRecordModel struct {
	ID                uint   `gorm:"primarykey"`
	BlockName         string `gorm:"uniqueIndex:uk_pricing_block_name;not null;size:100"`
	PriceCents        int64  `gorm:"not null;default:0"`
	MonthlyPriceCents int64  `gorm:"not null;default:0"`
	PricingType       string `gorm:"not null;size:20"`
	IsFree            bool   `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (PricingRecordModel) TableName() string {
	return constants.TablePricingRecords
}
