package models

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// BusinessModel is a business profile owned by one user.
type BusinessModel struct {
	ID          uint   `gorm:"primarykey"`
	OwnerUserID uint   `gorm:"not null;index:idx_business_owner"`
	Name        string `gorm:"not null;size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (BusinessModel) TableName() string {
	return constants.TableBusinesses
}
