package models

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
)

// FreeUnlockModel grants a block without payment. One row per
// (user, business, block).
type FreeUnlockModel struct {
	ID         uint      `gorm:"primarykey"`
	UserID     uint      `gorm:"not null;uniqueIndex:uk_free_unlock_scope,priority:1;index:idx_free_unlock_user"`
	BusinessID uint      `gorm:"not null;uniqueIndex:uk_free_unlock_scope,priority:2"`
	BlockName  string    `gorm:"not null;size:100;uniqueIndex:uk_free_unlock_scope,priority:3"`
	UnlockType string    `gorm:"not null;size:20"`
	UnlockedAt time.Time `gorm:"not null"`
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (FreeUnlockModel) TableName() string {
	return constants.TableFreeUnlocks
}
