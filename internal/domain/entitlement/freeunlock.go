package entitlement

import (
	"fmt"
	"time"
)

// UnlockType describes why a block was unlocked for free.
type UnlockType string

const (
	UnlockTypeFreeBlock UnlockType = "free_block"
	UnlockTypePromotion UnlockType = "promotion"
	UnlockTypeAdmin     UnlockType = "admin"
)

func (t UnlockType) IsValid() bool {
	switch t {
	case UnlockTypeFreeBlock, UnlockTypePromotion, UnlockTypeAdmin:
		return true
	default:
		return false
	}
}

// FreeUnlock grants a block without payment, optionally until expiresAt.
type FreeUnlock struct {
	id         uint
	userID     uint
	businessID uint
	blockName  string
	unlockType UnlockType
	unlockedAt time.Time
	expiresAt  *time.Time
	createdAt  time.Time
}

// NewFreeUnlock creates a free unlock starting at unlockedAt.
func NewFreeUnlock(userID, businessID uint, blockName string, unlockType UnlockType, unlockedAt time.Time, expiresAt *time.Time) (*FreeUnlock, error) {
	if err := validateScope(userID, businessID, blockName); err != nil {
		return nil, err
	}
	if !unlockType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUnlockType, unlockType)
	}
	if expiresAt != nil && !expiresAt.After(unlockedAt) {
		return nil, ErrInvalidExpiry
	}

	return &FreeUnlock{
		userID:     userID,
		businessID: businessID,
		blockName:  blockName,
		unlockType: unlockType,
		unlockedAt: unlockedAt,
		expiresAt:  expiresAt,
		createdAt:  unlockedAt,
	}, nil
}

// ReconstructFreeUnlock reconstructs a free unlock from persistence
func ReconstructFreeUnlock(
	id, userID, businessID uint,
	blockName string,
	unlockType UnlockType,
	unlockedAt time.Time,
	expiresAt *time.Time,
	createdAt time.Time,
) (*FreeUnlock, error) {
	if id == 0 {
		return nil, fmt.Errorf("free unlock ID cannot be zero")
	}
	if err := validateScope(userID, businessID, blockName); err != nil {
		return nil, err
	}

	return &FreeUnlock{
		id:         id,
		userID:     userID,
		businessID: businessID,
		blockName:  blockName,
		unlockType: unlockType,
		unlockedAt: unlockedAt,
		expiresAt:  expiresAt,
		createdAt:  createdAt,
	}, nil
}

func (f *FreeUnlock) ID() uint               { return f.id }
func (f *FreeUnlock) UserID() uint           { return f.userID }
func (f *FreeUnlock) BusinessID() uint       { return f.businessID }
func (f *FreeUnlock) BlockName() string      { return f.blockName }
func (f *FreeUnlock) UnlockType() UnlockType { return f.unlockType }
func (f *FreeUnlock) UnlockedAt() time.Time  { return f.unlockedAt }
func (f *FreeUnlock) ExpiresAt() *time.Time  { return f.expiresAt }
func (f *FreeUnlock) CreatedAt() time.Time   { return f.createdAt }
func (f *FreeUnlock) Label() Label           { return LabelUnlocked }

// GrantsAccessAt reports whether the unlock has not yet expired.
func (f *FreeUnlock) GrantsAccessAt(now time.Time) bool {
	return f.expiresAt == nil || now.Before(*f.expiresAt)
}

// SetID sets the ID after persisting.
func (f *FreeUnlock) SetID(id uint) {
	f.id = id
}

func validateScope(userID, businessID uint, blockName string) error {
	if userID == 0 {
		return ErrUserRequired
	}
	if businessID == 0 {
		return ErrBusinessRequired
	}
	if blockName == "" {
		return ErrBlockNameRequired
	}
	return nil
}
