package entitlement

import "errors"

var (
	ErrUserRequired      = errors.New("user ID is required")
	ErrBusinessRequired  = errors.New("business ID is required")
	ErrBlockNameRequired = errors.New("block name is required")
	ErrInvalidUnlockType = errors.New("invalid unlock type")
	ErrInvalidExpiry     = errors.New("expiry must be after unlock time")
	ErrInvalidPrice      = errors.New("price paid must not be negative")
	ErrAlreadyOwned      = errors.New("block already owned")
)
