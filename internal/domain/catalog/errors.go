package catalog

import "errors"

var (
	ErrBlockNotFound         = errors.New("block not found")
	ErrPricingNotFound       = errors.New("pricing record not found")
	ErrInvalidPricingType    = errors.New("invalid pricing type")
	ErrInvalidPrice          = errors.New("invalid price")
	ErrFreeFlagMismatch      = errors.New("free blocks must use pricing type free")
	ErrBlockNameRequired     = errors.New("block name is required")
	ErrDuplicateCatalogEntry = errors.New("duplicate catalog entry")
	ErrCatalogUnavailable    = errors.New("catalog not loaded")
	ErrPricingUnavailable    = errors.New("pricing not loaded")
)
