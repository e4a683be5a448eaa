package catalog

import "context"

// Source provides the ordered, read-only list of catalog entries.
type Source interface {
	Entries(ctx context.Context) ([]CatalogEntry, error)
}

// PricingRepository stores pricing records keyed by block name.
type PricingRepository interface {
	List(ctx context.Context) ([]*PricingRecord, error)
	GetByBlockName(ctx context.Context, blockName string) (*PricingRecord, error)
	// Upsert creates the record or updates the one with the same block name.
	Upsert(ctx context.Context, record *PricingRecord) error
}
