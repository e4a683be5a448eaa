package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// SnapshotLoader returns one consistent resolution of catalog and pricing.
type SnapshotLoader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// SnapshotProvider fetches catalog entries and pricing together and resolves
// them into a snapshot. It keeps no state between calls.
type SnapshotProvider struct {
	source      catalog.Source
	pricingRepo catalog.PricingRepository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewSnapshotProvider(
	source catalog.Source,
	pricingRepo catalog.PricingRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *SnapshotProvider {
	return &SnapshotProvider{
		source:      source,
		pricingRepo: pricingRepo,
		clock:       clock,
		logger:      logger,
	}
}

func (p *SnapshotProvider) Load(ctx context.Context) (*catalog.Snapshot, error) {
	entries, err := p.source.Entries(ctx)
	if err != nil {
		p.logger.Errorw("failed to load catalog entries", "error", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	pricing, err := p.pricingRepo.List(ctx)
	if err != nil {
		p.logger.Errorw("failed to load pricing records", "error", err)
		return nil, fmt.Errorf("failed to load pricing: %w", err)
	}
	if pricing == nil {
		pricing = []*catalog.PricingRecord{}
	}

	snapshot, err := catalog.NewSnapshot(entries, pricing, p.clock.Now())
	if err != nil {
		p.logger.Errorw("failed to resolve catalog snapshot", "error", err)
		return nil, fmt.Errorf("failed to resolve catalog: %w", err)
	}

	if orphaned := snapshot.OrphanedPricing(); len(orphaned) > 0 {
		p.logger.Warnw("pricing records without catalog entry", "block_names", orphaned)
	}
	if unpriced := snapshot.Unpriced(); len(unpriced) > 0 {
		p.logger.Debugw("catalog blocks without pricing resolved as free", "block_names", unpriced)
	}

	return snapshot, nil
}
