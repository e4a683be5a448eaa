package catalog

import (
	"fmt"
	"sort"
	"time"
)

// Snapshot is one consistent resolution of catalog and pricing. Callers fetch
// a fresh snapshot per request and pass it explicitly to the checkout router
// and the ownership resolver.
type Snapshot struct {
	blocks   []ResolvedBlock
	byName   map[string]int
	orphaned []string
	takenAt  time.Time
}

// NewSnapshot resolves entries against pricing. Both inputs must be present;
// an empty but non-nil pricing slice is valid.
func NewSnapshot(entries []CatalogEntry, pricing []*PricingRecord, takenAt time.Time) (*Snapshot, error) {
	if entries == nil {
		return nil, ErrCatalogUnavailable
	}
	if pricing == nil {
		return nil, ErrPricingUnavailable
	}

	byName := make(map[string]int, len(entries))
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byName[entry.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCatalogEntry, entry.Name)
		}
		byName[entry.Name] = i
	}

	pricingByName := make(map[string]*PricingRecord, len(pricing))
	var orphaned []string
	for _, record := range pricing {
		if record == nil {
			continue
		}
		pricingByName[record.BlockName()] = record
		if _, ok := byName[record.BlockName()]; !ok {
			orphaned = append(orphaned, record.BlockName())
		}
	}
	sort.Strings(orphaned)

	return &Snapshot{
		blocks:   Resolve(entries, pricingByName),
		byName:   byName,
		orphaned: orphaned,
		takenAt:  takenAt,
	}, nil
}

// Blocks returns the resolved blocks in catalog order.
func (s *Snapshot) Blocks() []ResolvedBlock {
	out := make([]ResolvedBlock, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Lookup returns the resolved block with the exact given name.
func (s *Snapshot) Lookup(name string) (ResolvedBlock, bool) {
	i, ok := s.byName[name]
	if !ok {
		return ResolvedBlock{}, false
	}
	return s.blocks[i], true
}

// Len returns the number of resolved blocks.
func (s *Snapshot) Len() int {
	return len(s.blocks)
}

// OrphanedPricing lists pricing records whose block name has no catalog entry.
func (s *Snapshot) OrphanedPricing() []string {
	return s.orphaned
}

// Unpriced lists catalog blocks that fell back to free because no pricing
// record matched.
func (s *Snapshot) Unpriced() []string {
	var names []string
	for _, b := range s.blocks {
		if !b.HasPricing {
			names = append(names, b.Name)
		}
	}
	return names
}

// TakenAt returns when the underlying data was fetched.
func (s *Snapshot) TakenAt() time.Time {
	return s.takenAt
}
