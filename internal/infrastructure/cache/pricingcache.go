// Package cache holds Redis-backed decorators for hot read paths.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

const (
	pricingKey       = "catalog:pricing:all"
	basePricingTTL   = 5 * time.Minute
	pricingTTLJitter = time.Minute // TTL range: 5-6 min (anti-stampede)
)

type cachedPricing struct {
	ID                uint      `json:"id"`
	BlockName         string    `json:"block_name"`
	PriceCents        int64     `json:"price_cents"`
	MonthlyPriceCents int64     `json:"monthly_price_cents"`
	PricingType       string    `json:"pricing_type"`
	IsFree            bool      `json:"is_free"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CachedPricingRepository caches the full pricing table in Redis and drops
// the entry whenever a record is upserted. Redis failures fall back to the
// wrapped repository.
type CachedPricingRepository struct {
	inner  catalog.PricingRepository
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

var _ catalog.PricingRepository = (*CachedPricingRepository)(nil)

func NewCachedPricingRepository(inner catalog.PricingRepository, client *redis.Client, ttl time.Duration, logger logger.Interface) *CachedPricingRepository {
	if ttl <= 0 {
		ttl = basePricingTTL
	}
	return &CachedPricingRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedPricingRepository) List(ctx context.Context) ([]*catalog.PricingRecord, error) {
	records, err := r.getCached(ctx)
	if err != nil {
		r.logger.Warnw("pricing cache read failed, using database", "error", err)
	} else if records != nil {
		return records, nil
	}

	records, err = r.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.setCached(ctx, records); err != nil {
		r.logger.Warnw("failed to populate pricing cache", "error", err)
	}
	return records, nil
}

func (r *CachedPricingRepository) GetByBlockName(ctx context.Context, blockName string) (*catalog.PricingRecord, error) {
	return r.inner.GetByBlockName(ctx, blockName)
}

func (r *CachedPricingRepository) Upsert(ctx context.Context, record *catalog.PricingRecord) error {
	if err := r.inner.Upsert(ctx, record); err != nil {
		return err
	}
	if err := r.Invalidate(ctx); err != nil {
		// A stale entry expires with the TTL.
		r.logger.Errorw("failed to invalidate pricing cache", "block_name", record.BlockName(), "error", err)
	}
	return nil
}

// Invalidate drops the cached pricing table.
func (r *CachedPricingRepository) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, pricingKey).Err(); err != nil {
		return fmt.Errorf("failed to delete pricing cache: %w", err)
	}
	return nil
}

// getCached returns nil, nil on a cache miss.
func (r *CachedPricingRepository) getCached(ctx context.Context) ([]*catalog.PricingRecord, error) {
	raw, err := r.client.Get(ctx, pricingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing from cache: %w", err)
	}

	var entries []cachedPricing
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cached pricing: %w", err)
	}

	records := make([]*catalog.PricingRecord, 0, len(entries))
	for _, e := range entries {
		record, err := catalog.ReconstructPricingRecord(e.ID, e.BlockName, e.PriceCents, e.MonthlyPriceCents,
			catalog.PricingType(e.PricingType), e.IsFree, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid cached pricing for %s: %w", e.BlockName, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *CachedPricingRepository) setCached(ctx context.Context, records []*catalog.PricingRecord) error {
	entries := make([]cachedPricing, 0, len(records))
	for _, p := range records {
		entries = append(entries, cachedPricing{
			ID:                p.ID(),
			BlockName:         p.BlockName(),
			PriceCents:        p.PriceCents(),
			MonthlyPriceCents: p.MonthlyPriceCents(),
			PricingType:       p.PricingType().String(),
			IsFree:            p.IsFree(),
			CreatedAt:         p.CreatedAt(),
			UpdatedAt:         p.UpdatedAt(),
		})
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode pricing: %w", err)
	}
	return r.client.Set(ctx, pricingKey, raw, r.jitteredTTL()).Err()
}

func (r *CachedPricingRepository) jitteredTTL() time.Duration {
	jitter := r.ttl / 5
	if r.ttl == basePricingTTL {
		jitter = pricingTTLJitter
	}
	return r.ttl + time.Duration(rand.Int64N(int64(jitter)+1))
}
