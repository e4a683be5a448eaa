package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

func mustPricing(t *testing.T, name string, price, monthly int64, pricingType catalog.PricingType) *catalog.PricingRecord {
	t.Helper()
	record, err := catalog.NewPricingRecord(name, price, monthly, pricingType, pricingType == catalog.PricingTypeFree)
	require.NoError(t, err)
	return record
}

func TestPricingRepository_UpsertAndList(t *testing.T) {
	repo := NewPricingRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	logo := mustPricing(t, "logo", 4900, 0, catalog.PricingTypeOneTime)
	require.NoError(t, repo.Upsert(ctx, logo))
	assert.NotZero(t, logo.ID())
	require.NoError(t, repo.Upsert(ctx, mustPricing(t, "ads", 0, 2000, catalog.PricingTypeMonthly)))

	// A fresh record for an existing block name overwrites the stored row.
	replacement := mustPricing(t, "logo", 5900, 0, catalog.PricingTypeOneTime)
	require.NoError(t, repo.Upsert(ctx, replacement))
	assert.Equal(t, logo.ID(), replacement.ID())

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ads", records[0].BlockName())
	assert.Equal(t, "logo", records[1].BlockName())
	assert.Equal(t, int64(5900), records[1].PriceCents())
}

func TestPricingRepository_UpdateExisting(t *testing.T) {
	repo := NewPricingRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	record := mustPricing(t, "seo", 0, 1000, catalog.PricingTypeMonthly)
	require.NoError(t, repo.Upsert(ctx, record))

	stored, err := repo.GetByBlockName(ctx, "seo")
	require.NoError(t, err)
	require.NoError(t, stored.Update(0, 0, catalog.PricingTypeFree, true))
	require.NoError(t, repo.Upsert(ctx, stored))

	reloaded, err := repo.GetByBlockName(ctx, "seo")
	require.NoError(t, err)
	assert.True(t, reloaded.IsFree())
	assert.Equal(t, catalog.PricingTypeFree, reloaded.PricingType())

	missing, err := repo.GetByBlockName(ctx, "SEO")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
