package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/domain/business"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

func TestBusinessRepository(t *testing.T) {
	repo := NewBusinessRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	b, err := business.NewBusiness(7, "Acme Bakery", baseTime)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, b))
	require.NotZero(t, b.ID())

	stored, err := repo.GetByID(ctx, b.ID())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Acme Bakery", stored.Name())
	assert.True(t, stored.IsOwnedBy(7))

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	owned, err := repo.ListByOwner(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}
