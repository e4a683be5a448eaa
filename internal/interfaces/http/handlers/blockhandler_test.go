package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdto "github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	catalogusecases "github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers/testutil"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type mockGetResolvedBlocksUseCase struct {
	result []*catalogdto.ResolvedBlockDTO
	err    error
	query  catalogusecases.GetResolvedBlocksQuery
}

func (m *mockGetResolvedBlocksUseCase) Execute(ctx context.Context, query catalogusecases.GetResolvedBlocksQuery) ([]*catalogdto.ResolvedBlockDTO, error) {
	m.query = query
	return m.result, m.err
}

func TestBlockHandler_ListBlocks(t *testing.T) {
	blocks := []*catalogdto.ResolvedBlockDTO{
		{Name: "website", PricingType: "free", IsFree: true, DisplayPrice: "Free", Owned: true, OwnershipLabel: "Free"},
		{Name: "logo", PricingType: "one_time", PriceCents: 4900, DisplayPrice: "$49.00"},
	}

	t.Run("anonymous caller", func(t *testing.T) {
		uc := &mockGetResolvedBlocksUseCase{result: blocks}
		h := NewBlockHandler(uc, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/blocks", nil)
		h.ListBlocks(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(0), uc.query.UserID)
		assert.Equal(t, uint(0), uc.query.BusinessID)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)

		var got []catalogdto.ResolvedBlockDTO
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Len(t, got, 2)
		assert.Equal(t, "website", got[0].Name)
		assert.Equal(t, "$49.00", got[1].DisplayPrice)
	})

	t.Run("authenticated caller with business", func(t *testing.T) {
		uc := &mockGetResolvedBlocksUseCase{result: blocks}
		h := NewBlockHandler(uc, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/blocks", nil)
		testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
		testutil.SetQueryParams(c, map[string]string{"business_id": "3"})
		h.ListBlocks(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(10), uc.query.UserID)
		assert.Equal(t, uint(3), uc.query.BusinessID)
	})

	t.Run("invalid business id", func(t *testing.T) {
		h := NewBlockHandler(&mockGetResolvedBlocksUseCase{}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/blocks", nil)
		testutil.SetQueryParams(c, map[string]string{"business_id": "abc"})
		h.ListBlocks(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("catalog unavailable", func(t *testing.T) {
		h := NewBlockHandler(&mockGetResolvedBlocksUseCase{err: errors.New("catalog file missing")}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/blocks", nil)
		h.ListBlocks(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
