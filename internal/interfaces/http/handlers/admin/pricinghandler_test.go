package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdto "github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	catalogusecases "github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers/testutil"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type mockListPricingUseCase struct {
	result []*catalogdto.PricingRecordDTO
	err    error
}

func (m *mockListPricingUseCase) Execute(ctx context.Context) ([]*catalogdto.PricingRecordDTO, error) {
	return m.result, m.err
}

type mockUpsertPricingUseCase struct {
	result *catalogdto.PricingRecordDTO
	err    error
	cmd    catalogusecases.UpsertPricingCommand
	calls  int
}

func (m *mockUpsertPricingUseCase) Execute(ctx context.Context, cmd catalogusecases.UpsertPricingCommand) (*catalogdto.PricingRecordDTO, error) {
	m.calls++
	m.cmd = cmd
	return m.result, m.err
}

func TestPricingHandler_List(t *testing.T) {
	list := &mockListPricingUseCase{result: []*catalogdto.PricingRecordDTO{
		{ID: 1, BlockName: "logo", PriceCents: 4900, PricingType: "one_time", InCatalog: true},
		{ID: 2, BlockName: "retired", PricingType: "free", IsFree: true, InCatalog: false},
	}}
	h := NewPricingHandler(list, &mockUpsertPricingUseCase{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/pricing", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var records []catalogdto.PricingRecordDTO
	require.NoError(t, json.Unmarshal(resp.Data, &records))
	require.Len(t, records, 2)
	assert.False(t, records[1].InCatalog)
}

func TestPricingHandler_Upsert(t *testing.T) {
	t.Run("updates a block", func(t *testing.T) {
		upsert := &mockUpsertPricingUseCase{result: &catalogdto.PricingRecordDTO{
			ID: 3, BlockName: "seo", MonthlyPriceCents: 1500, PricingType: "monthly", InCatalog: true,
		}}
		h := NewPricingHandler(&mockListPricingUseCase{}, upsert, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPut, "/admin/pricing/seo", map[string]any{
			"monthly_price_cents": 1500,
			"pricing_type":        "monthly",
		})
		testutil.SetURLParam(c, "block_name", "seo")
		h.Upsert(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "seo", upsert.cmd.BlockName)
		assert.Equal(t, int64(1500), upsert.cmd.MonthlyPriceCents)
		assert.Equal(t, "monthly", upsert.cmd.PricingType)
	})

	t.Run("unknown block", func(t *testing.T) {
		upsert := &mockUpsertPricingUseCase{err: apperrors.NewNotFoundError("block not found in catalog")}
		h := NewPricingHandler(&mockListPricingUseCase{}, upsert, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPut, "/admin/pricing/nope", map[string]any{"pricing_type": "free", "is_free": true})
		testutil.SetURLParam(c, "block_name", "nope")
		h.Upsert(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("blank block name", func(t *testing.T) {
		upsert := &mockUpsertPricingUseCase{}
		h := NewPricingHandler(&mockListPricingUseCase{}, upsert, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPut, "/admin/pricing/%20", map[string]any{"pricing_type": "free"})
		testutil.SetURLParam(c, "block_name", " ")
		h.Upsert(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, upsert.calls)
	})
}
