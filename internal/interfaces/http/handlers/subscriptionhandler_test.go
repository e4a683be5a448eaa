package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subdto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	subusecases "github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers/testutil"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type mockListUserSubscriptionsUseCase struct {
	result []*subdto.SubscriptionDTO
	err    error
	query  subusecases.ListUserSubscriptionsQuery
}

func (m *mockListUserSubscriptionsUseCase) Execute(ctx context.Context, query subusecases.ListUserSubscriptionsQuery) ([]*subdto.SubscriptionDTO, error) {
	m.query = query
	return m.result, m.err
}

type mockChangeSubscriptionUseCase struct {
	result *subdto.ChangeSubscriptionResult
	err    error
	cmd    subusecases.ChangeSubscriptionCommand
}

func (m *mockChangeSubscriptionUseCase) Execute(ctx context.Context, cmd subusecases.ChangeSubscriptionCommand) (*subdto.ChangeSubscriptionResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockCancelSubscriptionUseCase struct {
	result *subdto.CancelSubscriptionResult
	err    error
	cmd    subusecases.CancelSubscriptionCommand
}

func (m *mockCancelSubscriptionUseCase) Execute(ctx context.Context, cmd subusecases.CancelSubscriptionCommand) (*subdto.CancelSubscriptionResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

func newTestSubscriptionHandler(list *mockListUserSubscriptionsUseCase, change *mockChangeSubscriptionUseCase, cancel *mockCancelSubscriptionUseCase) *SubscriptionHandler {
	if list == nil {
		list = &mockListUserSubscriptionsUseCase{}
	}
	if change == nil {
		change = &mockChangeSubscriptionUseCase{}
	}
	if cancel == nil {
		cancel = &mockCancelSubscriptionUseCase{}
	}
	return NewSubscriptionHandler(list, change, cancel, logger.NewNopLogger())
}

func TestSubscriptionHandler_List(t *testing.T) {
	list := &mockListUserSubscriptionsUseCase{result: []*subdto.SubscriptionDTO{
		{ID: 5, BusinessID: 3, BlockName: "seo", Status: "active", EffectiveStatus: "active", MonthlyPriceCents: 1000, HasAccess: true},
	}}
	h := newTestSubscriptionHandler(list, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions", nil)
	testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
	testutil.SetQueryParams(c, map[string]string{"business_id": "3"})
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(10), list.query.UserID)
	assert.Equal(t, uint(3), list.query.BusinessID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var subs []subdto.SubscriptionDTO
	require.NoError(t, json.Unmarshal(resp.Data, &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "seo", subs[0].BlockName)
}

func TestSubscriptionHandler_List_Unauthenticated(t *testing.T) {
	h := newTestSubscriptionHandler(nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/subscriptions", nil)
	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscriptionHandler_Change(t *testing.T) {
	t.Run("upgrade reports proration", func(t *testing.T) {
		proration := int64(500)
		change := &mockChangeSubscriptionUseCase{result: &subdto.ChangeSubscriptionResult{
			Action:               "upgrade",
			SubscriptionID:       5,
			BlockName:            "ads",
			MonthlyPriceCents:    2000,
			ProrationAmountCents: &proration,
		}}
		h := newTestSubscriptionHandler(nil, change, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/5/change",
			map[string]string{"action": "upgrade", "new_block_name": "ads"})
		testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
		testutil.SetURLParam(c, "id", "5")
		h.Change(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(5), change.cmd.SubscriptionID)
		assert.Equal(t, "upgrade", change.cmd.Action)
		assert.Equal(t, "ads", change.cmd.NewBlockName)
		assert.Equal(t, "owner@example.com", change.cmd.CustomerEmail)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var result subdto.ChangeSubscriptionResult
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		require.NotNil(t, result.ProrationAmountCents)
		assert.Equal(t, int64(500), *result.ProrationAmountCents)
	})

	t.Run("switch to one time returns checkout url", func(t *testing.T) {
		change := &mockChangeSubscriptionUseCase{result: &subdto.ChangeSubscriptionResult{
			Action:            "switch_to_one_time",
			SubscriptionID:    5,
			CheckoutSessionID: "cs_2",
			CheckoutURL:       "https://pay.example.com/cs_2",
		}}
		h := newTestSubscriptionHandler(nil, change, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/5/change",
			map[string]string{"action": "switch_to_one_time"})
		testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
		testutil.SetURLParam(c, "id", "5")
		h.Change(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "https://pay.example.com/cs_2")
	})

	t.Run("invalid id", func(t *testing.T) {
		h := newTestSubscriptionHandler(nil, nil, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/x/change", map[string]string{"action": "upgrade"})
		testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
		testutil.SetURLParam(c, "id", "x")
		h.Change(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("someone else's subscription", func(t *testing.T) {
		change := &mockChangeSubscriptionUseCase{err: apperrors.NewNotFoundError("subscription not found")}
		h := newTestSubscriptionHandler(nil, change, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/9/change",
			map[string]string{"action": "upgrade", "new_block_name": "ads"})
		testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
		testutil.SetURLParam(c, "id", "9")
		h.Change(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSubscriptionHandler_Cancel(t *testing.T) {
	effective := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cancel := &mockCancelSubscriptionUseCase{result: &subdto.CancelSubscriptionResult{
		SubscriptionID:    5,
		CancelAtPeriodEnd: true,
		EffectiveAt:       effective,
	}}
	h := newTestSubscriptionHandler(nil, nil, cancel)

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/5/cancel", nil)
	testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
	testutil.SetURLParam(c, "id", "5")
	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(10), cancel.cmd.UserID)
	assert.Equal(t, uint(5), cancel.cmd.SubscriptionID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var result subdto.CancelSubscriptionResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.True(t, result.CancelAtPeriodEnd)
	assert.True(t, effective.Equal(result.EffectiveAt))
}

func TestSubscriptionHandler_Cancel_Conflict(t *testing.T) {
	cancel := &mockCancelSubscriptionUseCase{err: apperrors.NewConflictError("subscription already cancelled")}
	h := newTestSubscriptionHandler(nil, nil, cancel)

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/5/cancel", nil)
	testutil.SetAuthContext(c, 10, "owner@example.com", "customer")
	testutil.SetURLParam(c, "id", "5")
	h.Cancel(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
