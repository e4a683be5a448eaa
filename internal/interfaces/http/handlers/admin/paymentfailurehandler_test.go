package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindto "github.com/bizblocks/bizblocks/internal/application/admin/dto"
	adminusecases "github.com/bizblocks/bizblocks/internal/application/admin/usecases"
	subdto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	subusecases "github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers/testutil"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type mockListPaymentFailuresUseCase struct {
	result *adminusecases.ListPaymentFailuresResult
	err    error
	query  adminusecases.ListPaymentFailuresQuery
}

func (m *mockListPaymentFailuresUseCase) Execute(ctx context.Context, query adminusecases.ListPaymentFailuresQuery) (*adminusecases.ListPaymentFailuresResult, error) {
	m.query = query
	return m.result, m.err
}

type mockSendPaymentReminderUseCase struct {
	result *subdto.ReminderResult
	err    error
	cmd    subusecases.SendPaymentReminderCommand
}

func (m *mockSendPaymentReminderUseCase) Execute(ctx context.Context, cmd subusecases.SendPaymentReminderCommand) (*subdto.ReminderResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockResolvePaymentFailureUseCase struct {
	result *subdto.PaymentFailureDTO
	err    error
	cmd    subusecases.ResolvePaymentFailureCommand
}

func (m *mockResolvePaymentFailureUseCase) Execute(ctx context.Context, cmd subusecases.ResolvePaymentFailureCommand) (*subdto.PaymentFailureDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

func TestPaymentFailureHandler_List(t *testing.T) {
	list := &mockListPaymentFailuresUseCase{result: &adminusecases.ListPaymentFailuresResult{
		Items: []*admindto.PaymentFailureListItem{{
			PaymentFailureDTO: subdto.PaymentFailureDTO{ID: 1, SubscriptionID: 5, InvoiceID: "in_1", AttemptCount: 2},
			CustomerEmail:     "owner@example.com",
			BlockName:         "seo",
			CanRemind:         true,
		}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}}
	h := NewPaymentFailureHandler(list, &mockSendPaymentReminderUseCase{}, &mockResolvePaymentFailureUseCase{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/payment-failures", nil)
	testutil.SetQueryParams(c, map[string]string{
		"status": "open",
		"from":   "2026-03-01",
		"to":     "2026-03-31",
		"email":  "Owner@",
		"page":   "1",
	})
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "open", list.query.Status)
	assert.Equal(t, "2026-03-01", list.query.From)
	assert.Equal(t, "2026-03-31", list.query.To)
	assert.Equal(t, "Owner@", list.query.Email)
	assert.Equal(t, 1, list.query.Page)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(1), data.Total)

	var items []admindto.PaymentFailureListItem
	require.NoError(t, json.Unmarshal(data.Items, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "in_1", items[0].InvoiceID)
	assert.True(t, items[0].CanRemind)
}

func TestPaymentFailureHandler_List_InvalidFilter(t *testing.T) {
	list := &mockListPaymentFailuresUseCase{err: apperrors.NewValidationError("Validation failed", "status must be one of [open resolved]")}
	h := NewPaymentFailureHandler(list, &mockSendPaymentReminderUseCase{}, &mockResolvePaymentFailureUseCase{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/payment-failures", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "pending"})
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentFailureHandler_Remind(t *testing.T) {
	sentAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("queued", func(t *testing.T) {
		remind := &mockSendPaymentReminderUseCase{result: &subdto.ReminderResult{
			FailureID:             7,
			ReminderCount:         1,
			LastReminderSentAt:    sentAt,
			NextReminderAllowedAt: sentAt.Add(24 * time.Hour),
		}}
		h := NewPaymentFailureHandler(&mockListPaymentFailuresUseCase{}, remind, &mockResolvePaymentFailureUseCase{}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/admin/payment-failures/7/remind", nil)
		testutil.SetURLParam(c, "id", "7")
		h.Remind(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(7), remind.cmd.FailureID)
	})

	t.Run("cooldown", func(t *testing.T) {
		remind := &mockSendPaymentReminderUseCase{err: apperrors.NewConflictError("reminder cooldown active")}
		h := NewPaymentFailureHandler(&mockListPaymentFailuresUseCase{}, remind, &mockResolvePaymentFailureUseCase{}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/admin/payment-failures/7/remind", nil)
		testutil.SetURLParam(c, "id", "7")
		h.Remind(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "conflict", resp.Error.Type)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := NewPaymentFailureHandler(&mockListPaymentFailuresUseCase{}, &mockSendPaymentReminderUseCase{}, &mockResolvePaymentFailureUseCase{}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/admin/payment-failures/0/remind", nil)
		testutil.SetURLParam(c, "id", "0")
		h.Remind(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentFailureHandler_Resolve(t *testing.T) {
	resolvedAt := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	resolve := &mockResolvePaymentFailureUseCase{result: &subdto.PaymentFailureDTO{ID: 7, Resolved: true, ResolvedAt: &resolvedAt}}
	h := NewPaymentFailureHandler(&mockListPaymentFailuresUseCase{}, &mockSendPaymentReminderUseCase{}, resolve, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/payment-failures/7/resolve", nil)
	testutil.SetURLParam(c, "id", "7")
	h.Resolve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), resolve.cmd.FailureID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var failure subdto.PaymentFailureDTO
	require.NoError(t, json.Unmarshal(resp.Data, &failure))
	assert.True(t, failure.Resolved)
}
