package admin

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	subdto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers/testutil"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type mockSweepUseCase struct {
	result *subdto.SweepResult
	err    error
}

func (m *mockSweepUseCase) Execute(ctx context.Context) (*subdto.SweepResult, error) {
	return m.result, m.err
}

func TestSubscriptionHandler_Sweep(t *testing.T) {
	h := NewSubscriptionHandler(&mockSweepUseCase{result: &subdto.SweepResult{Examined: 4, Expired: 1, Cancelled: 2}}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/subscriptions/sweep", nil)
	h.Sweep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled":2`)

	h = NewSubscriptionHandler(&mockSweepUseCase{err: errors.New("db down")}, logger.NewNopLogger())
	c, w = testutil.NewTestContext(http.MethodPost, "/admin/subscriptions/sweep", nil)
	h.Sweep(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
