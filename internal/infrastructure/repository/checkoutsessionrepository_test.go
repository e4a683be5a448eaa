package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

func TestCheckoutSessionRepository_RoundTrip(t *testing.T) {
	repo := NewCheckoutSessionRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	items := []checkout.LineItem{
		{BlockName: "logo", AmountCents: 4900},
		{BlockName: "legal", AmountCents: 19900},
	}
	session, err := checkout.NewSession(7, 3, checkout.ModeOneTime, items, "owner@example.com", baseTime)
	require.NoError(t, err)
	require.NoError(t, session.MarkSwitchFrom(42))
	require.NoError(t, repo.Create(ctx, session))

	session.AttachExternal("cs_1", "https://pay.example.test/c/1", baseTime.Add(time.Second))
	completedAt := baseTime.Add(time.Minute)
	changed, err := session.Complete(completedAt)
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Update(ctx, session))

	stored, err := repo.GetByID(ctx, session.ID())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, items, stored.Items())
	assert.Equal(t, int64(24800), stored.AmountCents())
	assert.Equal(t, checkout.SessionStatusCompleted, stored.Status())
	assert.Equal(t, "cs_1", stored.ExternalSessionID())
	require.NotNil(t, stored.SwitchFromSubscriptionID())
	assert.Equal(t, uint(42), *stored.SwitchFromSubscriptionID())
	require.NotNil(t, stored.CompletedAt())
	assert.True(t, stored.CompletedAt().Equal(completedAt))

	missing, err := repo.GetByID(ctx, "9b2f1d1e-4c53-4b6e-9a57-1e2f3a4b5c6d")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCheckoutSessionRepository_CompleteIfPendingClaimsOnce(t *testing.T) {
	repo := NewCheckoutSessionRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	session, err := checkout.NewSession(7, 3, checkout.ModeSubscription,
		[]checkout.LineItem{{BlockName: "seo", AmountCents: 1000}}, "owner@example.com", baseTime)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, session))

	// Both deliveries loaded the session while it was pending.
	first, err := repo.GetByID(ctx, session.ID())
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, session.ID())
	require.NoError(t, err)

	claimed, err := repo.CompleteIfPending(ctx, first.ID(), baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.CompleteIfPending(ctx, second.ID(), baseTime.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, claimed)

	stored, err := repo.GetByID(ctx, session.ID())
	require.NoError(t, err)
	assert.Equal(t, checkout.SessionStatusCompleted, stored.Status())
	require.NotNil(t, stored.CompletedAt())
	assert.True(t, stored.CompletedAt().Equal(baseTime.Add(time.Minute)))

	// A late failure event holding the stale pending copy cannot undo it.
	require.NoError(t, second.Fail("expired", baseTime.Add(3*time.Minute)))
	assert.ErrorIs(t, repo.Update(ctx, second), checkout.ErrSessionNotPending)

	stored, err = repo.GetByID(ctx, session.ID())
	require.NoError(t, err)
	assert.Equal(t, checkout.SessionStatusCompleted, stored.Status())

	claimed, err = repo.CompleteIfPending(ctx, "9b2f1d1e-4c53-4b6e-9a57-1e2f3a4b5c6d", baseTime)
	require.NoError(t, err)
	assert.False(t, claimed)
}
