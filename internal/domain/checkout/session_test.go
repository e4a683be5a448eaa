package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	items := []LineItem{{BlockName: "Logo Studio", AmountCents: 4900}}

	s, err := NewSession(1, 2, ModeOneTime, items, "a@b.c", now)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, SessionStatusPending, s.Status())
	assert.False(t, s.IsSwitch())

	assert.Equal(t, int64(4900), s.AmountCents())

	items[0].BlockName = "mutated"
	assert.Equal(t, []string{"Logo Studio"}, s.BlockNames())

	_, err = NewSession(1, 2, Mode("weekly"), items, "", now)
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = NewSession(1, 2, ModeOneTime, nil, "", now)
	assert.ErrorIs(t, err, ErrSessionBlocksEmpty)

	_, err = NewSession(1, 2, ModeOneTime, []LineItem{{BlockName: "Logo Studio", AmountCents: -1}}, "", now)
	assert.Error(t, err)
}

func TestSession_CompleteIsIdempotent(t *testing.T) {
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	s, err := NewSession(1, 2, ModeSubscription, []LineItem{{BlockName: "Website Builder", AmountCents: 1500}}, "", now)
	require.NoError(t, err)

	changed, err := s.Complete(now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, s.CompletedAt())

	changed, err = s.Complete(now.Add(2 * time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)

	assert.ErrorIs(t, s.Fail("late", now), ErrSessionNotPending)
}

func TestSession_FailedCannotComplete(t *testing.T) {
	now := time.Now()
	s, err := NewSession(1, 2, ModeOneTime, []LineItem{{BlockName: "Logo Studio", AmountCents: 4900}}, "", now)
	require.NoError(t, err)

	require.NoError(t, s.Fail("card_declined", now))
	_, err = s.Complete(now)
	assert.ErrorIs(t, err, ErrSessionNotPending)
}

func TestSession_MarkSwitchFrom(t *testing.T) {
	now := time.Now()
	oneTime, err := NewSession(1, 2, ModeOneTime, []LineItem{{BlockName: "Website Builder", AmountCents: 9900}}, "", now)
	require.NoError(t, err)
	require.NoError(t, oneTime.MarkSwitchFrom(42))
	assert.True(t, oneTime.IsSwitch())
	assert.Equal(t, uint(42), *oneTime.SwitchFromSubscriptionID())

	sub, err := NewSession(1, 2, ModeSubscription, []LineItem{{BlockName: "Website Builder", AmountCents: 1500}}, "", now)
	require.NoError(t, err)
	assert.ErrorIs(t, sub.MarkSwitchFrom(42), ErrInvalidMode)
}
