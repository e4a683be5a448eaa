package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	vo "github.com/bizblocks/bizblocks/internal/domain/subscription/valueobjects"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
)

var errStore = errors.New("database is locked")

func TestHandlePaymentFailed_StoreErrors(t *testing.T) {
	t.Run("subscription lookup", func(t *testing.T) {
		env := newLifecycleEnv(t)
		env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)
		env.subs.SetGetError(errStore)

		_, err := env.failedUC().Execute(context.Background(), HandlePaymentFailedCommand{ExternalSubscriptionID: "sub_1", InvoiceID: "in_1"})
		require.ErrorIs(t, err, errStore)
		assert.Zero(t, env.failures.Count())
	})

	t.Run("failure insert", func(t *testing.T) {
		env := newLifecycleEnv(t)
		sub := env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)
		env.failures.SetCreateError(errStore)

		_, err := env.failedUC().Execute(context.Background(), HandlePaymentFailedCommand{ExternalSubscriptionID: "sub_1", InvoiceID: "in_1"})
		require.ErrorIs(t, err, errStore)
		assert.Nil(t, apperrors.GetAppError(err))

		assert.Equal(t, vo.StatusActive, sub.Status())
		assert.Nil(t, sub.GracePeriodEnd())
		assert.Zero(t, env.failures.Count())
		assert.Empty(t, env.publisher.Events())
	})

	t.Run("event enqueue", func(t *testing.T) {
		env := newLifecycleEnv(t)
		env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)
		env.publisher.SetPublishError(errStore)

		_, err := env.failedUC().Execute(context.Background(), HandlePaymentFailedCommand{ExternalSubscriptionID: "sub_1", InvoiceID: "in_1"})
		require.ErrorIs(t, err, errStore)
		assert.Empty(t, env.publisher.Events())
	})
}

func TestSendPaymentReminder_MarkFailureQueuesNothing(t *testing.T) {
	env := newLifecycleEnv(t)
	env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)
	failure := failInvoice(t, env, "sub_1", "in_1")
	env.failures.SetMarkError(errStore)

	_, err := env.reminderUC().Execute(context.Background(), SendPaymentReminderCommand{FailureID: failure.FailureID})
	require.ErrorIs(t, err, errStore)
	assert.False(t, apperrors.IsConflictError(err))
	assert.Equal(t, []string{subscription.EventPaymentFailed}, env.publisher.EventTypes())

	env.failures.SetMarkError(nil)
	sent, err := env.reminderUC().Execute(context.Background(), SendPaymentReminderCommand{FailureID: failure.FailureID})
	require.NoError(t, err)
	assert.Equal(t, 1, sent.ReminderCount)
}

func TestCancelSubscription_UpdateErrorSurfaces(t *testing.T) {
	env := newLifecycleEnv(t)
	sub := env.addSubscription(t, "seo", 1000, "sub_1", time.Hour)
	env.subs.SetUpdateError(errStore)

	_, err := env.cancelUC().Execute(context.Background(), CancelSubscriptionCommand{UserID: testUserID, SubscriptionID: sub.ID()})
	require.ErrorIs(t, err, errStore)
	assert.Len(t, env.gateway.CancelRequests, 1)
	assert.Empty(t, env.publisher.Events())
}
