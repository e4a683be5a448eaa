package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	catalogusecases "github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	checkoutusecases "github.com/bizblocks/bizblocks/internal/application/checkout/usecases"
	entitlementapp "github.com/bizblocks/bizblocks/internal/application/entitlement"
	"github.com/bizblocks/bizblocks/internal/application/testutil"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

const (
	testUserID     uint = 7
	testBusinessID uint = 3
)

type lifecycleEnv struct {
	clock     *biztime.FixedClock
	policy    subscription.Policy
	subs      *testutil.MockSubscriptionRepository
	failures  *testutil.MockPaymentFailureRepository
	unlocks   *testutil.MockFreeUnlockRepository
	purchases *testutil.MockPurchaseRepository
	sessions  *testutil.MockSessionRepository
	gateway   *testutil.MockGateway
	publisher *testutil.MockEventPublisher
	ownership *entitlementapp.OwnershipService
}

func newLifecycleEnv(t *testing.T) *lifecycleEnv {
	t.Helper()
	log := logger.NewNopLogger()
	env := &lifecycleEnv{
		clock:     biztime.NewFixedClock(testutil.BaseTime),
		policy:    subscription.DefaultPolicy(),
		subs:      testutil.NewMockSubscriptionRepository(),
		failures:  testutil.NewMockPaymentFailureRepository(),
		unlocks:   testutil.NewMockFreeUnlockRepository(),
		purchases: testutil.NewMockPurchaseRepository(),
		sessions:  testutil.NewMockSessionRepository(),
		gateway:   testutil.NewMockGateway(),
		publisher: testutil.NewMockEventPublisher(),
	}
	env.ownership = entitlementapp.NewOwnershipService(env.unlocks, env.purchases, env.subs, env.clock, log)
	return env
}

// addSubscription stores an active subscription whose period started
// elapsed before now and lasts 30 days.
func (e *lifecycleEnv) addSubscription(t *testing.T, block string, monthlyCents int64, externalID string, elapsed time.Duration) *subscription.Subscription {
	t.Helper()
	sub := testutil.MustSubscription(testUserID, testBusinessID, block, monthlyCents, externalID, e.clock.Now().Add(-elapsed))
	require.NoError(t, e.subs.Create(context.Background(), sub))
	return sub
}

func (e *lifecycleEnv) failedUC() *HandlePaymentFailedUseCase {
	return NewHandlePaymentFailedUseCase(e.subs, e.failures, e.publisher, db.NoopTransactor{}, e.policy, e.clock, logger.NewNopLogger())
}

func (e *lifecycleEnv) succeededUC() *HandlePaymentSucceededUseCase {
	return NewHandlePaymentSucceededUseCase(e.subs, e.failures, db.NoopTransactor{}, e.clock, logger.NewNopLogger())
}

func (e *lifecycleEnv) reminderUC() *SendPaymentReminderUseCase {
	return NewSendPaymentReminderUseCase(e.subs, e.failures, e.publisher, db.NoopTransactor{}, e.policy, e.clock, logger.NewNopLogger())
}

func (e *lifecycleEnv) resolveUC() *ResolvePaymentFailureUseCase {
	return NewResolvePaymentFailureUseCase(e.subs, e.failures, db.NoopTransactor{}, e.clock, logger.NewNopLogger())
}

func (e *lifecycleEnv) cancelUC() *CancelSubscriptionUseCase {
	return NewCancelSubscriptionUseCase(e.subs, e.gateway, e.publisher, db.NoopTransactor{}, e.clock, logger.NewNopLogger())
}

func (e *lifecycleEnv) sweepUC() *SweepLapsedSubscriptionsUseCase {
	return NewSweepLapsedSubscriptionsUseCase(e.subs, e.clock, logger.NewNopLogger())
}

func (e *lifecycleEnv) listUC() *ListUserSubscriptionsUseCase {
	return NewListUserSubscriptionsUseCase(e.subs, e.clock, logger.NewNopLogger())
}

func (e *lifecycleEnv) changeUC() *ChangeSubscriptionUseCase {
	return e.changeUCWithLogger(logger.NewNopLogger())
}

func (e *lifecycleEnv) changeUCWithLogger(log logger.Interface) *ChangeSubscriptionUseCase {
	pricing := testutil.NewMockPricingRepository()
	testutil.SeedDefaultPricing(pricing)
	snapshots := catalogusecases.NewSnapshotProvider(testutil.NewMockCatalogSource(testutil.DefaultCatalog()...), pricing, e.clock, log)
	starter := checkoutusecases.NewCheckoutStarter(e.sessions, e.gateway,
		checkoutusecases.CheckoutURLs{SuccessURL: "https://app.test/ok", CancelURL: "https://app.test/cancel", Currency: "USD"},
		e.clock, log)
	return NewChangeSubscriptionUseCase(e.subs, snapshots, e.ownership, e.gateway, starter, db.NoopTransactor{}, "USD", e.clock, log)
}

func (e *lifecycleEnv) owned(t *testing.T, block string) bool {
	t.Helper()
	o, err := e.ownership.OwnershipOf(context.Background(), testUserID, testBusinessID, block)
	require.NoError(t, err)
	return o.Owned
}

func timePtr(t time.Time) *time.Time { return &t }
