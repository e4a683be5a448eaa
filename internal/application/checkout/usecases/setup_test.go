package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogusecases "github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	entitlementapp "github.com/bizblocks/bizblocks/internal/application/entitlement"
	"github.com/bizblocks/bizblocks/internal/application/testutil"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/db"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

const testUserID uint = 7

type checkoutEnv struct {
	clock      *biztime.FixedClock
	pricing    *testutil.MockPricingRepository
	businesses *testutil.MockBusinessRepository
	unlocks    *testutil.MockFreeUnlockRepository
	purchases  *testutil.MockPurchaseRepository
	subs       *testutil.MockSubscriptionRepository
	sessions   *testutil.MockSessionRepository
	gateway    *testutil.MockGateway
	publisher  *testutil.MockEventPublisher
	ownership  *entitlementapp.OwnershipService
	snapshots  *catalogusecases.SnapshotProvider
	businessID uint

	selectUC   *SelectAndCheckoutUseCase
	completeUC *CompleteCheckoutUseCase
	failUC     *FailCheckoutUseCase
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()

	log := logger.NewNopLogger()
	env := &checkoutEnv{
		clock:      biztime.NewFixedClock(testutil.BaseTime),
		pricing:    testutil.NewMockPricingRepository(),
		businesses: testutil.NewMockBusinessRepository(),
		unlocks:    testutil.NewMockFreeUnlockRepository(),
		purchases:  testutil.NewMockPurchaseRepository(),
		subs:       testutil.NewMockSubscriptionRepository(),
		sessions:   testutil.NewMockSessionRepository(),
		gateway:    testutil.NewMockGateway(),
		publisher:  testutil.NewMockEventPublisher(),
	}
	testutil.SeedDefaultPricing(env.pricing)
	env.businessID = env.businesses.AddBusiness(testUserID, "Corner Bakery").ID()

	env.ownership = entitlementapp.NewOwnershipService(env.unlocks, env.purchases, env.subs, env.clock, log)
	env.snapshots = catalogusecases.NewSnapshotProvider(testutil.NewMockCatalogSource(testutil.DefaultCatalog()...), env.pricing, env.clock, log)

	urls := CheckoutURLs{SuccessURL: "https://app.test/ok", CancelURL: "https://app.test/cancel", Currency: "USD"}
	tx := db.NoopTransactor{}

	env.selectUC = NewSelectAndCheckoutUseCase(env.snapshots, env.ownership, env.businesses, env.unlocks,
		env.sessions, env.gateway, tx, env.clock, urls, log)
	env.completeUC = NewCompleteCheckoutUseCase(env.sessions, env.purchases, env.subs, env.ownership,
		env.gateway, env.publisher, tx, env.clock, log)
	env.failUC = NewFailCheckoutUseCase(env.sessions, env.clock, log)
	return env
}

func (e *checkoutEnv) selectBlocks(blocks ...string) SelectAndCheckoutCommand {
	cmd := SelectAndCheckoutCommand{UserID: testUserID, CustomerEmail: "owner@example.com"}
	cmd.BusinessID = e.businessID
	cmd.BlockNames = blocks
	return cmd
}

func (e *checkoutEnv) onlySession(t *testing.T) *checkout.Session {
	t.Helper()
	all := e.sessions.All()
	require.Len(t, all, 1)
	return all[0]
}

func (e *checkoutEnv) owned(t *testing.T, block string) bool {
	t.Helper()
	o, err := e.ownership.OwnershipOf(context.Background(), testUserID, e.businessID, block)
	require.NoError(t, err)
	return o.Owned
}
