// Package testutil provides in-memory implementations of the repositories and
// ports used by the application layer tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bizblocks/bizblocks/internal/application/notification"
	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/domain/business"
	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/domain/outbox"
	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
)

// MockCatalogSource serves a fixed list of catalog entries.
type MockCatalogSource struct {
	mu       sync.RWMutex
	entries  []catalog.CatalogEntry
	getError error
}

func NewMockCatalogSource(entries ...catalog.CatalogEntry) *MockCatalogSource {
	return &MockCatalogSource{entries: entries}
}

func (m *MockCatalogSource) Entries(ctx context.Context) ([]catalog.CatalogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	out := make([]catalog.CatalogEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MockCatalogSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

// MockPricingRepository is an in-memory catalog.PricingRepository.
type MockPricingRepository struct {
	mu      sync.RWMutex
	records map[string]*catalog.PricingRecord
	nextID  uint

	listError   error
	upsertError error
}

func NewMockPricingRepository() *MockPricingRepository {
	return &MockPricingRepository{records: make(map[string]*catalog.PricingRecord)}
}

func (m *MockPricingRepository) List(ctx context.Context) ([]*catalog.PricingRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]*catalog.PricingRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlockName() < out[j].BlockName() })
	return out, nil
}

func (m *MockPricingRepository) GetByBlockName(ctx context.Context, blockName string) (*catalog.PricingRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}
	return m.records[blockName], nil
}

func (m *MockPricingRepository) Upsert(ctx context.Context, record *catalog.PricingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertError != nil {
		return m.upsertError
	}
	if record.ID() == 0 {
		m.nextID++
		if err := record.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.records[record.BlockName()] = record
	return nil
}

// AddRecord stores a record directly.
func (m *MockPricingRepository) AddRecord(record *catalog.PricingRecord) {
	_ = m.Upsert(context.Background(), record)
}

func (m *MockPricingRepository) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
}

func (m *MockPricingRepository) SetUpsertError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertError = err
}

// MockBusinessRepository is an in-memory business.Repository.
type MockBusinessRepository struct {
	mu         sync.RWMutex
	businesses map[uint]*business.Business
	nextID     uint
	getError   error
}

func NewMockBusinessRepository() *MockBusinessRepository {
	return &MockBusinessRepository{businesses: make(map[uint]*business.Business)}
}

func (m *MockBusinessRepository) Create(ctx context.Context, b *business.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID() == 0 {
		m.nextID++
		b.SetID(m.nextID)
	}
	m.businesses[b.ID()] = b
	return nil
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id uint) (*business.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	return m.businesses[id], nil
}

func (m *MockBusinessRepository) ListByOwner(ctx context.Context, ownerUserID uint) ([]*business.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*business.Business
	for _, b := range m.businesses {
		if b.OwnerUserID() == ownerUserID {
			out = append(out, b)
		}
	}
	return out, nil
}

// AddBusiness creates a business owned by ownerUserID and returns it.
func (m *MockBusinessRepository) AddBusiness(ownerUserID uint, name string) *business.Business {
	b, err := business.NewBusiness(ownerUserID, name, time.Now())
	if err != nil {
		panic(err)
	}
	_ = m.Create(context.Background(), b)
	return b
}

func (m *MockBusinessRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

type scopeKey struct {
	userID     uint
	businessID uint
	blockName  string
}

// MockFreeUnlockRepository is an in-memory entitlement.FreeUnlockRepository
// with the (user, business, block) uniqueness of the real table.
type MockFreeUnlockRepository struct {
	mu          sync.RWMutex
	unlocks     map[scopeKey]*entitlement.FreeUnlock
	nextID      uint
	createError error
	listError   error
}

func NewMockFreeUnlockRepository() *MockFreeUnlockRepository {
	return &MockFreeUnlockRepository{unlocks: make(map[scopeKey]*entitlement.FreeUnlock)}
}

func (m *MockFreeUnlockRepository) Create(ctx context.Context, unlock *entitlement.FreeUnlock) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return false, m.createError
	}
	key := scopeKey{unlock.UserID(), unlock.BusinessID(), unlock.BlockName()}
	if _, exists := m.unlocks[key]; exists {
		return false, nil
	}
	m.nextID++
	unlock.SetID(m.nextID)
	m.unlocks[key] = unlock
	return true, nil
}

func (m *MockFreeUnlockRepository) ListByUser(ctx context.Context, userID, businessID uint) ([]*entitlement.FreeUnlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listError != nil {
		return nil, m.listError
	}
	var out []*entitlement.FreeUnlock
	for key, u := range m.unlocks {
		if key.userID == userID && (businessID == 0 || key.businessID == businessID) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Count returns the number of stored unlocks.
func (m *MockFreeUnlockRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.unlocks)
}

func (m *MockFreeUnlockRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

func (m *MockFreeUnlockRepository) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
}

// MockPurchaseRepository is an in-memory entitlement.PurchaseRepository.
type MockPurchaseRepository struct {
	mu          sync.RWMutex
	purchases   map[scopeKey]*entitlement.Purchase
	nextID      uint
	createError error
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{purchases: make(map[scopeKey]*entitlement.Purchase)}
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p *entitlement.Purchase) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return false, m.createError
	}
	key := scopeKey{p.UserID(), p.BusinessID(), p.BlockName()}
	if _, exists := m.purchases[key]; exists {
		return false, nil
	}
	m.nextID++
	p.SetID(m.nextID)
	m.purchases[key] = p
	return true, nil
}

func (m *MockPurchaseRepository) ListByUser(ctx context.Context, userID, businessID uint) ([]*entitlement.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*entitlement.Purchase
	for key, p := range m.purchases {
		if key.userID == userID && (businessID == 0 || key.businessID == businessID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockPurchaseRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.purchases)
}

func (m *MockPurchaseRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

// MockSubscriptionRepository is an in-memory subscription.SubscriptionRepository.
type MockSubscriptionRepository struct {
	mu            sync.RWMutex
	subscriptions map[uint]*subscription.Subscription
	nextID        uint

	createError error
	getError    error
	updateError error
	updateCalls int
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{subscriptions: make(map[uint]*subscription.Subscription)}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	if s.ID() == 0 {
		m.nextID++
		if err := s.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.subscriptions[s.ID()] = s
	return nil
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	return m.subscriptions[id], nil
}

func (m *MockSubscriptionRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	out := make(map[uint]*subscription.Subscription, len(ids))
	for _, id := range ids {
		if s, ok := m.subscriptions[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepository) GetByExternalID(ctx context.Context, externalSubscriptionID string) (*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	for _, s := range m.subscriptions {
		if s.ExternalSubscriptionID() == externalSubscriptionID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockSubscriptionRepository) ListByUser(ctx context.Context, userID, businessID uint) ([]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*subscription.Subscription
	for _, s := range m.subscriptions {
		if s.UserID() == userID && (businessID == 0 || s.BusinessID() == businessID) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockSubscriptionRepository) ListLapseCandidates(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*subscription.Subscription
	for _, s := range m.subscriptions {
		if !s.Status().IsTerminal() && s.EffectiveStatus(now) != s.Status() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.subscriptions[s.ID()]; !ok {
		return subscription.ErrSubscriptionNotFound
	}
	s.SetVersion(s.Version() + 1)
	m.subscriptions[s.ID()] = s
	return nil
}

// UpdateCalls returns how many times Update was called.
func (m *MockSubscriptionRepository) UpdateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updateCalls
}

func (m *MockSubscriptionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

func (m *MockSubscriptionRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

func (m *MockSubscriptionRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

func (m *MockSubscriptionRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

// MockPaymentFailureRepository is an in-memory subscription.PaymentFailureRepository.
// List filters by status and created_at only.
type MockPaymentFailureRepository struct {
	mu       sync.RWMutex
	failures map[uint]*subscription.PaymentFailure
	nextID   uint

	createError error
	markError   error
}

func NewMockPaymentFailureRepository() *MockPaymentFailureRepository {
	return &MockPaymentFailureRepository{failures: make(map[uint]*subscription.PaymentFailure)}
}

func (m *MockPaymentFailureRepository) Create(ctx context.Context, f *subscription.PaymentFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	if f.ID() == 0 {
		m.nextID++
		f.SetID(m.nextID)
	}
	m.failures[f.ID()] = f
	return nil
}

func (m *MockPaymentFailureRepository) GetByID(ctx context.Context, id uint) (*subscription.PaymentFailure, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failures[id], nil
}

func (m *MockPaymentFailureRepository) GetBySubscriptionAndInvoice(ctx context.Context, subscriptionID uint, invoiceID string) (*subscription.PaymentFailure, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.failures {
		if f.SubscriptionID() == subscriptionID && f.InvoiceID() == invoiceID {
			return f, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentFailureRepository) ListUnresolvedBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.PaymentFailure, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*subscription.PaymentFailure
	for _, f := range m.failures {
		if f.SubscriptionID() == subscriptionID && !f.IsResolved() {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MockPaymentFailureRepository) List(ctx context.Context, filter subscription.PaymentFailureFilter) ([]*subscription.PaymentFailure, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*subscription.PaymentFailure
	for _, f := range m.failures {
		switch filter.Status {
		case subscription.FailureStatusOpen:
			if f.IsResolved() {
				continue
			}
		case subscription.FailureStatusResolved:
			if !f.IsResolved() {
				continue
			}
		}
		if filter.From != nil && f.CreatedAt().Before(*filter.From) {
			continue
		}
		if filter.To != nil && f.CreatedAt().After(*filter.To) {
			continue
		}
		matched = append(matched, f)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID() > matched[j].ID() })

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MockPaymentFailureRepository) Update(ctx context.Context, f *subscription.PaymentFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[f.ID()] = f
	return nil
}

func (m *MockPaymentFailureRepository) TryMarkReminderSent(ctx context.Context, id uint, now time.Time, cooldown time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markError != nil {
		return false, m.markError
	}
	f, ok := m.failures[id]
	if !ok {
		return false, nil
	}
	if err := f.MarkReminderSent(now, cooldown); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *MockPaymentFailureRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.failures)
}

func (m *MockPaymentFailureRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

func (m *MockPaymentFailureRepository) SetMarkError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markError = err
}

// MockSessionRepository is an in-memory checkout.SessionRepository.
type MockSessionRepository struct {
	mu          sync.RWMutex
	sessions    map[string]*checkout.Session
	createError error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*checkout.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, s *checkout.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	m.sessions[s.ID()] = s
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*checkout.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id], nil
}

func (m *MockSessionRepository) Update(ctx context.Context, s *checkout.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

// CompleteIfPending only reports whether the stored session is pending. The
// caller completes the shared entity, so a rolled back grant leaves it
// pending without a real transaction.
func (m *MockSessionRepository) CompleteIfPending(ctx context.Context, id string, now time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return ok && s.Status() == checkout.SessionStatusPending, nil
}

// All returns every stored session.
func (m *MockSessionRepository) All() []*checkout.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*checkout.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

func (m *MockSessionRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

// MockGateway is a paymentgateway.Gateway whose behaviour is set per test.
// Unset funcs succeed with canned responses.
type MockGateway struct {
	mu sync.Mutex

	CreateCheckoutSessionFunc   func(ctx context.Context, req paymentgateway.CreateCheckoutSessionRequest) (*paymentgateway.CheckoutSessionResponse, error)
	ChangeSubscriptionPriceFunc func(ctx context.Context, req paymentgateway.ChangePriceRequest) (*paymentgateway.ChangePriceResponse, error)
	CancelSubscriptionFunc      func(ctx context.Context, req paymentgateway.CancelSubscriptionRequest) error
	VerifyWebhookFunc           func(payload []byte, signature string) (*paymentgateway.WebhookEvent, error)

	CheckoutRequests    []paymentgateway.CreateCheckoutSessionRequest
	ChangePriceRequests []paymentgateway.ChangePriceRequest
	CancelRequests      []paymentgateway.CancelSubscriptionRequest
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req paymentgateway.CreateCheckoutSessionRequest) (*paymentgateway.CheckoutSessionResponse, error) {
	m.mu.Lock()
	m.CheckoutRequests = append(m.CheckoutRequests, req)
	fn := m.CreateCheckoutSessionFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &paymentgateway.CheckoutSessionResponse{
		ExternalSessionID: "cs_" + req.ReferenceID,
		CheckoutURL:       "https://pay.example.test/c/" + req.ReferenceID,
	}, nil
}

func (m *MockGateway) ChangeSubscriptionPrice(ctx context.Context, req paymentgateway.ChangePriceRequest) (*paymentgateway.ChangePriceResponse, error) {
	m.mu.Lock()
	m.ChangePriceRequests = append(m.ChangePriceRequests, req)
	fn := m.ChangeSubscriptionPriceFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &paymentgateway.ChangePriceResponse{InvoiceID: "in_" + req.ExternalSubscriptionID}, nil
}

func (m *MockGateway) CancelSubscription(ctx context.Context, req paymentgateway.CancelSubscriptionRequest) error {
	m.mu.Lock()
	m.CancelRequests = append(m.CancelRequests, req)
	fn := m.CancelSubscriptionFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return nil
}

func (m *MockGateway) VerifyWebhook(payload []byte, signature string) (*paymentgateway.WebhookEvent, error) {
	if m.VerifyWebhookFunc != nil {
		return m.VerifyWebhookFunc(payload, signature)
	}
	return nil, paymentgateway.ErrInvalidSignature
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	mu           sync.Mutex
	events       []events.DomainEvent
	publishError error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishError != nil {
		return m.publishError
	}
	m.events = append(m.events, event)
	return nil
}

// Events returns the published events in order.
func (m *MockEventPublisher) Events() []events.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.DomainEvent, len(m.events))
	copy(out, m.events)
	return out
}

// EventTypes returns the type of every published event in order.
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.GetEventType())
	}
	return out
}

func (m *MockEventPublisher) SetPublishError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishError = err
}

// MockOutboxRepository is an in-memory outbox.Repository that also acts as
// the event publisher, like the gorm implementation.
type MockOutboxRepository struct {
	mu       sync.Mutex
	messages []*outbox.Message
	claimErr error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Publish(ctx context.Context, event events.DomainEvent) error {
	msg, err := outbox.NewMessage(event)
	if err != nil {
		return err
	}
	return m.Enqueue(ctx, msg)
}

func (m *MockOutboxRepository) Enqueue(ctx context.Context, message *outbox.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *MockOutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimErr != nil {
		return nil, m.claimErr
	}
	var out []*outbox.Message
	for _, msg := range m.messages {
		if len(out) >= limit {
			break
		}
		if msg.Status() == outbox.StatusPending && !msg.AvailableAt().After(now) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	return nil
}

func (m *MockOutboxRepository) Messages() []*outbox.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*outbox.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func (m *MockOutboxRepository) SetClaimError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimErr = err
}

// MockNotifier records sent emails. SendFunc overrides the default success.
type MockNotifier struct {
	mu       sync.Mutex
	Sent     []notification.Email
	SendFunc func(ctx context.Context, email notification.Email) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Send(ctx context.Context, email notification.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, email); err != nil {
			return err
		}
	}
	m.Sent = append(m.Sent, email)
	return nil
}

func (m *MockNotifier) SentEmails() []notification.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Email, len(m.Sent))
	copy(out, m.Sent)
	return out
}
