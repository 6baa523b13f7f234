package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/cache"
	"github.com/forgeline/rfq-service/internal/infrastructure/memory"
	"github.com/forgeline/rfq-service/internal/infrastructure/metrics"
	"github.com/forgeline/rfq-service/internal/locker"
	"github.com/forgeline/rfq-service/internal/usecase/engine"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	items map[string]*domain.Item
}

func (f *fakeCatalog) GetItem(_ context.Context, itemID string) (*domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

type fakeIdentity struct {
	parties map[string]*domain.Party
}

func (f *fakeIdentity) GetParty(_ context.Context, partyID string) (*domain.Party, error) {
	party, ok := f.parties[partyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *party
	return &cp, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []domain.NotificationEvent
}

func (p *capturePublisher) PublishNotification(event domain.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) ofType(eventType domain.NotificationEventType) []domain.NotificationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.NotificationEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	store     *memory.Store
	publisher *capturePublisher
	catalog   *fakeCatalog
	identity  *fakeIdentity
	locks     *locker.KeyedMutex

	negotiations *DefaultNegotiationUsecase
	offers       *DefaultOfferUsecase
	rules        *DefaultNegotiationRuleUsecase
	currency     *DefaultCurrencyUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	publisher := &capturePublisher{}
	locks := locker.NewKeyedMutex()
	m := metrics.NewNegotiationMetrics()

	catalog := &fakeCatalog{items: map[string]*domain.Item{
		"item-1": {ID: "item-1", FulfillerID: "ful-1", Name: "Steel bolts", Status: domain.ItemActive},
		"item-2": {ID: "item-2", FulfillerID: "ful-1", Name: "Copper wire", Status: domain.ItemInactive},
		"item-3": {ID: "item-3", FulfillerID: "ful-2", Name: "Rubber seals", Status: domain.ItemActive},
	}}
	identity := &fakeIdentity{parties: map[string]*domain.Party{
		"req-1": {ID: "req-1", Name: "Acme Manufacturing", Role: domain.RoleRequester},
		"ful-1": {ID: "ful-1", Name: "Bolt Works", Role: domain.RoleFulfiller},
	}}

	currency := NewDefaultCurrencyUsecase(store, cache.NoopRateCache{})
	negotiationEngine := engine.NewNegotiationEngine(currency)

	return &testEnv{
		store:        store,
		publisher:    publisher,
		catalog:      catalog,
		identity:     identity,
		locks:        locks,
		negotiations: NewDefaultNegotiationUsecase(store, catalog, identity, publisher, locks, m),
		offers:       NewDefaultOfferUsecase(store, store, store, negotiationEngine, publisher, locks, m),
		rules:        NewDefaultNegotiationRuleUsecase(store, catalog),
		currency:     currency,
	}
}

func (env *testEnv) seedNegotiation(t *testing.T, id string) *domain.Negotiation {
	t.Helper()

	negotiation := &domain.Negotiation{
		ID:               id,
		RequesterID:      "req-1",
		ItemID:           "item-1",
		FulfillerID:      "ful-1",
		DesiredQuantity:  100,
		TargetPrice:      decimal.RequireFromString("20.00"),
		DeliveryDeadline: time.Now().AddDate(0, 1, 0),
		Currency:         domain.CurrencyUSD,
		Status:           domain.NegotiationSubmitted,
		CurrentRound:     0,
		MaxRounds:        domain.DefaultMaxRounds,
		ExpiresAt:        time.Now().AddDate(0, 0, 7),
	}
	if err := env.store.CreateNegotiation(negotiation); err != nil {
		t.Fatalf("seed negotiation: %v", err)
	}
	return negotiation
}

// seedRule installs ful-1's rule for item-1: floor 18.00, auto-accept at
// 23.00, delivery up to 30 days, 10% volume discount from qty 200.
func (env *testEnv) seedRule(t *testing.T) *domain.NegotiationRule {
	t.Helper()

	rule := &domain.NegotiationRule{
		ID:                  "rule-1",
		OwnerID:             "ful-1",
		ItemID:              "item-1",
		PriceFloor:          decimal.RequireFromString("18.00"),
		AutoAcceptThreshold: decimal.RequireFromString("23.00"),
		MaxDeliveryDays:     30,
		MaxRounds:           domain.DefaultMaxRounds,
		VolumeDiscountPct:   decimal.RequireFromString("10"),
		VolumeThreshold:     200,
		Currency:            domain.CurrencyUSD,
	}
	if err := env.store.CreateRule(rule); err != nil {
		t.Fatalf("seed rule: %v", err)
	}
	return rule
}

func (env *testEnv) seedRate(t *testing.T, from, to domain.Currency, rate string, effective time.Time) {
	t.Helper()

	err := env.store.CreateRate(&domain.ExchangeRate{
		ID:            "rate-" + string(from) + string(to) + effective.Format("20060102"),
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          decimal.RequireFromString(rate),
		EffectiveDate: effective,
	})
	if err != nil {
		t.Fatalf("seed rate: %v", err)
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func dayAgo() time.Time {
	return time.Now().AddDate(0, 0, -1)
}
