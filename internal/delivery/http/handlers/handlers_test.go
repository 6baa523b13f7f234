package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forgeline/rfq-service/internal/delivery/http/handlers"
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/cache"
	"github.com/forgeline/rfq-service/internal/infrastructure/memory"
	"github.com/forgeline/rfq-service/internal/infrastructure/metrics"
	"github.com/forgeline/rfq-service/internal/locker"
	"github.com/forgeline/rfq-service/internal/usecase"
	"github.com/forgeline/rfq-service/internal/usecase/engine"
	"github.com/shopspring/decimal"
)

type stubCatalog struct{}

func (stubCatalog) GetItem(_ context.Context, itemID string) (*domain.Item, error) {
	switch itemID {
	case "item-1":
		return &domain.Item{ID: "item-1", FulfillerID: "ful-1", Name: "Steel bolts", Status: domain.ItemActive}, nil
	case "item-2":
		return &domain.Item{ID: "item-2", FulfillerID: "ful-1", Name: "Copper wire", Status: domain.ItemInactive}, nil
	}
	return nil, domain.ErrNotFound
}

type stubIdentity struct{}

func (stubIdentity) GetParty(_ context.Context, partyID string) (*domain.Party, error) {
	return &domain.Party{ID: partyID, Name: "Party " + partyID}, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishNotification(domain.NotificationEvent) error { return nil }

type fixture struct {
	store  *memory.Store
	server *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	locks := locker.NewKeyedMutex()
	m := metrics.NewNegotiationMetrics()

	currency := usecase.NewDefaultCurrencyUsecase(store, cache.NoopRateCache{})
	negotiationEngine := engine.NewNegotiationEngine(currency)

	negotiations := usecase.NewDefaultNegotiationUsecase(store, stubCatalog{}, stubIdentity{}, noopPublisher{}, locks, m)
	offers := usecase.NewDefaultOfferUsecase(store, store, store, negotiationEngine, noopPublisher{}, locks, m)
	rules := usecase.NewDefaultNegotiationRuleUsecase(store, stubCatalog{})

	mux := http.NewServeMux()
	negotiationHandler := handlers.NewNegotiationHandler(negotiations, offers)
	ruleHandler := handlers.NewRuleHandler(rules)
	rateHandler := handlers.NewRateHandler(currency)
	mux.HandleFunc("/api/v1/negotiations", negotiationHandler.HandleNegotiations)
	mux.HandleFunc("/api/v1/negotiations/", negotiationHandler.HandleNegotiationActions)
	mux.HandleFunc("/api/v1/rules", ruleHandler.HandleRules)
	mux.HandleFunc("/api/v1/rules/", ruleHandler.HandleRuleActions)
	mux.HandleFunc("/api/v1/rates", rateHandler.HandleRates)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &fixture{store: store, server: server}
}

func (f *fixture) do(t *testing.T, method, path, party, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if party != "" {
		req.Header.Set("X-Party-ID", party)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func (f *fixture) seedRule(t *testing.T) {
	t.Helper()
	rule := &domain.NegotiationRule{
		ID:                  "rule-1",
		OwnerID:             "ful-1",
		ItemID:              "item-1",
		PriceFloor:          decimal.RequireFromString("18.00"),
		AutoAcceptThreshold: decimal.RequireFromString("23.00"),
		MaxDeliveryDays:     30,
		MaxRounds:           domain.DefaultMaxRounds,
		Currency:            domain.CurrencyUSD,
	}
	if err := f.store.CreateRule(rule); err != nil {
		t.Fatalf("seed rule: %v", err)
	}
}

func TestSubmitNegotiationEndpoint(t *testing.T) {
	f := newFixture(t)

	deadline := time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
	resp, body := f.do(t, http.MethodPost, "/api/v1/negotiations", "req-1",
		`{"item_id":"item-1","desired_quantity":100,"target_price":"20.00","delivery_deadline":"`+deadline+`","currency":"USD"}`)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", resp.StatusCode, body)
	}
	negotiation, ok := body["negotiation"].(map[string]any)
	if !ok {
		t.Fatalf("missing negotiation in response: %v", body)
	}
	if negotiation["status"] != "SUBMITTED" {
		t.Errorf("status = %v, want SUBMITTED", negotiation["status"])
	}
	if negotiation["fulfiller_id"] != "ful-1" {
		t.Errorf("fulfiller_id = %v, want ful-1", negotiation["fulfiller_id"])
	}
}

func TestSubmitNegotiationRequiresParty(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/api/v1/negotiations", "",
		`{"item_id":"item-1","desired_quantity":100,"target_price":"20.00","currency":"USD"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSubmitNegotiationInactiveItemMapsTo422(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/api/v1/negotiations", "req-1",
		`{"item_id":"item-2","desired_quantity":100,"target_price":"20.00","currency":"USD"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestGetNegotiationNotFound(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodGet, "/api/v1/negotiations/missing", "", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func submitNegotiation(t *testing.T, f *fixture) string {
	t.Helper()
	deadline := time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
	resp, body := f.do(t, http.MethodPost, "/api/v1/negotiations", "req-1",
		`{"item_id":"item-1","desired_quantity":100,"target_price":"20.00","delivery_deadline":"`+deadline+`","currency":"USD"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit negotiation status = %d: %v", resp.StatusCode, body)
	}
	return body["negotiation"].(map[string]any)["id"].(string)
}

func TestOfferFlowEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedRule(t)
	id := submitNegotiation(t, f)

	resp, body := f.do(t, http.MethodPost, "/api/v1/negotiations/"+id+"/offers", "req-1",
		`{"proposed_price":"23.00","proposed_qty":10,"delivery_days":14,"currency":"USD"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", resp.StatusCode, body)
	}
	offer := body["offer"].(map[string]any)
	if offer["status"] != "ACCEPTED" {
		t.Errorf("offer status = %v, want ACCEPTED", offer["status"])
	}
	if offer["reason_code"] != "AUTO_ACCEPTED" {
		t.Errorf("reason_code = %v, want AUTO_ACCEPTED", offer["reason_code"])
	}

	resp, body = f.do(t, http.MethodGet, "/api/v1/negotiations/"+id+"/offers", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	offers := body["offers"].([]any)
	if len(offers) != 1 {
		t.Errorf("offers = %d, want 1", len(offers))
	}

	// The negotiation is resolved; further offers are rejected with 422.
	resp, _ = f.do(t, http.MethodPost, "/api/v1/negotiations/"+id+"/offers", "req-1",
		`{"proposed_price":"23.00","proposed_qty":10,"delivery_days":14,"currency":"USD"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestOfferForbiddenMapsTo403(t *testing.T) {
	f := newFixture(t)
	f.seedRule(t)
	id := submitNegotiation(t, f)

	resp, _ := f.do(t, http.MethodPost, "/api/v1/negotiations/"+id+"/offers", "req-intruder",
		`{"proposed_price":"23.00","proposed_qty":10,"delivery_days":14,"currency":"USD"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestOfferConversionOutageMapsTo503(t *testing.T) {
	f := newFixture(t)
	f.seedRule(t)
	id := submitNegotiation(t, f)

	resp, _ := f.do(t, http.MethodPost, "/api/v1/negotiations/"+id+"/offers", "req-1",
		`{"proposed_price":"23.00","proposed_qty":10,"delivery_days":14,"currency":"EUR"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestRuleEndpoints(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/v1/rules", "ful-1",
		`{"item_id":"item-1","price_floor":"18.00","auto_accept_threshold":"23.00","max_delivery_days":30,"volume_discount_pct":"10","volume_threshold":200,"currency":"USD"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", resp.StatusCode, body)
	}
	ruleID := body["rule"].(map[string]any)["id"].(string)

	// Duplicate rule for the same item conflicts.
	resp, _ = f.do(t, http.MethodPost, "/api/v1/rules", "ful-1",
		`{"item_id":"item-1","price_floor":"18.00","auto_accept_threshold":"23.00","max_delivery_days":30,"volume_discount_pct":"10","volume_threshold":200,"currency":"USD"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}

	resp, _ = f.do(t, http.MethodPut, "/api/v1/rules/"+ruleID, "ful-2",
		`{"item_id":"item-1","price_floor":"18.00","auto_accept_threshold":"25.00","max_delivery_days":30,"volume_discount_pct":"10","volume_threshold":200,"currency":"USD"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign update status = %d, want 403", resp.StatusCode)
	}

	resp, body = f.do(t, http.MethodGet, "/api/v1/rules", "ful-1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	if rules := body["rules"].([]any); len(rules) != 1 {
		t.Errorf("rules = %d, want 1", len(rules))
	}

	resp, _ = f.do(t, http.MethodDelete, "/api/v1/rules/"+ruleID, "ful-1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
}

func TestRateEndpoints(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/v1/rates", "",
		`{"from_currency":"EUR","to_currency":"USD","rate":"1.10"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %v", resp.StatusCode, body)
	}

	resp, _ = f.do(t, http.MethodPost, "/api/v1/rates", "",
		`{"from_currency":"USD","to_currency":"USD","rate":"1.00"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid pair status = %d, want 422", resp.StatusCode)
	}

	resp, body = f.do(t, http.MethodGet, "/api/v1/rates?from=EUR&to=USD", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	if rates := body["rates"].([]any); len(rates) != 1 {
		t.Errorf("rates = %d, want 1", len(rates))
	}

	resp, _ = f.do(t, http.MethodGet, "/api/v1/rates", "", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing params status = %d, want 400", resp.StatusCode)
	}
}
