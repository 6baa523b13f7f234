// Package memory provides in-memory implementations of the domain
// repositories. Handler and usecase tests run against it so the full
// submission path can be exercised without Postgres.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
)

type Store struct {
	mu           sync.RWMutex
	negotiations map[string]*domain.Negotiation
	offers       map[string]*domain.Offer
	offerSeq     int
	offerOrder   map[string]int
	rules        map[string]*domain.NegotiationRule
	rates        []*domain.ExchangeRate
}

func NewStore() *Store {
	return &Store{
		negotiations: make(map[string]*domain.Negotiation),
		offers:       make(map[string]*domain.Offer),
		offerOrder:   make(map[string]int),
		rules:        make(map[string]*domain.NegotiationRule),
	}
}

func copyNegotiation(n *domain.Negotiation) *domain.Negotiation {
	cp := *n
	return &cp
}

func copyOffer(o *domain.Offer) *domain.Offer {
	cp := *o
	return &cp
}

func copyRule(r *domain.NegotiationRule) *domain.NegotiationRule {
	cp := *r
	return &cp
}

// --- NegotiationRepository ---

func (s *Store) CreateNegotiation(negotiation *domain.Negotiation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	negotiation.CreatedAt = now
	negotiation.UpdatedAt = now
	s.negotiations[negotiation.ID] = copyNegotiation(negotiation)
	return nil
}

func (s *Store) GetNegotiationByID(negotiationID string) (*domain.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.negotiations[negotiationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyNegotiation(n), nil
}

func (s *Store) UpdateNegotiation(negotiation *domain.Negotiation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.negotiations[negotiation.ID]; !ok {
		return domain.ErrNotFound
	}
	negotiation.UpdatedAt = time.Now()
	s.negotiations[negotiation.ID] = copyNegotiation(negotiation)
	return nil
}

func (s *Store) ListByRequesterID(requesterID string) ([]*domain.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Negotiation
	for _, n := range s.negotiations {
		if n.RequesterID == requesterID {
			out = append(out, copyNegotiation(n))
		}
	}
	sortNegotiations(out)
	return out, nil
}

func (s *Store) ListByFulfillerID(fulfillerID string) ([]*domain.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Negotiation
	for _, n := range s.negotiations {
		if n.FulfillerID == fulfillerID {
			out = append(out, copyNegotiation(n))
		}
	}
	sortNegotiations(out)
	return out, nil
}

func (s *Store) FindExpiredNegotiations(now time.Time) ([]*domain.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Negotiation
	for _, n := range s.negotiations {
		if n.Status.IsProposable() && n.IsExpiredAt(now) {
			out = append(out, copyNegotiation(n))
		}
	}
	sortNegotiations(out)
	return out, nil
}

func (s *Store) ApplyDecision(negotiation *domain.Negotiation, offer *domain.Offer, counter *domain.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.negotiations[negotiation.ID]; !ok {
		return domain.ErrNotFound
	}

	negotiation.UpdatedAt = time.Now()
	s.negotiations[negotiation.ID] = copyNegotiation(negotiation)
	s.insertOfferLocked(offer)
	if counter != nil {
		s.insertOfferLocked(counter)
	}
	return nil
}

func sortNegotiations(negotiations []*domain.Negotiation) {
	sort.Slice(negotiations, func(i, j int) bool {
		return negotiations[i].CreatedAt.Before(negotiations[j].CreatedAt)
	})
}

// --- OfferRepository ---

func (s *Store) insertOfferLocked(offer *domain.Offer) {
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = time.Now()
	}
	s.offerSeq++
	s.offerOrder[offer.ID] = s.offerSeq
	s.offers[offer.ID] = copyOffer(offer)
}

func (s *Store) CreateOffer(offer *domain.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertOfferLocked(offer)
	return nil
}

func (s *Store) GetOfferByID(offerID string) (*domain.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offers[offerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyOffer(o), nil
}

func (s *Store) ListByNegotiationID(negotiationID string) ([]*domain.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Offer
	for _, o := range s.offers {
		if o.NegotiationID == negotiationID {
			out = append(out, copyOffer(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoundNumber != out[j].RoundNumber {
			return out[i].RoundNumber < out[j].RoundNumber
		}
		return s.offerOrder[out[i].ID] < s.offerOrder[out[j].ID]
	})
	return out, nil
}

// --- NegotiationRuleRepository ---

func (s *Store) CreateRule(rule *domain.NegotiationRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	s.rules[rule.ID] = copyRule(rule)
	return nil
}

func (s *Store) GetRuleByID(ruleID string) (*domain.NegotiationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rules[ruleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyRule(r), nil
}

func (s *Store) UpdateRule(rule *domain.NegotiationRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[rule.ID]; !ok {
		return domain.ErrNotFound
	}
	rule.UpdatedAt = time.Now()
	s.rules[rule.ID] = copyRule(rule)
	return nil
}

func (s *Store) DeleteRule(ruleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[ruleID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.rules, ruleID)
	return nil
}

func (s *Store) GetRuleByOwnerAndItem(ownerID, itemID string) (*domain.NegotiationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rules {
		if r.OwnerID == ownerID && r.ItemID == itemID {
			return copyRule(r), nil
		}
	}
	return nil, nil
}

func (s *Store) ListByOwnerID(ownerID string) ([]*domain.NegotiationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.NegotiationRule
	for _, r := range s.rules {
		if r.OwnerID == ownerID {
			out = append(out, copyRule(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- ExchangeRateRepository ---

func (s *Store) CreateRate(rate *domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rate.CreatedAt.IsZero() {
		rate.CreatedAt = time.Now()
	}
	cp := *rate
	s.rates = append(s.rates, &cp)
	return nil
}

func (s *Store) FindLatestRate(from, to domain.Currency, asOf time.Time) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.ExchangeRate
	for _, r := range s.rates {
		if r.FromCurrency != from || r.ToCurrency != to || r.EffectiveDate.After(asOf) {
			continue
		}
		if latest == nil || r.EffectiveDate.After(latest.EffectiveDate) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (s *Store) ListRates(from, to domain.Currency) ([]*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.ExchangeRate
	for _, r := range s.rates {
		if r.FromCurrency == from && r.ToCurrency == to {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.Before(out[j].EffectiveDate) })
	return out, nil
}
