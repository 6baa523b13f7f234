// Package engine holds the deterministic negotiation evaluator. Evaluate is a
// pure function over the offer, the negotiation record, and the fulfiller's
// rule; its only dependency is the currency converter.
package engine

import (
	"context"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Converter normalizes prices between currencies. Must be safe for
// concurrent use.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
}

// Decision is the outcome of evaluating one requester offer.
type Decision struct {
	OfferStatus         domain.OfferStatus
	ReasonCode          string
	CounterGenerated    bool
	CounterPrice        decimal.Decimal
	CounterQty          int
	CounterDeliveryDays int
}

type NegotiationEngine struct {
	converter Converter
}

func NewNegotiationEngine(converter Converter) *NegotiationEngine {
	return &NegotiationEngine{converter: converter}
}

// Evaluate applies the ordered decision policy: round budget, delivery window,
// price floor, auto-accept threshold, counter. All price comparisons happen in
// the rule's currency at 2-decimal precision. A conversion failure aborts the
// evaluation entirely; no partial decision is produced.
func (e *NegotiationEngine) Evaluate(
	ctx context.Context,
	offer *domain.Offer,
	negotiation *domain.Negotiation,
	rule *domain.NegotiationRule,
) (*Decision, error) {
	if negotiation.CurrentRound > rule.MaxRounds {
		return &Decision{
			OfferStatus: domain.OfferRejected,
			ReasonCode:  domain.ReasonMaxRoundsExceeded,
		}, nil
	}

	if offer.DeliveryDays > rule.MaxDeliveryDays {
		return &Decision{
			OfferStatus: domain.OfferRejected,
			ReasonCode:  domain.ReasonDeliveryExceedsMax,
		}, nil
	}

	priceInRuleCurrency, err := e.converter.Convert(ctx, offer.ProposedPrice, offer.Currency, rule.Currency)
	if err != nil {
		return nil, err
	}

	effectiveFloor := rule.EffectivePrice(rule.PriceFloor, offer.ProposedQty)
	effectiveThreshold := rule.EffectivePrice(rule.AutoAcceptThreshold, offer.ProposedQty)

	if priceInRuleCurrency.LessThan(effectiveFloor) {
		return &Decision{
			OfferStatus: domain.OfferRejected,
			ReasonCode:  domain.ReasonPriceBelowFloor,
		}, nil
	}

	if priceInRuleCurrency.GreaterThanOrEqual(effectiveThreshold) {
		return &Decision{
			OfferStatus: domain.OfferAccepted,
			ReasonCode:  domain.ReasonAutoAccepted,
		}, nil
	}

	// Negotiable band: counter at the effective threshold, expressed back in
	// the offer's currency.
	counterPrice, err := e.converter.Convert(ctx, effectiveThreshold, rule.Currency, offer.Currency)
	if err != nil {
		return nil, err
	}

	counterDelivery := offer.DeliveryDays
	if rule.MaxDeliveryDays < counterDelivery {
		counterDelivery = rule.MaxDeliveryDays
	}

	return &Decision{
		OfferStatus:         domain.OfferCountered,
		ReasonCode:          domain.ReasonAutoCountered,
		CounterGenerated:    true,
		CounterPrice:        counterPrice,
		CounterQty:          offer.ProposedQty,
		CounterDeliveryDays: counterDelivery,
	}, nil
}
