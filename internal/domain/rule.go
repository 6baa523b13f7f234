package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultMaxRounds = 3

var (
	oneHundred = decimal.NewFromInt(100)
)

// NegotiationRule is a fulfiller-owned configuration for one item. The
// negotiation engine uses it to auto-accept, counter, or reject offers.
type NegotiationRule struct {
	ID                  string
	OwnerID             string
	ItemID              string
	PriceFloor          decimal.Decimal
	AutoAcceptThreshold decimal.Decimal
	MaxDeliveryDays     int
	MaxRounds           int
	VolumeDiscountPct   decimal.Decimal
	VolumeThreshold     int
	Currency            Currency
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate enforces the rule invariants at create/update time. The evaluator
// never re-checks them.
func (r *NegotiationRule) Validate() error {
	if r.PriceFloor.IsNegative() || r.AutoAcceptThreshold.IsNegative() {
		return ErrBusinessRuleViolation
	}
	if r.PriceFloor.GreaterThan(r.AutoAcceptThreshold) {
		return ErrFloorAboveThreshold
	}
	if r.MaxDeliveryDays <= 0 {
		return ErrBusinessRuleViolation
	}
	if r.MaxRounds <= 0 {
		return ErrBusinessRuleViolation
	}
	if r.VolumeDiscountPct.IsNegative() || r.VolumeDiscountPct.GreaterThan(oneHundred) {
		return ErrBusinessRuleViolation
	}
	if r.VolumeThreshold < 0 {
		return ErrBusinessRuleViolation
	}
	if !r.Currency.IsSupported() {
		return ErrBusinessRuleViolation
	}
	return nil
}

// EffectivePrice applies the volume discount to basePrice when the proposed
// quantity qualifies. Below the threshold the base price is returned exactly
// as given, with no rounding applied.
func (r *NegotiationRule) EffectivePrice(basePrice decimal.Decimal, proposedQty int) decimal.Decimal {
	if r.VolumeThreshold > 0 && proposedQty >= r.VolumeThreshold && r.VolumeDiscountPct.IsPositive() {
		multiplier := decimal.NewFromInt(1).Sub(r.VolumeDiscountPct.DivRound(oneHundred, 4))
		return basePrice.Mul(multiplier).Round(2)
	}
	return basePrice
}

type NegotiationRuleRepository interface {
	CreateRule(rule *NegotiationRule) error
	GetRuleByID(ruleID string) (*NegotiationRule, error)
	UpdateRule(rule *NegotiationRule) error
	DeleteRule(ruleID string) error
	// GetRuleByOwnerAndItem returns nil when no rule exists for the pair.
	GetRuleByOwnerAndItem(ownerID, itemID string) (*NegotiationRule, error)
	ListByOwnerID(ownerID string) ([]*NegotiationRule, error)
}
