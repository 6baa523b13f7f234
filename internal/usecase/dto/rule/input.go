package ruledto

import (
	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/shopspring/decimal"
)

type RuleInput struct {
	ItemID              string
	PriceFloor          decimal.Decimal
	AutoAcceptThreshold decimal.Decimal
	MaxDeliveryDays     int
	MaxRounds           int
	VolumeDiscountPct   decimal.Decimal
	VolumeThreshold     int
	Currency            domain.Currency
}
