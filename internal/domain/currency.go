package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

var supportedCurrencies = map[Currency]struct{}{
	CurrencyUSD: {},
	CurrencyEUR: {},
	CurrencyGBP: {},
	CurrencyJPY: {},
	CurrencyCAD: {},
	CurrencyAUD: {},
}

func (c Currency) IsSupported() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

// ExchangeRate is one dated rate for an ordered currency pair.
// Rates are append-only: newer rates are added, old ones are never changed.
type ExchangeRate struct {
	ID            string
	FromCurrency  Currency
	ToCurrency    Currency
	Rate          decimal.Decimal
	EffectiveDate time.Time
	CreatedAt     time.Time
}

type ExchangeRateRepository interface {
	CreateRate(rate *ExchangeRate) error
	// FindLatestRate returns the most recent rate for the ordered pair
	// effective on or before asOf, or nil if no rate exists.
	FindLatestRate(from, to Currency, asOf time.Time) (*ExchangeRate, error)
	ListRates(from, to Currency) ([]*ExchangeRate, error)
}
