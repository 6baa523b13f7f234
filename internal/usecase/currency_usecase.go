package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CurrencyUsecase interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
	AddRate(ctx context.Context, from, to domain.Currency, rate decimal.Decimal, effectiveDate time.Time) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context, from, to domain.Currency) ([]*domain.ExchangeRate, error)
}

// DefaultCurrencyUsecase converts amounts using the latest stored rate for the
// ordered pair. Satisfies engine.Converter.
type DefaultCurrencyUsecase struct {
	rateRepo  domain.ExchangeRateRepository
	rateCache cache.RateCache
}

func NewDefaultCurrencyUsecase(rateRepo domain.ExchangeRateRepository, rateCache cache.RateCache) *DefaultCurrencyUsecase {
	return &DefaultCurrencyUsecase{
		rateRepo:  rateRepo,
		rateCache: rateCache,
	}
}

// Convert returns amount in the target currency rounded to 2 decimals.
// Same-currency amounts pass through untouched, without rounding.
func (uc *DefaultCurrencyUsecase) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	if rate, ok := uc.rateCache.Get(ctx, from, to); ok {
		return amount.Mul(rate).Round(2), nil
	}

	latest, err := uc.rateRepo.FindLatestRate(from, to, time.Now())
	if err != nil {
		return decimal.Zero, err
	}
	if latest == nil {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", domain.ErrConversionUnavailable, from, to)
	}

	uc.rateCache.Set(ctx, from, to, latest.Rate)
	return amount.Mul(latest.Rate).Round(2), nil
}

func (uc *DefaultCurrencyUsecase) AddRate(ctx context.Context, from, to domain.Currency, rate decimal.Decimal, effectiveDate time.Time) (*domain.ExchangeRate, error) {
	if !from.IsSupported() || !to.IsSupported() {
		return nil, fmt.Errorf("%w: unsupported currency pair %s/%s", domain.ErrBusinessRuleViolation, from, to)
	}
	if from == to {
		return nil, fmt.Errorf("%w: rate currencies must differ", domain.ErrBusinessRuleViolation)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", domain.ErrBusinessRuleViolation)
	}
	if effectiveDate.IsZero() {
		effectiveDate = time.Now()
	}

	exchangeRate := &domain.ExchangeRate{
		ID:            uuid.New().String(),
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          rate,
		EffectiveDate: effectiveDate,
	}
	if err := uc.rateRepo.CreateRate(exchangeRate); err != nil {
		return nil, err
	}

	// The new rate may be backdated or not yet effective, so the cached value
	// is invalidated and the next conversion reads the latest effective rate.
	uc.rateCache.Delete(ctx, from, to)
	return exchangeRate, nil
}

func (uc *DefaultCurrencyUsecase) ListRates(ctx context.Context, from, to domain.Currency) ([]*domain.ExchangeRate, error) {
	return uc.rateRepo.ListRates(from, to)
}
