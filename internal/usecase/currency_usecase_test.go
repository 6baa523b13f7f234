package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/shopspring/decimal"
)

func TestConvertSameCurrencyPassesThrough(t *testing.T) {
	env := newTestEnv(t)

	amount := mustDecimal(t, "10.005")
	got, err := env.currency.Convert(context.Background(), amount, domain.CurrencyUSD, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	// Same-currency amounts are not rounded.
	if !got.Equal(amount) {
		t.Errorf("got %s, want %s unchanged", got, amount)
	}
}

func TestConvertUsesLatestEffectiveRate(t *testing.T) {
	env := newTestEnv(t)
	env.seedRate(t, domain.CurrencyEUR, domain.CurrencyUSD, "1.05", time.Now().AddDate(0, 0, -10))
	env.seedRate(t, domain.CurrencyEUR, domain.CurrencyUSD, "1.10", dayAgo())

	got, err := env.currency.Convert(context.Background(), mustDecimal(t, "100.00"), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !got.Equal(mustDecimal(t, "110.00")) {
		t.Errorf("got %s, want 110.00 from the newer rate", got)
	}
}

func TestConvertIgnoresFutureRates(t *testing.T) {
	env := newTestEnv(t)
	env.seedRate(t, domain.CurrencyEUR, domain.CurrencyUSD, "1.05", dayAgo())
	env.seedRate(t, domain.CurrencyEUR, domain.CurrencyUSD, "1.50", time.Now().AddDate(0, 0, 2))

	got, err := env.currency.Convert(context.Background(), mustDecimal(t, "100.00"), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !got.Equal(mustDecimal(t, "105.00")) {
		t.Errorf("got %s, want 105.00 (the future rate is not effective yet)", got)
	}
}

func TestConvertRoundsHalfUp(t *testing.T) {
	env := newTestEnv(t)
	env.seedRate(t, domain.CurrencyEUR, domain.CurrencyUSD, "0.8567", dayAgo())

	got, err := env.currency.Convert(context.Background(), mustDecimal(t, "10.00"), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !got.Equal(mustDecimal(t, "8.57")) {
		t.Errorf("got %s, want 8.57", got)
	}
}

func TestConvertNoRate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.currency.Convert(context.Background(), mustDecimal(t, "10.00"), domain.CurrencyGBP, domain.CurrencyJPY)
	if !errors.Is(err, domain.ErrConversionUnavailable) {
		t.Fatalf("err = %v, want ErrConversionUnavailable", err)
	}
}

func TestConvertPairsAreDirectional(t *testing.T) {
	env := newTestEnv(t)
	env.seedRate(t, domain.CurrencyEUR, domain.CurrencyUSD, "1.10", dayAgo())

	// The reverse pair has no stored rate; no inversion is attempted.
	_, err := env.currency.Convert(context.Background(), mustDecimal(t, "10.00"), domain.CurrencyUSD, domain.CurrencyEUR)
	if !errors.Is(err, domain.ErrConversionUnavailable) {
		t.Fatalf("err = %v, want ErrConversionUnavailable", err)
	}
}

type stubRateCache struct {
	rates map[string]decimal.Decimal
	hits  int
}

func (c *stubRateCache) Get(_ context.Context, from, to domain.Currency) (decimal.Decimal, bool) {
	rate, ok := c.rates[string(from)+"/"+string(to)]
	if ok {
		c.hits++
	}
	return rate, ok
}

func (c *stubRateCache) Set(_ context.Context, from, to domain.Currency, rate decimal.Decimal) {
	c.rates[string(from)+"/"+string(to)] = rate
}

func (c *stubRateCache) Delete(_ context.Context, from, to domain.Currency) {
	delete(c.rates, string(from)+"/"+string(to))
}

func TestConvertReadsThroughCache(t *testing.T) {
	env := newTestEnv(t)
	rateCache := &stubRateCache{rates: map[string]decimal.Decimal{}}
	converter := NewDefaultCurrencyUsecase(env.store, rateCache)

	env.seedRate(t, domain.CurrencyEUR, domain.CurrencyUSD, "1.10", dayAgo())

	// First conversion misses the cache and populates it.
	if _, err := converter.Convert(context.Background(), mustDecimal(t, "10.00"), domain.CurrencyEUR, domain.CurrencyUSD); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(rateCache.rates) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(rateCache.rates))
	}

	got, err := converter.Convert(context.Background(), mustDecimal(t, "20.00"), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if rateCache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", rateCache.hits)
	}
	if !got.Equal(mustDecimal(t, "22.00")) {
		t.Errorf("got %s, want 22.00", got)
	}
}

func TestAddRate(t *testing.T) {
	env := newTestEnv(t)

	rate, err := env.currency.AddRate(context.Background(), domain.CurrencyEUR, domain.CurrencyUSD, mustDecimal(t, "1.10"), dayAgo())
	if err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	if rate.ID == "" {
		t.Error("expected a generated id")
	}

	got, err := env.currency.Convert(context.Background(), mustDecimal(t, "10.00"), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !got.Equal(mustDecimal(t, "11.00")) {
		t.Errorf("got %s, want 11.00", got)
	}

	listed, err := env.currency.ListRates(context.Background(), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("ListRates: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("rates = %d, want 1", len(listed))
	}
}

func TestAddRateInvalidatesCachedRate(t *testing.T) {
	env := newTestEnv(t)
	rateCache := &stubRateCache{rates: map[string]decimal.Decimal{}}
	converter := NewDefaultCurrencyUsecase(env.store, rateCache)

	if _, err := converter.AddRate(context.Background(), domain.CurrencyEUR, domain.CurrencyUSD, mustDecimal(t, "1.10"), dayAgo()); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	if _, err := converter.Convert(context.Background(), mustDecimal(t, "100.00"), domain.CurrencyEUR, domain.CurrencyUSD); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	// Backfilling an older rate must not shadow the current latest.
	if _, err := converter.AddRate(context.Background(), domain.CurrencyEUR, domain.CurrencyUSD, mustDecimal(t, "1.05"), time.Now().AddDate(0, 0, -10)); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	got, err := converter.Convert(context.Background(), mustDecimal(t, "100.00"), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !got.Equal(mustDecimal(t, "110.00")) {
		t.Errorf("got %s, want 110.00 (the backdated rate is older than the latest)", got)
	}

	// A future-dated rate is stored but not effective yet.
	if _, err := converter.AddRate(context.Background(), domain.CurrencyEUR, domain.CurrencyUSD, mustDecimal(t, "9.99"), time.Now().AddDate(0, 0, 5)); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	got, err = converter.Convert(context.Background(), mustDecimal(t, "100.00"), domain.CurrencyEUR, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !got.Equal(mustDecimal(t, "110.00")) {
		t.Errorf("got %s, want 110.00 (the future rate is not effective yet)", got)
	}
}

func TestAddRateValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		from domain.Currency
		to   domain.Currency
		rate string
	}{
		{"same currency", domain.CurrencyUSD, domain.CurrencyUSD, "1.00"},
		{"unsupported from", "XXX", domain.CurrencyUSD, "1.00"},
		{"unsupported to", domain.CurrencyUSD, "XXX", "1.00"},
		{"zero rate", domain.CurrencyEUR, domain.CurrencyUSD, "0"},
		{"negative rate", domain.CurrencyEUR, domain.CurrencyUSD, "-1.10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.currency.AddRate(context.Background(), tc.from, tc.to, mustDecimal(t, tc.rate), time.Now())
			if !errors.Is(err, domain.ErrBusinessRuleViolation) {
				t.Fatalf("err = %v, want ErrBusinessRuleViolation", err)
			}
		})
	}
}
