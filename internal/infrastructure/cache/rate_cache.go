package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RateCache is a read-through cache for latest exchange rates. Rates are
// append-only, so a short TTL only delays visibility of newer rates.
type RateCache interface {
	Get(ctx context.Context, from, to domain.Currency) (decimal.Decimal, bool)
	Set(ctx context.Context, from, to domain.Currency, rate decimal.Decimal)
	Delete(ctx context.Context, from, to domain.Currency)
}

type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRateCache(client *redis.Client, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{client: client, ttl: ttl}
}

func rateKey(from, to domain.Currency) string {
	return fmt.Sprintf("rfq:rate:%s:%s", from, to)
}

func (c *RedisRateCache) Get(ctx context.Context, from, to domain.Currency) (decimal.Decimal, bool) {
	raw, err := c.client.Get(ctx, rateKey(from, to)).Result()
	if err != nil {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return rate, true
}

func (c *RedisRateCache) Set(ctx context.Context, from, to domain.Currency, rate decimal.Decimal) {
	// Best effort: a cache write failure never fails a conversion.
	c.client.Set(ctx, rateKey(from, to), rate.String(), c.ttl)
}

func (c *RedisRateCache) Delete(ctx context.Context, from, to domain.Currency) {
	c.client.Del(ctx, rateKey(from, to))
}

// NoopRateCache disables caching; every lookup goes to the rate store.
type NoopRateCache struct{}

func (NoopRateCache) Get(context.Context, domain.Currency, domain.Currency) (decimal.Decimal, bool) {
	return decimal.Zero, false
}

func (NoopRateCache) Set(context.Context, domain.Currency, domain.Currency, decimal.Decimal) {}

func (NoopRateCache) Delete(context.Context, domain.Currency, domain.Currency) {}
