package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// FxRateCache caches resolved FX rates by pair and date. Rates are pinned
// per calendar day, so the cache key carries the date, not the timestamp.
type FxRateCache struct {
	client *redislib.Client
	ttl    time.Duration
}

// NewFxRateCache creates a new FxRateCache.
func NewFxRateCache(client *redislib.Client, ttl time.Duration) *FxRateCache {
	return &FxRateCache{
		client: client,
		ttl:    ttl,
	}
}

func fxKey(base, quote string, at time.Time) string {
	return fmt.Sprintf("fx:%s:%s:%s", base, quote, at.UTC().Format("2006-01-02"))
}

// Get returns the cached rate for a pair on a date, or false on a miss.
func (c *FxRateCache) Get(ctx context.Context, base, quote string, at time.Time) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, fxKey(base, quote, at)).Result()
	if err == redislib.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, err
	}

	return rate, true, nil
}

// Set caches a rate for a pair on a date.
func (c *FxRateCache) Set(ctx context.Context, base, quote string, at time.Time, rate decimal.Decimal) error {
	return c.client.Set(ctx, fxKey(base, quote, at), rate.String(), c.ttl).Err()
}
