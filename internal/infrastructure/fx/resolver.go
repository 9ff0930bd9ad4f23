package fx

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/infrastructure/metrics"
	"github.com/fundhost/ledger/internal/usecase"
)

// RateCache is the cache surface the resolver reads through.
type RateCache interface {
	Get(ctx context.Context, base, quote string, at time.Time) (decimal.Decimal, bool, error)
	Set(ctx context.Context, base, quote string, at time.Time, rate decimal.Decimal) error
}

// RateSource fetches a rate from an external provider.
type RateSource interface {
	FetchRate(ctx context.Context, base, quote string, at time.Time) (decimal.Decimal, error)
}

// Resolver implements usecase.FxResolver. Lookups go cache, then the pinned
// store, then the external source. A rate fetched from the source is pinned
// before it is returned, so later lookups for the same pair and date yield
// the same integers.
type Resolver struct {
	rates   usecase.FxRateRepository
	cache   RateCache
	source  RateSource
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewResolver creates a new Resolver. Cache, source and metrics may be nil;
// without a cache and a source the resolver serves pinned rates only.
func NewResolver(rates usecase.FxRateRepository, cache RateCache, source RateSource, logger zerolog.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		rates:   rates,
		cache:   cache,
		source:  source,
		logger:  logger,
		metrics: m,
	}
}

// GetRate resolves the conversion rate for a currency pair on a date.
func (r *Resolver) GetRate(ctx context.Context, base, quote string, at time.Time) (decimal.Decimal, error) {
	if base == quote {
		return decimal.NewFromInt(1), nil
	}

	if r.metrics != nil {
		r.metrics.FxLookups.WithLabelValues(base, quote).Inc()
	}

	if r.cache != nil {
		rate, ok, err := r.cache.Get(ctx, base, quote, at)
		if err != nil {
			r.logger.Warn().Err(err).Str("base", base).Str("quote", quote).Msg("fx cache read failed")
		} else if ok {
			if r.metrics != nil {
				r.metrics.FxCacheHits.Inc()
			}
			return rate, nil
		}
	}

	pinned, err := r.rates.Get(ctx, base, quote, at)
	if err == nil {
		r.cacheRate(ctx, base, quote, at, pinned.Rate)
		return pinned.Rate, nil
	}

	if r.source == nil {
		return decimal.Zero, err
	}

	fetched, err := r.source.FetchRate(ctx, base, quote, at)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: fetching %s/%s rate: %v", domain.ErrValidationFailed, base, quote, err)
	}

	if err := r.rates.Put(ctx, &domain.FxRate{Base: base, Quote: quote, Rate: fetched, AsOf: at}); err != nil {
		r.logger.Warn().Err(err).Str("base", base).Str("quote", quote).Msg("failed to pin fx rate")
	}
	r.cacheRate(ctx, base, quote, at, fetched)

	return fetched, nil
}

func (r *Resolver) cacheRate(ctx context.Context, base, quote string, at time.Time, rate decimal.Decimal) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, base, quote, at, rate); err != nil {
		r.logger.Warn().Err(err).Str("base", base).Str("quote", quote).Msg("fx cache write failed")
	}
}
