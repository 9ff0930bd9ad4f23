package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundhost/ledger/internal/domain"
)

// FxRateRepository stores pinned FX rates by pair and date.
type FxRateRepository struct {
	pool *pgxpool.Pool
}

// NewFxRateRepository creates a new FxRateRepository.
func NewFxRateRepository(pool *pgxpool.Pool) *FxRateRepository {
	return &FxRateRepository{pool: pool}
}

// Get retrieves the pinned rate for a pair on a date. Rates are pinned per
// calendar day; the time component of asOf is ignored.
func (r *FxRateRepository) Get(ctx context.Context, base, quote string, asOf time.Time) (*domain.FxRate, error) {
	var (
		rate   pgtype.Numeric
		asOfTs pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT rate, as_of
		FROM fx_rates
		WHERE base = $1 AND quote = $2 AND as_of = $3::date`,
		base, quote, asOf.UTC()).Scan(&rate, &asOfTs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no rate pinned for %s/%s on %s",
				domain.ErrValidationFailed, base, quote, asOf.UTC().Format("2006-01-02"))
		}

		return nil, err
	}

	return &domain.FxRate{
		Base:  base,
		Quote: quote,
		Rate:  numericToDecimal(rate),
		AsOf:  asOfTs.Time,
	}, nil
}

// Put pins a rate for a pair and date, overwriting any existing pin.
func (r *FxRateRepository) Put(ctx context.Context, rate *domain.FxRate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO fx_rates (base, quote, rate, as_of)
		VALUES ($1, $2, $3, $4::date)
		ON CONFLICT (base, quote, as_of)
		DO UPDATE SET rate = EXCLUDED.rate`,
		rate.Base,
		rate.Quote,
		decimalToNumeric(rate.Rate),
		rate.AsOf.UTC(),
	)

	return err
}
