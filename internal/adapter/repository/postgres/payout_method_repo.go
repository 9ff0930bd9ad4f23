package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundhost/ledger/internal/domain"
)

// PayoutMethodRepository implements usecase.PayoutMethodRepository.
type PayoutMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPayoutMethodRepository creates a new PayoutMethodRepository.
func NewPayoutMethodRepository(pool *pgxpool.Pool) *PayoutMethodRepository {
	return &PayoutMethodRepository{pool: pool}
}

// Create registers a payout method.
func (r *PayoutMethodRepository) Create(ctx context.Context, method *domain.PayoutMethod) error {
	data, err := marshalJSONB(method.Data)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO payout_methods (
			id, account_id, kind, name, data, saved_for_reuse,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		method.ID,
		method.AccountID,
		string(method.Kind),
		method.Name,
		data,
		method.SavedForReuse,
		timeToPgTimestamptz(method.CreatedAt),
		timeToPgTimestamptz(method.UpdatedAt),
	)

	return err
}

// GetByID retrieves a payout method by ID.
func (r *PayoutMethodRepository) GetByID(ctx context.Context, id string) (*domain.PayoutMethod, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, account_id, kind, name, data, saved_for_reuse, created_at, updated_at
		FROM payout_methods
		WHERE id = $1`, id)

	method, err := scanPayoutMethod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayoutMethodNotFound
		}

		return nil, err
	}

	return method, nil
}

// ListByAccount lists an account's payout methods.
func (r *PayoutMethodRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.PayoutMethod, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, kind, name, data, saved_for_reuse, created_at, updated_at
		FROM payout_methods
		WHERE account_id = $1
		ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []*domain.PayoutMethod
	for rows.Next() {
		method, err := scanPayoutMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	return methods, rows.Err()
}

func scanPayoutMethod(row pgx.Row) (*domain.PayoutMethod, error) {
	var (
		method    domain.PayoutMethod
		kind      string
		data      []byte
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&method.ID,
		&method.AccountID,
		&kind,
		&method.Name,
		&data,
		&method.SavedForReuse,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	method.Kind = domain.PayoutMethodKind(kind)
	method.CreatedAt = createdAt.Time
	method.UpdatedAt = updatedAt.Time
	if data != nil {
		method.Data = unmarshalJSONB(data)
	}

	return &method, nil
}
