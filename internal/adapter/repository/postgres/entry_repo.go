package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `
	id, group_id, to_account_id, from_account_id, host_account_id,
	card_provider_account_id, currency, amount, host_currency,
	host_currency_fx_rate, amount_in_host_currency,
	net_amount_in_account_currency, platform_fee_in_host_currency,
	host_fee_in_host_currency, payment_processor_fee_in_host_currency,
	tax_amount, order_id, expense_id, refund_of_entry_id,
	refunded_by_entry_id, data, created_at, deleted_at`

// Create inserts a new ledger entry within a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	data, err := marshalJSONB(entry.Data)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO ledger_entries (
			id, group_id, to_account_id, from_account_id, host_account_id,
			card_provider_account_id, currency, amount, host_currency,
			host_currency_fx_rate, amount_in_host_currency,
			net_amount_in_account_currency, platform_fee_in_host_currency,
			host_fee_in_host_currency, payment_processor_fee_in_host_currency,
			tax_amount, order_id, expense_id, refund_of_entry_id,
			refunded_by_entry_id, data, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)`,
		entry.ID,
		entry.GroupID,
		entry.ToAccountID,
		entry.FromAccountID,
		entry.HostAccountID,
		entry.CardProviderAccountID,
		entry.Currency,
		entry.Amount,
		entry.HostCurrency,
		decimalToNumeric(entry.HostCurrencyFxRate),
		entry.AmountInHostCurrency,
		entry.NetAmountInAccountCurrency,
		entry.PlatformFeeInHostCurrency,
		entry.HostFeeInHostCurrency,
		entry.PaymentProcessorFeeInHostCurrency,
		entry.TaxAmount,
		entry.OrderID,
		entry.ExpenseID,
		entry.RefundOfEntryID,
		entry.RefundedByEntryID,
		data,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByID retrieves an entry by ID, tombstoned or not.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// GetByGroup retrieves all legs of an entry group, including tombstoned ones.
func (r *EntryRepository) GetByGroup(ctx context.Context, groupID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE group_id = $1
		ORDER BY created_at, id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByAccount retrieves the live entries on an account's ledger, newest
// first.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE to_account_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByExpense retrieves all entries referencing an expense.
func (r *EntryRepository) GetByExpense(ctx context.Context, expenseID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE expense_id = $1
		ORDER BY created_at, id`, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// MarkRefunded points a refunded entry forward at its refund within a
// transaction.
func (r *EntryRepository) MarkRefunded(ctx context.Context, tx usecase.Transaction, entryID, refundEntryID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE ledger_entries SET refunded_by_entry_id = $2 WHERE id = $1`,
		entryID, refundEntryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// SoftDelete tombstones an entry within a transaction. The row stays for
// audit; balance queries skip it.
func (r *EntryRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, entryID string, deletedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE ledger_entries SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		entryID, timeToPgTimestamptz(deletedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// SumNetAmountByAccount computes the account balance over live entries.
func (r *EntryRepository) SumNetAmountByAccount(ctx context.Context, accountID string) (int64, error) {
	var sum int64

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(net_amount_in_account_currency), 0)
		FROM ledger_entries
		WHERE to_account_id = $1 AND deleted_at IS NULL`, accountID).Scan(&sum)
	if err != nil {
		return 0, err
	}

	return sum, nil
}

// ListGroups pages through the distinct entry group IDs.
func (r *EntryRepository) ListGroups(ctx context.Context, limit, offset int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT group_id
		FROM ledger_entries
		GROUP BY group_id
		ORDER BY MIN(created_at), group_id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groupIDs []string
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, err
		}
		groupIDs = append(groupIDs, groupID)
	}

	return groupIDs, rows.Err()
}

func scanEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		entry     domain.LedgerEntry
		fxRate    pgtype.Numeric
		data      []byte
		createdAt pgtype.Timestamptz
		deletedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.GroupID,
		&entry.ToAccountID,
		&entry.FromAccountID,
		&entry.HostAccountID,
		&entry.CardProviderAccountID,
		&entry.Currency,
		&entry.Amount,
		&entry.HostCurrency,
		&fxRate,
		&entry.AmountInHostCurrency,
		&entry.NetAmountInAccountCurrency,
		&entry.PlatformFeeInHostCurrency,
		&entry.HostFeeInHostCurrency,
		&entry.PaymentProcessorFeeInHostCurrency,
		&entry.TaxAmount,
		&entry.OrderID,
		&entry.ExpenseID,
		&entry.RefundOfEntryID,
		&entry.RefundedByEntryID,
		&data,
		&createdAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.HostCurrencyFxRate = numericToDecimal(fxRate)
	entry.CreatedAt = createdAt.Time
	if deletedAt.Valid {
		t := deletedAt.Time
		entry.DeletedAt = &t
	}
	if data != nil {
		entry.Data = unmarshalJSONB(data)
	}

	return &entry, nil
}
