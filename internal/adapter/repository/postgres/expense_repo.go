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

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `
	id, account_id, payee_account_id, created_by_id, description, amount,
	currency, status, payout_method_id, legacy_payout_method,
	processed_at, created_at, updated_at, deleted_at`

// Create inserts an expense with its items and attachments within a
// transaction.
func (r *ExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO expenses (
			id, account_id, payee_account_id, created_by_id, description,
			amount, currency, status, payout_method_id, legacy_payout_method,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		expense.ID,
		expense.AccountID,
		expense.PayeeAccountID,
		expense.CreatedByID,
		expense.Description,
		expense.Amount,
		expense.Currency,
		string(expense.Status),
		expense.PayoutMethodID,
		expense.LegacyPayoutMethod,
		timeToPgTimestamptz(expense.CreatedAt),
		timeToPgTimestamptz(expense.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if err := r.insertItems(ctx, pgxTx, expense.Items); err != nil {
		return err
	}

	for _, att := range expense.Attachments {
		_, err := pgxTx.Exec(ctx, `
			INSERT INTO expense_attachments (id, expense_id, url, name, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			att.ID, att.ExpenseID, att.URL, att.Name, timeToPgTimestamptz(att.CreatedAt))
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an expense with its items and attachments.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = $1 AND deleted_at IS NULL`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	if err := r.loadChildren(ctx, r.pool, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetByIDForUpdate retrieves an expense with a FOR UPDATE lock so concurrent
// status transitions serialize on the row.
func (r *ExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	if err := r.loadChildren(ctx, pgxTx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// UpdateStatus updates an expense's status within a transaction.
func (r *ExpenseRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.ExpenseStatus, processedAt *time.Time, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	var processed pgtype.Timestamptz
	if processedAt != nil {
		processed = timeToPgTimestamptz(*processedAt)
	}

	tag, err := pgxTx.Exec(ctx, `
		UPDATE expenses
		SET status = $2, processed_at = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`,
		id, string(status), processed, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// Update updates an expense's mutable fields within a transaction.
func (r *ExpenseRepository) Update(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE expenses
		SET description = $2, amount = $3, status = $4, payout_method_id = $5,
		    updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`,
		expense.ID,
		expense.Description,
		expense.Amount,
		string(expense.Status),
		expense.PayoutMethodID,
		timeToPgTimestamptz(expense.UpdatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ReplaceItems swaps an expense's line items within a transaction.
func (r *ExpenseRepository) ReplaceItems(ctx context.Context, tx usecase.Transaction, expenseID string, items []domain.ExpenseItem) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM expense_items WHERE expense_id = $1`, expenseID); err != nil {
		return err
	}

	return r.insertItems(ctx, pgxTx, items)
}

// SoftDelete tombstones an expense within a transaction.
func (r *ExpenseRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE expenses SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, timeToPgTimestamptz(deletedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ListByAccount lists an account's expenses, optionally filtered by status,
// newest first. Items and attachments are not loaded for listings.
func (r *ExpenseRepository) ListByAccount(ctx context.Context, accountID string, status *domain.ExpenseStatus, limit, offset int) ([]*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE account_id = $1 AND deleted_at IS NULL`
	args := []any{accountID}

	if status != nil {
		query += ` AND status = $2 ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
		args = append(args, string(*status), limit, offset)
	} else {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) insertItems(ctx context.Context, tx pgx.Tx, items []domain.ExpenseItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO expense_items (id, expense_id, description, amount, incurred_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID,
			item.ExpenseID,
			item.Description,
			item.Amount,
			timeToPgTimestamptz(item.IncurredAt),
			timeToPgTimestamptz(item.CreatedAt))
		if err != nil {
			return err
		}
	}

	return nil
}

// querier is the read surface shared by the pool and an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *ExpenseRepository) loadChildren(ctx context.Context, q querier, expense *domain.Expense) error {
	rows, err := q.Query(ctx, `
		SELECT id, expense_id, description, amount, incurred_at, created_at
		FROM expense_items
		WHERE expense_id = $1
		ORDER BY created_at, id`, expense.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item       domain.ExpenseItem
			incurredAt pgtype.Timestamptz
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.ExpenseID, &item.Description, &item.Amount, &incurredAt, &createdAt); err != nil {
			return err
		}
		item.IncurredAt = incurredAt.Time
		item.CreatedAt = createdAt.Time
		expense.Items = append(expense.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	attRows, err := q.Query(ctx, `
		SELECT id, expense_id, url, name, created_at
		FROM expense_attachments
		WHERE expense_id = $1
		ORDER BY created_at, id`, expense.ID)
	if err != nil {
		return err
	}
	defer attRows.Close()

	for attRows.Next() {
		var (
			att       domain.ExpenseAttachment
			createdAt pgtype.Timestamptz
		)
		if err := attRows.Scan(&att.ID, &att.ExpenseID, &att.URL, &att.Name, &createdAt); err != nil {
			return err
		}
		att.CreatedAt = createdAt.Time
		expense.Attachments = append(expense.Attachments, att)
	}

	return attRows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		expense     domain.Expense
		status      string
		processedAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		deletedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&expense.ID,
		&expense.AccountID,
		&expense.PayeeAccountID,
		&expense.CreatedByID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&status,
		&expense.PayoutMethodID,
		&expense.LegacyPayoutMethod,
		&processedAt,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Status = domain.ExpenseStatus(status)
	expense.CreatedAt = createdAt.Time
	expense.UpdatedAt = updatedAt.Time
	if processedAt.Valid {
		t := processedAt.Time
		expense.ProcessedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		expense.DeletedAt = &t
	}

	return &expense, nil
}
