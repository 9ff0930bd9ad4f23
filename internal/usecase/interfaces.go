package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryRepository defines data access for ledger entries. Entries are
// append-only: there is no update, only create, read and soft delete.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByGroup(ctx context.Context, groupID string) ([]*domain.LedgerEntry, error)
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	GetByExpense(ctx context.Context, expenseID string) ([]*domain.LedgerEntry, error)
	MarkRefunded(ctx context.Context, tx Transaction, entryID, refundEntryID string) error
	SoftDelete(ctx context.Context, tx Transaction, entryID string, deletedAt time.Time) error
	// SumNetAmountByAccount is the account balance: the sum of
	// netAmountInAccountCurrency over all live entries on the account's ledger.
	SumNetAmountByAccount(ctx context.Context, accountID string) (int64, error)
	ListGroups(ctx context.Context, limit, offset int) ([]string, error)
}

// ExpenseRepository defines data access for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, tx Transaction, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Expense, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.ExpenseStatus, processedAt *time.Time, updatedAt time.Time) error
	Update(ctx context.Context, tx Transaction, expense *domain.Expense) error
	ReplaceItems(ctx context.Context, tx Transaction, expenseID string, items []domain.ExpenseItem) error
	SoftDelete(ctx context.Context, tx Transaction, id string, deletedAt time.Time) error
	ListByAccount(ctx context.Context, accountID string, status *domain.ExpenseStatus, limit, offset int) ([]*domain.Expense, error)
}

// PayoutMethodRepository defines data access for payout methods.
type PayoutMethodRepository interface {
	Create(ctx context.Context, method *domain.PayoutMethod) error
	GetByID(ctx context.Context, id string) (*domain.PayoutMethod, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.PayoutMethod, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// FxRateRepository defines data access for pinned FX rates.
type FxRateRepository interface {
	Get(ctx context.Context, base, quote string, asOf time.Time) (*domain.FxRate, error)
	Put(ctx context.Context, rate *domain.FxRate) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// FxResolver looks up a conversion rate for a currency pair at a point in
// time. Rates must be deterministic for a given date.
type FxResolver interface {
	GetRate(ctx context.Context, base, quote string, at time.Time) (decimal.Decimal, error)
}

// Authorizer provides the opaque capability checks the core calls before
// state transitions. Policy lives outside the core.
type Authorizer interface {
	CanApprove(actor *domain.Actor, expense *domain.Expense) bool
	CanReject(actor *domain.Actor, expense *domain.Expense) bool
	CanEdit(actor *domain.Actor, expense *domain.Expense) bool
	CanPay(actor *domain.Actor, expense *domain.Expense) bool
	CanMarkUnpaid(actor *domain.Actor, expense *domain.Expense) bool
	CanRefund(actor *domain.Actor, entry *domain.LedgerEntry) bool
	CanDelete(actor *domain.Actor, expense *domain.Expense) bool
}

// PayoutQuote is a provider fee estimate, in the provider's fee currency.
type PayoutQuote struct {
	Fee         int64
	FeeCurrency string
}

// PayoutResult is the outcome of an external payout call.
type PayoutResult struct {
	ProviderReference string
	Fee               int64
	FeeCurrency       string
	// Deferred reports that the provider completes the payout
	// asynchronously; the ledger posting waits for confirmation.
	Deferred bool
}

// PayoutProvider executes payouts over an external rail. Quote and Pay are
// out-of-transaction network operations; their failure must surface before
// any status transition.
type PayoutProvider interface {
	Quote(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*PayoutQuote, error)
	Pay(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*PayoutResult, error)
}

// PayoutProviderRegistry resolves the provider for a payout method kind.
type PayoutProviderRegistry interface {
	For(kind domain.PayoutMethodKind) (PayoutProvider, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
