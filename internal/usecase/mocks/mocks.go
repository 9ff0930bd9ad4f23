package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc    func(ctx context.Context, account *domain.Account) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Account, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*domain.Account, error)
	ListFunc      func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed populates the in-memory store directly.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range accounts {
		m.accounts[account.ID] = account
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (m *MockAccountRepository) GetBySlug(ctx context.Context, slug string) (*domain.Account, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, account := range m.accounts {
		if account.Slug == slug {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry
	order   []string

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByGroupFunc            func(ctx context.Context, groupID string) ([]*domain.LedgerEntry, error)
	GetByAccountFunc          func(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
	GetByExpenseFunc          func(ctx context.Context, expenseID string) ([]*domain.LedgerEntry, error)
	MarkRefundedFunc          func(ctx context.Context, tx usecase.Transaction, entryID, refundEntryID string) error
	SoftDeleteFunc            func(ctx context.Context, tx usecase.Transaction, entryID string, deletedAt time.Time) error
	SumNetAmountByAccountFunc func(ctx context.Context, accountID string) (int64, error)
	ListGroupsFunc            func(ctx context.Context, limit, offset int) ([]string, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.LedgerEntry),
	}
}

// Entries returns every stored entry in insertion order.
func (m *MockEntryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id])
	}
	return out
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[entry.ID]; exists {
		return domain.ErrConflict
	}
	m.entries[entry.ID] = entry
	m.order = append(m.order, entry.ID)
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return entry, nil
}

func (m *MockEntryRepository) GetByGroup(ctx context.Context, groupID string) ([]*domain.LedgerEntry, error) {
	if m.GetByGroupFunc != nil {
		return m.GetByGroupFunc(ctx, groupID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, id := range m.order {
		if m.entries[id].GroupID == groupID {
			out = append(out, m.entries[id])
		}
	}
	return out, nil
}

func (m *MockEntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, id := range m.order {
		if m.entries[id].ToAccountID == accountID {
			out = append(out, m.entries[id])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockEntryRepository) GetByExpense(ctx context.Context, expenseID string) ([]*domain.LedgerEntry, error) {
	if m.GetByExpenseFunc != nil {
		return m.GetByExpenseFunc(ctx, expenseID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, id := range m.order {
		entry := m.entries[id]
		if entry.ExpenseID != nil && *entry.ExpenseID == expenseID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *MockEntryRepository) MarkRefunded(ctx context.Context, tx usecase.Transaction, entryID, refundEntryID string) error {
	if m.MarkRefundedFunc != nil {
		return m.MarkRefundedFunc(ctx, tx, entryID, refundEntryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	if !ok {
		return domain.ErrEntryNotFound
	}
	entry.RefundedByEntryID = &refundEntryID
	return nil
}

func (m *MockEntryRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, entryID string, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, tx, entryID, deletedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	if !ok {
		return domain.ErrEntryNotFound
	}
	entry.DeletedAt = &deletedAt
	return nil
}

func (m *MockEntryRepository) SumNetAmountByAccount(ctx context.Context, accountID string) (int64, error) {
	if m.SumNetAmountByAccountFunc != nil {
		return m.SumNetAmountByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, id := range m.order {
		entry := m.entries[id]
		if entry.ToAccountID == accountID && entry.DeletedAt == nil {
			sum += entry.NetAmountInAccountCurrency
		}
	}
	return sum, nil
}

func (m *MockEntryRepository) ListGroups(ctx context.Context, limit, offset int) ([]string, error) {
	if m.ListGroupsFunc != nil {
		return m.ListGroupsFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, id := range m.order {
		groupID := m.entries[id].GroupID
		if !seen[groupID] {
			seen[groupID] = true
			out = append(out, groupID)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Expense, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.ExpenseStatus, processedAt *time.Time, updatedAt time.Time) error
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error
	ReplaceItemsFunc     func(ctx context.Context, tx usecase.Transaction, expenseID string, items []domain.ExpenseItem) error
	SoftDeleteFunc       func(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error
	ListByAccountFunc    func(ctx context.Context, accountID string, status *domain.ExpenseStatus, limit, offset int) ([]*domain.Expense, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

// Seed populates the in-memory store directly.
func (m *MockExpenseRepository) Seed(expenses ...*domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, expense := range expenses {
		m.expenses[expense.ID] = expense
	}
}

func (m *MockExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	expense, ok := m.expenses[id]
	if !ok || expense.DeletedAt != nil {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, nil
}

func (m *MockExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockExpenseRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.ExpenseStatus, processedAt *time.Time, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, processedAt, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expense, ok := m.expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	expense.Status = status
	expense.ProcessedAt = processedAt
	expense.UpdatedAt = updatedAt
	return nil
}

func (m *MockExpenseRepository) Update(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[expense.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) ReplaceItems(ctx context.Context, tx usecase.Transaction, expenseID string, items []domain.ExpenseItem) error {
	if m.ReplaceItemsFunc != nil {
		return m.ReplaceItemsFunc(ctx, tx, expenseID, items)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expense, ok := m.expenses[expenseID]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	expense.Items = items
	return nil
}

func (m *MockExpenseRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id string, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, tx, id, deletedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expense, ok := m.expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	expense.DeletedAt = &deletedAt
	return nil
}

func (m *MockExpenseRepository) ListByAccount(ctx context.Context, accountID string, status *domain.ExpenseStatus, limit, offset int) ([]*domain.Expense, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Expense
	for _, expense := range m.expenses {
		if expense.AccountID != accountID || expense.DeletedAt != nil {
			continue
		}
		if status != nil && expense.Status != *status {
			continue
		}
		out = append(out, expense)
	}
	return out, nil
}

// MockPayoutMethodRepository is a mock implementation of PayoutMethodRepository.
type MockPayoutMethodRepository struct {
	mu      sync.RWMutex
	methods map[string]*domain.PayoutMethod

	CreateFunc        func(ctx context.Context, method *domain.PayoutMethod) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.PayoutMethod, error)
	ListByAccountFunc func(ctx context.Context, accountID string) ([]*domain.PayoutMethod, error)
}

func NewMockPayoutMethodRepository() *MockPayoutMethodRepository {
	return &MockPayoutMethodRepository{
		methods: make(map[string]*domain.PayoutMethod),
	}
}

// Seed populates the in-memory store directly.
func (m *MockPayoutMethodRepository) Seed(methods ...*domain.PayoutMethod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, method := range methods {
		m.methods[method.ID] = method
	}
}

func (m *MockPayoutMethodRepository) Create(ctx context.Context, method *domain.PayoutMethod) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, method)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods[method.ID] = method
	return nil
}

func (m *MockPayoutMethodRepository) GetByID(ctx context.Context, id string) (*domain.PayoutMethod, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	method, ok := m.methods[id]
	if !ok {
		return nil, domain.ErrPayoutMethodNotFound
	}
	return method, nil
}

func (m *MockPayoutMethodRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.PayoutMethod, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.PayoutMethod
	for _, method := range m.methods {
		if method.AccountID == accountID {
			out = append(out, method)
		}
	}
	return out, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns all recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, event := range m.events {
		if !event.Published {
			out = append(out, event)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.events {
		if event.ID == id {
			event.Published = true
			event.PublishedAt = &publishedAt
			return nil
		}
	}
	return fmt.Errorf("outbox event %s not found", id)
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, event := range m.events {
		if event.AggregateType == aggregateType && event.AggregateID == aggregateID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, event := range m.events {
		if !event.Published || event.PublishedAt == nil || !event.PublishedAt.Before(before) {
			kept = append(kept, event)
		}
	}
	m.events = kept
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

// Logs returns all recorded audit logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AuditLog
	for _, log := range m.logs {
		if filter.Action != "" && log.Action != filter.Action {
			continue
		}
		if filter.ResourceID != "" && log.ResourceID != filter.ResourceID {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	return m.List(ctx, domain.AuditFilter{ResourceType: resourceType, ResourceID: resourceID})
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	mu         sync.Mutex
	committed  bool
	rolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func NewMockTransaction() *MockTransaction {
	return &MockTransaction{}
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

// Committed reports whether Commit was called.
func (m *MockTransaction) Committed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// RolledBack reports whether Rollback was called before any Commit.
func (m *MockTransaction) RolledBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rolledBack
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu  sync.Mutex
	txs []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := NewMockTransaction()
	m.mu.Lock()
	m.txs = append(m.txs, tx)
	m.mu.Unlock()
	return tx, nil
}

// Transactions returns every transaction handed out.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockTransaction, len(m.txs))
	copy(out, m.txs)
	return out
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("test-id-%03d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		keys: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.keys[key]; ok {
		return true, existing, nil
	}
	m.keys[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = response
	return nil
}
