package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fundhost/ledger/internal/domain"
)

// AccountUseCase manages accounts and exposes balance reads.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository, auditRepo AuditRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Slug          string
	Name          string
	Type          domain.AccountType
	Currency      string
	HostAccountID *string
	IsActive      bool
}

// CreateAccount registers a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if input.Slug == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: slug and name are required", domain.ErrValidationFailed)
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	switch input.Type {
	case domain.AccountTypeCollective, domain.AccountTypeUser, domain.AccountTypeHost, domain.AccountTypePlatform:
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", domain.ErrValidationFailed, input.Type)
	}

	if existing, err := uc.accountRepo.GetBySlug(ctx, input.Slug); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: slug %q is taken", domain.ErrConflict, input.Slug)
	}

	if input.HostAccountID != nil {
		host, err := uc.accountRepo.GetByID(ctx, *input.HostAccountID)
		if err != nil {
			return nil, err
		}
		if host.Type != domain.AccountTypeHost && host.Type != domain.AccountTypePlatform {
			return nil, fmt.Errorf("%w: account %s is not a fiscal host", domain.ErrValidationFailed, host.ID)
		}
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		Slug:          input.Slug,
		Name:          input.Name,
		Type:          input.Type,
		Currency:      input.Currency,
		HostAccountID: input.HostAccountID,
		IsActive:      input.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		actorID := "system"
		if actor, ok := domain.ActorFromContext(ctx); ok {
			actorID = actor.ID
		}
		_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			ActorID:      actorID,
			Action:       string(domain.AuditActionAccountCreate),
			ResourceType: domain.AggregateTypeAccount,
			ResourceID:   account.ID,
			AfterState:   domain.MarshalState(account),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    time.Now(),
		})
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountBySlug retrieves an account by slug.
func (uc *AccountUseCase) GetAccountBySlug(ctx context.Context, slug string) (*domain.Account, error) {
	return uc.accountRepo.GetBySlug(ctx, slug)
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// Balance is an account's current balance in its own currency.
type Balance struct {
	AccountID string
	Currency  string
	Amount    int64
}

// GetBalance computes the account's balance as the sum of net amounts over
// the live entries on its ledger.
func (uc *AccountUseCase) GetBalance(ctx context.Context, accountID string) (*Balance, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.entryRepo.SumNetAmountByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &Balance{
		AccountID: account.ID,
		Currency:  account.Currency,
		Amount:    sum,
	}, nil
}

// ListAccountEntries lists the entries on an account's ledger, newest first.
func (uc *AccountUseCase) ListAccountEntries(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.entryRepo.GetByAccount(ctx, accountID, limit, offset)
}
