package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fundhost/ledger/internal/domain"
)

// PayoutMethodUseCase manages the payout methods owned by payee accounts.
type PayoutMethodUseCase struct {
	payoutRepo  PayoutMethodRepository
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewPayoutMethodUseCase creates a new PayoutMethodUseCase.
func NewPayoutMethodUseCase(payoutRepo PayoutMethodRepository, accountRepo AccountRepository, idGen IDGenerator) *PayoutMethodUseCase {
	return &PayoutMethodUseCase{
		payoutRepo:  payoutRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreatePayoutMethodInput represents input for registering a payout method.
type CreatePayoutMethodInput struct {
	AccountID     string
	Kind          domain.PayoutMethodKind
	Name          string
	Data          map[string]any
	SavedForReuse bool
}

// CreatePayoutMethod registers a payout method for an account.
func (uc *PayoutMethodUseCase) CreatePayoutMethod(ctx context.Context, input CreatePayoutMethodInput) (*domain.PayoutMethod, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	switch input.Kind {
	case domain.PayoutKindBankAccount, domain.PayoutKindPayPal,
		domain.PayoutKindAccountBalance, domain.PayoutKindManual, domain.PayoutKindOther:
	default:
		return nil, fmt.Errorf("%w: unknown payout method kind %q", domain.ErrValidationFailed, input.Kind)
	}
	if err := domain.ValidateMetadata(input.Data); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	method := &domain.PayoutMethod{
		ID:            uc.idGen.Generate(),
		AccountID:     input.AccountID,
		Kind:          input.Kind,
		Name:          input.Name,
		Data:          input.Data,
		SavedForReuse: input.SavedForReuse,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.payoutRepo.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// GetPayoutMethod retrieves a payout method by ID.
func (uc *PayoutMethodUseCase) GetPayoutMethod(ctx context.Context, id string) (*domain.PayoutMethod, error) {
	return uc.payoutRepo.GetByID(ctx, id)
}

// ListPayoutMethods lists an account's payout methods.
func (uc *PayoutMethodUseCase) ListPayoutMethods(ctx context.Context, accountID string) ([]*domain.PayoutMethod, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return uc.payoutRepo.ListByAccount(ctx, accountID)
}
