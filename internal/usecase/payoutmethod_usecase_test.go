package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
	"github.com/fundhost/ledger/internal/usecase/mocks"
)

func TestPayoutMethodUseCase_CreatePayoutMethod(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreatePayoutMethodInput
		expectError bool
		errorType   error
	}{
		{
			name: "bank account",
			input: usecase.CreatePayoutMethodInput{
				AccountID: "acct-1", Kind: domain.PayoutKindBankAccount, Name: "main iban",
				Data: map[string]any{"iban": "DE89370400440532013000"}, SavedForReuse: true,
			},
		},
		{
			name: "unknown kind",
			input: usecase.CreatePayoutMethodInput{
				AccountID: "acct-1", Kind: "CRYPTO", Name: "wallet",
			},
			expectError: true,
			errorType:   domain.ErrValidationFailed,
		},
		{
			name: "unknown account",
			input: usecase.CreatePayoutMethodInput{
				AccountID: "missing", Kind: domain.PayoutKindPayPal, Name: "paypal",
			},
			expectError: true,
			errorType:   domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := mocks.NewMockAccountRepository()
			accounts.Seed(&domain.Account{
				ID: "acct-1", Slug: "payee", Name: "Payee",
				Type: domain.AccountTypeUser, Currency: "USD",
			})
			payouts := mocks.NewMockPayoutMethodRepository()
			uc := usecase.NewPayoutMethodUseCase(payouts, accounts, mocks.NewMockIDGenerator())

			method, err := uc.CreatePayoutMethod(context.Background(), tt.input)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if method.Kind != tt.input.Kind {
				t.Errorf("kind = %s, want %s", method.Kind, tt.input.Kind)
			}

			stored, err := uc.GetPayoutMethod(context.Background(), method.ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stored.AccountID != "acct-1" {
				t.Errorf("account = %s, want acct-1", stored.AccountID)
			}
		})
	}
}

func TestResolvePayoutMethod(t *testing.T) {
	structured := &domain.PayoutMethod{ID: "pm-1", Kind: domain.PayoutKindPayPal}

	tests := []struct {
		name       string
		structured *domain.PayoutMethod
		legacy     string
		wantKind   domain.PayoutMethodKind
		errorType  error
	}{
		{name: "structured wins over legacy", structured: structured, legacy: "banktransfer", wantKind: domain.PayoutKindPayPal},
		{name: "legacy paypal", legacy: "paypal", wantKind: domain.PayoutKindPayPal},
		{name: "legacy banktransfer", legacy: "banktransfer", wantKind: domain.PayoutKindBankAccount},
		{name: "legacy account balance", legacy: "account", wantKind: domain.PayoutKindAccountBalance},
		{name: "legacy donation never pays out", legacy: "donation", wantKind: domain.PayoutKindManual},
		{name: "nothing resolvable", errorType: domain.ErrValidationFailed},
		{name: "unknown legacy value", legacy: "bitcoin", errorType: domain.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := domain.ResolvePayoutMethod(tt.structured, tt.legacy)
			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if method.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", method.Kind, tt.wantKind)
			}
		})
	}
}
