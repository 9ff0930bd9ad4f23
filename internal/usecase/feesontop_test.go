package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

func TestSplitFeesOnTop_RequiresFlag(t *testing.T) {
	f := newLedgerFixture(t)

	_, _, err := f.uc.SplitFeesOnTop(context.Background(), usecase.EntryIntent{
		Amount: 5000, Currency: "USD",
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestSplitFeesOnTop_ZeroFeeIsNoop(t *testing.T) {
	f := newLedgerFixture(t)

	intent := usecase.EntryIntent{
		Amount:      5000,
		Currency:    "USD",
		FromAccount: externalAccount("acct-donor", "USD"),
		ToAccount:   hostedAccount("acct-col", "USD", "acct-host"),
		FeesOnTop:   true,
	}

	main, donation, err := f.uc.SplitFeesOnTop(context.Background(), intent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if donation != nil {
		t.Error("expected no donation for a zero platform fee")
	}
	if main.FeesOnTop {
		t.Error("returned intent must not stay flagged")
	}
	if main.Amount != 5000 {
		t.Errorf("amount = %d, want 5000 untouched", main.Amount)
	}
}

func TestSplitFeesOnTop_Conservation(t *testing.T) {
	tests := []struct {
		name             string
		amount           int64
		platformFee      int64
		processorFee     int64
		wantMainAmount   int64
		wantDonation     int64
		wantMainProcFee  int64
		wantDonationProc int64
	}{
		{
			name:   "tenth of the charge is the tip",
			amount: 5000, platformFee: -500, processorFee: -250,
			wantMainAmount: 4500, wantDonation: 500,
			wantMainProcFee: -225, wantDonationProc: -25,
		},
		{
			name:   "no processor fee to attribute",
			amount: 2000, platformFee: -300, processorFee: 0,
			wantMainAmount: 1700, wantDonation: 300,
			wantMainProcFee: 0, wantDonationProc: 0,
		},
		{
			name:   "uneven ratio rounds the attributed share",
			amount: 1000, platformFee: -333, processorFee: -100,
			wantMainAmount: 667, wantDonation: 333,
			wantMainProcFee: -67, wantDonationProc: -33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)

			intent := usecase.EntryIntent{
				Amount:                            tt.amount,
				Currency:                          "USD",
				FromAccount:                       externalAccount("acct-donor", "USD"),
				ToAccount:                         hostedAccount("acct-col", "USD", "acct-host"),
				PlatformFeeInHostCurrency:         tt.platformFee,
				PaymentProcessorFeeInHostCurrency: tt.processorFee,
				FeesOnTop:                         true,
			}
			f.accounts.Seed(&domain.Account{
				ID: platformAccountID, Slug: "platform", Name: "Platform",
				Type: domain.AccountTypePlatform, Currency: "USD", IsActive: true,
			})

			main, donation, err := f.uc.SplitFeesOnTop(context.Background(), intent)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if donation == nil {
				t.Fatal("expected a donation intent")
			}

			if main.Amount != tt.wantMainAmount {
				t.Errorf("main amount = %d, want %d", main.Amount, tt.wantMainAmount)
			}
			if donation.Amount != tt.wantDonation {
				t.Errorf("donation amount = %d, want %d", donation.Amount, tt.wantDonation)
			}
			if main.Amount+donation.Amount != tt.amount {
				t.Errorf("payer total changed: %d + %d != %d", main.Amount, donation.Amount, tt.amount)
			}
			if main.PlatformFeeInHostCurrency != 0 {
				t.Errorf("main platform fee = %d, want 0", main.PlatformFeeInHostCurrency)
			}
			if main.PaymentProcessorFeeInHostCurrency != tt.wantMainProcFee {
				t.Errorf("main processor fee = %d, want %d", main.PaymentProcessorFeeInHostCurrency, tt.wantMainProcFee)
			}
			if donation.PaymentProcessorFeeInHostCurrency != tt.wantDonationProc {
				t.Errorf("donation processor fee = %d, want %d", donation.PaymentProcessorFeeInHostCurrency, tt.wantDonationProc)
			}
			if main.PaymentProcessorFeeInHostCurrency+donation.PaymentProcessorFeeInHostCurrency != tt.processorFee {
				t.Error("processor fee not conserved across the split")
			}
			if donation.ToAccount == nil || donation.ToAccount.ID != platformAccountID {
				t.Error("donation must target the platform account")
			}
			if donation.Currency != usecase.PlatformCurrency {
				t.Errorf("donation currency = %s, want %s", donation.Currency, usecase.PlatformCurrency)
			}
			if intent.PlatformFeeInHostCurrency != tt.platformFee {
				t.Error("split mutated the caller's intent")
			}
		})
	}
}

func TestSplitFeesOnTop_ConvertsToPlatformCurrency(t *testing.T) {
	f := newLedgerFixture(t)

	f.accounts.Seed(&domain.Account{
		ID: platformAccountID, Slug: "platform", Name: "Platform",
		Type: domain.AccountTypePlatform, Currency: "USD", IsActive: true,
	})
	f.fxResolver.EXPECT().
		GetRate(gomock.Any(), "EUR", "USD", gomock.Any()).
		Return(decimal.RequireFromString("1.2"), nil)

	rate := decimal.NewFromInt(1)
	_, donation, err := f.uc.SplitFeesOnTop(context.Background(), usecase.EntryIntent{
		Amount:                    5000,
		Currency:                  "EUR",
		FromAccount:               externalAccount("acct-donor", "EUR"),
		ToAccount:                 hostedAccount("acct-col", "EUR", "acct-host"),
		HostCurrency:              "EUR",
		HostCurrencyFxRate:        &rate,
		PlatformFeeInHostCurrency: -500,
		FeesOnTop:                 true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if donation.Amount != 600 {
		t.Errorf("donation amount = %d, want 600 after conversion", donation.Amount)
	}
	if donation.Currency != "USD" {
		t.Errorf("donation currency = %s, want USD", donation.Currency)
	}
	if donation.Data["hostToPlatformFxRate"] != "1.2" {
		t.Errorf("recorded rate = %v, want 1.2", donation.Data["hostToPlatformFxRate"])
	}
}
