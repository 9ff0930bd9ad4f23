package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
)

// SplitFeesOnTop extracts the platform contribution bundled into a payer's
// total into its own donation intent, settled in the platform's currency.
// The returned main intent is a new value, not a mutation of the input: the
// attributed processor fee is moved to the donation, the platform fee is
// folded back into the amount, and the platform fee field is zeroed. Total
// money leaving the payer is unchanged.
//
// Fails with ErrInvalidState when the intent is not flagged fees-on-top.
// A zero platform fee is a no-op: the input comes back unchanged with a nil
// donation.
func (uc *LedgerUseCase) SplitFeesOnTop(ctx context.Context, intent EntryIntent) (EntryIntent, *EntryIntent, error) {
	if !intent.FeesOnTop {
		return EntryIntent{}, nil, fmt.Errorf("%w: intent does not carry an on-top platform fee", domain.ErrInvalidState)
	}
	if intent.PlatformFeeInHostCurrency == 0 {
		main := intent
		main.FeesOnTop = false
		return main, nil, nil
	}

	fxRate := decimal.NewFromInt(1)
	if intent.HostCurrencyFxRate != nil {
		fxRate = *intent.HostCurrencyFxRate
	}

	amountInHost := domain.RoundAmount(intent.Amount, fxRate)
	if intent.AmountInHostCurrency != nil {
		amountInHost = *intent.AmountInHostCurrency
	}
	if amountInHost == 0 {
		return EntryIntent{}, nil, fmt.Errorf("%w: fees-on-top intent has no host-currency amount", domain.ErrInvalidState)
	}

	platformFee := -intent.PlatformFeeInHostCurrency // positive

	// Share of the processor fee attributable to the donation, proportional
	// to the donation's share of the total charge.
	ratio := decimal.NewFromInt(platformFee).
		Div(decimal.NewFromInt(abs64(amountInHost)))
	donationProcessorFee := decimal.NewFromInt(intent.PaymentProcessorFeeInHostCurrency).
		Mul(ratio).
		Round(0).
		IntPart() // ≤ 0

	hostCurrency := intent.HostCurrency
	if hostCurrency == "" {
		hostCurrency = intent.Currency
	}

	platformRate := decimal.NewFromInt(1)
	if hostCurrency != PlatformCurrency {
		resolved, err := uc.fx.GetRate(ctx, hostCurrency, PlatformCurrency, intent.CreatedAt)
		if err != nil {
			return EntryIntent{}, nil, err
		}
		platformRate = resolved
	}

	platformAccount, err := uc.accountRepo.GetByID(ctx, uc.platformAccountID)
	if err != nil {
		return EntryIntent{}, nil, err
	}

	donationAmount := domain.RoundAmount(platformFee, platformRate)
	donationFee := domain.RoundAmount(donationProcessorFee, platformRate)
	donationNet := domain.RoundAmount(platformFee+donationProcessorFee, platformRate)

	one := decimal.NewFromInt(1)
	donation := &EntryIntent{
		Amount:                            donationAmount,
		Currency:                          PlatformCurrency,
		FromAccount:                       intent.FromAccount,
		ToAccount:                         platformAccount,
		HostCurrency:                      PlatformCurrency,
		HostCurrencyFxRate:                &one,
		NetAmountInAccountCurrency:        &donationNet,
		PaymentProcessorFeeInHostCurrency: donationFee,
		OrderID:                           intent.OrderID,
		ExpenseID:                         intent.ExpenseID,
		Data: map[string]any{
			"isFeesOnTop":          true,
			"hostToPlatformFxRate": platformRate.String(),
		},
		CreatedAt: intent.CreatedAt,
	}

	main := intent
	main.FeesOnTop = false
	main.PaymentProcessorFeeInHostCurrency = intent.PaymentProcessorFeeInHostCurrency - donationProcessorFee
	main.Amount = intent.Amount + domain.DivideAmount(intent.PlatformFeeInHostCurrency, fxRate)
	mainHost := amountInHost + intent.PlatformFeeInHostCurrency
	main.AmountInHostCurrency = &mainHost
	main.PlatformFeeInHostCurrency = 0
	if intent.NetAmountInAccountCurrency != nil {
		adjusted := *intent.NetAmountInAccountCurrency - domain.DivideAmount(donationProcessorFee, fxRate)
		main.NetAmountInAccountCurrency = &adjusted
	}

	return main, donation, nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
