package payout

import (
	"context"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// BalanceProvider settles an expense against the payee's own ledger under
// the same fiscal host. No external rail, no fee; the double entry is the
// whole payout.
type BalanceProvider struct{}

// NewBalanceProvider creates a new BalanceProvider.
func NewBalanceProvider() *BalanceProvider {
	return &BalanceProvider{}
}

// Quote reports a zero fee.
func (p *BalanceProvider) Quote(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutQuote, error) {
	return &usecase.PayoutQuote{FeeCurrency: expense.Currency}, nil
}

// Pay is a no-op beyond the ledger write the orchestrator performs.
func (p *BalanceProvider) Pay(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutResult, error) {
	return &usecase.PayoutResult{FeeCurrency: expense.Currency}, nil
}

// ManualProvider records expenses paid outside the platform (cash, a wire
// the host sent by hand). The ledger entry is bookkeeping only.
type ManualProvider struct{}

// NewManualProvider creates a new ManualProvider.
func NewManualProvider() *ManualProvider {
	return &ManualProvider{}
}

// Quote reports a zero fee.
func (p *ManualProvider) Quote(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutQuote, error) {
	return &usecase.PayoutQuote{FeeCurrency: expense.Currency}, nil
}

// Pay is a no-op; the money moved outside the platform.
func (p *ManualProvider) Pay(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutResult, error) {
	return &usecase.PayoutResult{FeeCurrency: expense.Currency}, nil
}
