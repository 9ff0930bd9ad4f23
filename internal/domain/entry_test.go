package domain

import (
	"errors"
	"testing"
)

func TestEntryDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount int64
		want   EntryDirection
	}{
		{5000, DirectionCredit},
		{1, DirectionCredit},
		{0, DirectionDebit},
		{-1, DirectionDebit},
		{-5000, DirectionDebit},
	}

	for _, tt := range tests {
		e := &LedgerEntry{Amount: tt.amount}
		if got := e.Direction(); got != tt.want {
			t.Errorf("Direction() with amount %d = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestEntryNetAmounts(t *testing.T) {
	t.Parallel()

	e := &LedgerEntry{
		AmountInHostCurrency:              5000,
		PaymentProcessorFeeInHostCurrency: -250,
		PlatformFeeInHostCurrency:         -500,
		HostFeeInHostCurrency:             -100,
	}

	if got := e.NetAmountInHostCurrency(); got != 4150 {
		t.Errorf("NetAmountInHostCurrency() = %d, want 4150", got)
	}
	// The host fee stays with the host.
	if got := e.AmountSentToHost(); got != 4250 {
		t.Errorf("AmountSentToHost() = %d, want 4250", got)
	}
}

func TestEntryRefunded(t *testing.T) {
	t.Parallel()

	e := &LedgerEntry{}
	if e.Refunded() {
		t.Error("fresh entry should not be refunded")
	}

	refundID := "entry-refund"
	e.RefundedByEntryID = &refundID
	if !e.Refunded() {
		t.Error("entry with forward refund link should be refunded")
	}

	// A refund entry carries the backward link only and starts unrefunded.
	origID := "entry-orig"
	refund := &LedgerEntry{RefundOfEntryID: &origID}
	if refund.Refunded() {
		t.Error("refund entry should start unrefunded")
	}
}

func TestEntryValidate(t *testing.T) {
	t.Parallel()

	orderID := "order-1"
	expenseID := "expense-1"
	origID := "entry-1"

	valid := func() LedgerEntry {
		return LedgerEntry{
			ID:            "entry-2",
			GroupID:       "group-1",
			ToAccountID:   "acct-to",
			FromAccountID: "acct-from",
			Currency:      "USD",
			Amount:        5000,
		}
	}

	tests := []struct {
		name    string
		mutate  func(e *LedgerEntry)
		wantErr error
	}{
		{
			name:   "valid entry",
			mutate: func(e *LedgerEntry) {},
		},
		{
			name:    "zero amount",
			mutate:  func(e *LedgerEntry) { e.Amount = 0 },
			wantErr: ErrZeroAmount,
		},
		{
			name:    "missing to account",
			mutate:  func(e *LedgerEntry) { e.ToAccountID = "" },
			wantErr: ErrValidationFailed,
		},
		{
			name:    "missing from account",
			mutate:  func(e *LedgerEntry) { e.FromAccountID = "" },
			wantErr: ErrValidationFailed,
		},
		{
			name: "order and expense are exclusive",
			mutate: func(e *LedgerEntry) {
				e.OrderID = &orderID
				e.ExpenseID = &expenseID
			},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "positive platform fee",
			mutate:  func(e *LedgerEntry) { e.PlatformFeeInHostCurrency = 100 },
			wantErr: ErrValidationFailed,
		},
		{
			name:    "positive host fee",
			mutate:  func(e *LedgerEntry) { e.HostFeeInHostCurrency = 1 },
			wantErr: ErrValidationFailed,
		},
		{
			name:    "positive processor fee",
			mutate:  func(e *LedgerEntry) { e.PaymentProcessorFeeInHostCurrency = 250 },
			wantErr: ErrValidationFailed,
		},
		{
			name: "refund entries may carry positive fees",
			mutate: func(e *LedgerEntry) {
				e.Amount = -5000
				e.RefundOfEntryID = &origID
				e.PaymentProcessorFeeInHostCurrency = 250
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
