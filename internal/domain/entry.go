package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection is derived from the sign of the entry amount, never set
// independently: a positive amount is a CREDIT, anything else a DEBIT.
type EntryDirection string

const (
	DirectionCredit EntryDirection = "CREDIT"
	DirectionDebit  EntryDirection = "DEBIT"
)

// LedgerEntry is one leg of a balanced economic event. The two (or more)
// legs of an event share a GroupID. Entries are append-only: corrections are
// new entries, a refund links back through RefundOfEntryID, and voiding is a
// soft delete.
type LedgerEntry struct {
	ID      string
	GroupID string

	// ToAccountID is the account whose ledger this row belongs to.
	// FromAccountID is the source of funds for a DEBIT, the recipient for a
	// CREDIT. HostAccountID is the fiscal host holding the bank balance at
	// entry time, if any.
	ToAccountID           string
	FromAccountID         string
	HostAccountID         *string
	CardProviderAccountID *string

	Currency                   string
	Amount                     int64
	HostCurrency               string
	HostCurrencyFxRate         decimal.Decimal
	AmountInHostCurrency       int64
	NetAmountInAccountCurrency int64

	// Fees are stored as negative amounts in host currency.
	PlatformFeeInHostCurrency         int64
	HostFeeInHostCurrency             int64
	PaymentProcessorFeeInHostCurrency int64
	TaxAmount                         int64

	OrderID   *string
	ExpenseID *string

	// RefundOfEntryID points backward from a refund to the entry it
	// reverses. RefundedByEntryID points forward from a refunded entry to
	// its refund. A refund of a refund carries both.
	RefundOfEntryID   *string
	RefundedByEntryID *string

	Data map[string]any

	CreatedAt time.Time
	DeletedAt *time.Time
}

// Direction derives the entry direction from the amount sign.
func (e *LedgerEntry) Direction() EntryDirection {
	if e.Amount > 0 {
		return DirectionCredit
	}
	return DirectionDebit
}

// NetAmountInHostCurrency is the host-currency amount net of all fees. Fees
// are negative, so adding them subtracts.
func (e *LedgerEntry) NetAmountInHostCurrency() int64 {
	return e.AmountInHostCurrency +
		e.PaymentProcessorFeeInHostCurrency +
		e.PlatformFeeInHostCurrency +
		e.HostFeeInHostCurrency
}

// AmountSentToHost is the host-currency amount that reaches the host's bank
// account. The host fee stays with the host, so it is not subtracted.
func (e *LedgerEntry) AmountSentToHost() int64 {
	return e.AmountInHostCurrency +
		e.PaymentProcessorFeeInHostCurrency +
		e.PlatformFeeInHostCurrency
}

// Refunded reports whether this entry has already been reversed by a
// refund. A refund entry itself starts unrefunded; reversing it again is
// what restores the original numbers.
func (e *LedgerEntry) Refunded() bool {
	return e.RefundedByEntryID != nil
}

// Validate checks the stored-entry invariants.
func (e *LedgerEntry) Validate() error {
	if e.Amount == 0 {
		return ErrZeroAmount
	}
	if e.ToAccountID == "" || e.FromAccountID == "" {
		return ErrValidationFailed
	}
	if e.OrderID != nil && e.ExpenseID != nil {
		return ErrValidationFailed
	}
	// Fees are negative by convention; refund entries invert them.
	if e.RefundOfEntryID == nil {
		if e.PlatformFeeInHostCurrency > 0 ||
			e.HostFeeInHostCurrency > 0 ||
			e.PaymentProcessorFeeInHostCurrency > 0 {
			return ErrValidationFailed
		}
	}
	return nil
}
