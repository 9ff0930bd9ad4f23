package domain

import (
	"fmt"
	"time"
)

// ExpenseStatus is the expense workflow state.
type ExpenseStatus string

const (
	ExpenseStatusPending    ExpenseStatus = "PENDING"
	ExpenseStatusApproved   ExpenseStatus = "APPROVED"
	ExpenseStatusProcessing ExpenseStatus = "PROCESSING"
	ExpenseStatusPaid       ExpenseStatus = "PAID"
	ExpenseStatusRejected   ExpenseStatus = "REJECTED"
)

const (
	MaxExpenseItems       = 300
	MaxExpenseAttachments = 15
)

// ExpenseItem is a single line item. Item amounts must sum to the expense
// amount.
type ExpenseItem struct {
	ID          string
	ExpenseID   string
	Description string
	Amount      int64
	IncurredAt  time.Time
	CreatedAt   time.Time
}

// ExpenseAttachment is a supporting file reference (receipt, invoice).
type ExpenseAttachment struct {
	ID        string
	ExpenseID string
	URL       string
	Name      string
	CreatedAt time.Time
}

// Expense is a request for an outgoing payment from a collective's budget.
type Expense struct {
	ID             string
	AccountID      string
	PayeeAccountID string
	CreatedByID    string

	Description string
	Amount      int64
	Currency    string
	Status      ExpenseStatus

	// PayoutMethodID references a structured payout method. LegacyPayoutMethod
	// is the deprecated string enum; both resolve through ResolvePayoutMethod.
	PayoutMethodID     *string
	LegacyPayoutMethod string

	Items       []ExpenseItem
	Attachments []ExpenseAttachment

	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// ItemsTotal sums the line item amounts.
func (e *Expense) ItemsTotal() int64 {
	var total int64
	for _, item := range e.Items {
		total += item.Amount
	}
	return total
}

// Validate checks the expense against submission rules.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: expense amount must be positive", ErrValidationFailed)
	}
	if len(e.Items) > MaxExpenseItems {
		return fmt.Errorf("%w: expenses cannot have more than %d items", ErrValidationFailed, MaxExpenseItems)
	}
	if len(e.Attachments) > MaxExpenseAttachments {
		return fmt.Errorf("%w: expenses cannot have more than %d attached files", ErrValidationFailed, MaxExpenseAttachments)
	}
	if len(e.Items) > 0 {
		if total := e.ItemsTotal(); total != e.Amount {
			return fmt.Errorf("%w: sum of items (%d) does not match expense amount (%d)", ErrValidationFailed, total, e.Amount)
		}
	}
	return nil
}

// CanTransitionTo reports whether the status transition is legal.
func (e *Expense) CanTransitionTo(next ExpenseStatus) bool {
	switch next {
	case ExpenseStatusApproved:
		// Approval from PENDING; markAsUnpaid resets PAID back here through
		// the refund path, which bypasses this check deliberately.
		return e.Status == ExpenseStatusPending
	case ExpenseStatusRejected:
		return e.Status == ExpenseStatusPending || e.Status == ExpenseStatusApproved
	case ExpenseStatusPending:
		// Unapproval on qualifying edits.
		return e.Status == ExpenseStatusApproved || e.Status == ExpenseStatusPending
	case ExpenseStatusProcessing, ExpenseStatusPaid:
		return e.Status == ExpenseStatusApproved ||
			(next == ExpenseStatusPaid && e.Status == ExpenseStatusProcessing)
	default:
		return false
	}
}

// Deletable reports whether the expense may be destroyed. Paid expenses are
// part of the ledger history and can never be deleted.
func (e *Expense) Deletable() bool {
	return e.Status != ExpenseStatusPaid && e.Status != ExpenseStatusProcessing
}
