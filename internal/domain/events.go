package domain

import "time"

// Event types
const (
	EventTypeEntryCreated      = "ledger.entry.created"
	EventTypeEntryRefunded     = "ledger.entry.refunded"
	EventTypeExpenseCreated    = "expense.created"
	EventTypeExpenseApproved   = "expense.approved"
	EventTypeExpenseRejected   = "expense.rejected"
	EventTypeExpenseUnapproved = "expense.unapproved"
	EventTypeExpensePaid       = "expense.paid"
	EventTypeExpenseProcessing = "expense.processing"
	EventTypeExpenseUnpaid     = "expense.marked.as.unpaid"
	EventTypeAccountCreated    = "account.created"
)

// Aggregate types
const (
	AggregateTypeEntry   = "ledger_entry"
	AggregateTypeExpense = "expense"
	AggregateTypeAccount = "account"
)

// OutboxEvent is a domain event recorded inside the unit of work and
// dispatched post-commit. Side effects (notifications, audit trails) hang off
// these events so a failing side effect can never fail the economic
// operation that produced it.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EntryCreatedEvent payload
type EntryCreatedEvent struct {
	EntryID   string `json:"entry_id"`
	GroupID   string `json:"group_id"`
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// EntryRefundedEvent payload
type EntryRefundedEvent struct {
	RefundEntryID   string `json:"refund_entry_id"`
	OriginalEntryID string `json:"original_entry_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// ExpenseStatusEvent payload shared by the expense lifecycle events.
type ExpenseStatusEvent struct {
	ExpenseID string `json:"expense_id"`
	AccountID string `json:"account_id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}
