package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testExpense() Expense {
	return Expense{
		ID:             "expense-1",
		AccountID:      "acct-col",
		PayeeAccountID: "acct-payee",
		Description:    "conference travel",
		Amount:         5000,
		Currency:       "USD",
		Status:         ExpenseStatusPending,
		CreatedAt:      time.Now(),
	}
}

func TestExpenseValidate(t *testing.T) {
	t.Parallel()

	items := func(amounts ...int64) []ExpenseItem {
		out := make([]ExpenseItem, len(amounts))
		for i, a := range amounts {
			out[i] = ExpenseItem{Description: "item", Amount: a}
		}
		return out
	}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr bool
		wantMsg string
	}{
		{
			name:   "valid without items",
			mutate: func(e *Expense) {},
		},
		{
			name:   "valid with matching items",
			mutate: func(e *Expense) { e.Items = items(2000, 3000) },
		},
		{
			name:    "zero amount",
			mutate:  func(e *Expense) { e.Amount = 0 },
			wantErr: true,
		},
		{
			name:    "negative amount",
			mutate:  func(e *Expense) { e.Amount = -100 },
			wantErr: true,
		},
		{
			name:    "items do not sum to amount",
			mutate:  func(e *Expense) { e.Items = items(2000, 2500) },
			wantErr: true,
			wantMsg: "sum of items (4500) does not match expense amount (5000)",
		},
		{
			name: "too many items",
			mutate: func(e *Expense) {
				e.Items = make([]ExpenseItem, MaxExpenseItems+1)
			},
			wantErr: true,
			wantMsg: "more than 300 items",
		},
		{
			name: "too many attachments",
			mutate: func(e *Expense) {
				e.Attachments = make([]ExpenseAttachment, MaxExpenseAttachments+1)
			},
			wantErr: true,
			wantMsg: "more than 15 attached files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testExpense()
			tt.mutate(&e)
			err := e.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() = %v, want ErrValidationFailed", err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("Validate() = %q, want message containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestExpenseItemBoundaries(t *testing.T) {
	t.Parallel()

	e := testExpense()
	e.Items = make([]ExpenseItem, MaxExpenseItems)
	var per = e.Amount / int64(MaxExpenseItems)
	var total int64
	for i := range e.Items {
		e.Items[i].Amount = per
		total += per
	}
	e.Items[0].Amount += e.Amount - total
	if err := e.Validate(); err != nil {
		t.Fatalf("exactly %d items should be accepted: %v", MaxExpenseItems, err)
	}

	e.Attachments = make([]ExpenseAttachment, MaxExpenseAttachments)
	if err := e.Validate(); err != nil {
		t.Fatalf("exactly %d attachments should be accepted: %v", MaxExpenseAttachments, err)
	}
}

func TestExpenseCanTransitionTo(t *testing.T) {
	t.Parallel()

	allowed := map[ExpenseStatus][]ExpenseStatus{
		ExpenseStatusPending:    {ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected},
		ExpenseStatusApproved:   {ExpenseStatusPending, ExpenseStatusRejected, ExpenseStatusProcessing, ExpenseStatusPaid},
		ExpenseStatusProcessing: {ExpenseStatusPaid},
		ExpenseStatusPaid:       {},
		ExpenseStatusRejected:   {},
	}

	all := []ExpenseStatus{
		ExpenseStatusPending,
		ExpenseStatusApproved,
		ExpenseStatusProcessing,
		ExpenseStatusPaid,
		ExpenseStatusRejected,
	}

	for from, nexts := range allowed {
		ok := make(map[ExpenseStatus]bool, len(nexts))
		for _, n := range nexts {
			ok[n] = true
		}
		for _, next := range all {
			e := Expense{Status: from}
			if got := e.CanTransitionTo(next); got != ok[next] {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, next, got, ok[next])
			}
		}
	}
}

func TestExpenseDeletable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status ExpenseStatus
		want   bool
	}{
		{ExpenseStatusPending, true},
		{ExpenseStatusApproved, true},
		{ExpenseStatusRejected, true},
		{ExpenseStatusProcessing, false},
		{ExpenseStatusPaid, false},
	}

	for _, tt := range tests {
		e := Expense{Status: tt.status}
		if got := e.Deletable(); got != tt.want {
			t.Errorf("Deletable() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestExpenseItemsTotal(t *testing.T) {
	t.Parallel()

	e := Expense{Items: []ExpenseItem{{Amount: 2000}, {Amount: 3000}, {Amount: -500}}}
	if got := e.ItemsTotal(); got != 4500 {
		t.Errorf("ItemsTotal() = %d, want 4500", got)
	}
}
