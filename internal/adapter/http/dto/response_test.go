package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	hostID := "acct-host"
	account := &domain.Account{
		ID:            "acct-1",
		Slug:          "osm",
		Name:          "OpenStreetMap",
		Type:          domain.AccountTypeCollective,
		Currency:      "USD",
		HostAccountID: &hostID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Type != "collective" || resp.HostAccountID != &hostID {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestEntryFromDomain(t *testing.T) {
	orderID := "order-1"
	refundID := "entry-refund"
	entry := &domain.LedgerEntry{
		ID:                                "entry-1",
		GroupID:                           "group-1",
		ToAccountID:                       "acct-col",
		FromAccountID:                     "acct-donor",
		Currency:                          "EUR",
		Amount:                            5000,
		HostCurrency:                      "USD",
		HostCurrencyFxRate:                decimal.RequireFromString("1.1"),
		AmountInHostCurrency:              5500,
		NetAmountInAccountCurrency:        4773,
		PaymentProcessorFeeInHostCurrency: -250,
		PlatformFeeInHostCurrency:         -500,
		OrderID:                           &orderID,
		RefundedByEntryID:                 &refundID,
		CreatedAt:                         time.Now(),
	}

	resp := EntryFromDomain(entry)
	if resp.Direction != "CREDIT" {
		t.Fatalf("expected derived CREDIT direction, got %s", resp.Direction)
	}
	if resp.HostCurrencyFxRate != "1.1" || resp.AmountInHostCurrency != 5500 {
		t.Fatalf("unexpected entry response: %+v", resp)
	}
	if resp.RefundedByEntryID == nil || *resp.RefundedByEntryID != refundID {
		t.Fatalf("expected refund link to propagate, got %+v", resp.RefundedByEntryID)
	}

	entry.Amount = -5000
	if resp := EntryFromDomain(entry); resp.Direction != "DEBIT" {
		t.Fatalf("expected derived DEBIT direction, got %s", resp.Direction)
	}

	list := EntriesFromDomain([]*domain.LedgerEntry{entry})
	if len(list) != 1 || list[0].ID != entry.ID {
		t.Fatalf("EntriesFromDomain returned %+v", list)
	}
}

func TestExpenseFromDomain(t *testing.T) {
	processed := time.Now()
	expense := &domain.Expense{
		ID:             "expense-1",
		AccountID:      "acct-col",
		PayeeAccountID: "acct-payee",
		Description:    "travel",
		Amount:         5000,
		Currency:       "USD",
		Status:         domain.ExpenseStatusPaid,
		ProcessedAt:    &processed,
		Items: []domain.ExpenseItem{
			{ID: "item-1", Description: "flight", Amount: 3000},
			{ID: "item-2", Description: "hotel", Amount: 2000},
		},
		Attachments: []domain.ExpenseAttachment{
			{ID: "att-1", URL: "https://receipts.example.com/1.pdf"},
		},
	}

	resp := ExpenseFromDomain(expense)
	if resp.Status != "PAID" || resp.ProcessedAt == nil {
		t.Fatalf("unexpected expense response: %+v", resp)
	}
	if len(resp.Items) != 2 || resp.Items[1].Amount != 2000 {
		t.Fatalf("expected items to convert, got %+v", resp.Items)
	}
	if len(resp.Attachments) != 1 || resp.Attachments[0].URL != "https://receipts.example.com/1.pdf" {
		t.Fatalf("expected attachments to convert, got %+v", resp.Attachments)
	}

	list := ExpensesFromDomain([]*domain.Expense{expense})
	if len(list) != 1 || list[0].ID != expense.ID {
		t.Fatalf("ExpensesFromDomain returned %+v", list)
	}
}

func TestConsistencyReportFromUseCase(t *testing.T) {
	clean := ConsistencyReportFromUseCase(&usecase.CheckReport{GroupsChecked: 10})
	if !clean.Consistent || clean.GroupsChecked != 10 || len(clean.Imbalances) != 0 {
		t.Fatalf("unexpected clean report: %+v", clean)
	}

	broken := ConsistencyReportFromUseCase(&usecase.CheckReport{
		GroupsChecked: 10,
		Imbalances: []usecase.GroupImbalance{
			{GroupID: "group-1", Legs: 2, Drift: 2, Currency: "USD"},
		},
	})
	if broken.Consistent || len(broken.Imbalances) != 1 || broken.Imbalances[0].Drift != 2 {
		t.Fatalf("unexpected broken report: %+v", broken)
	}
}
