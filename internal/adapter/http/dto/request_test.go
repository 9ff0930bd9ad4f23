package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

func TestCreateAccountRequest_Validate(t *testing.T) {
	valid := CreateAccountRequest{
		Slug:     "open-street-map",
		Name:     "OpenStreetMap",
		Type:     "collective",
		Currency: "USD",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *CreateAccountRequest)
	}{
		{"missing slug", func(r *CreateAccountRequest) { r.Slug = "" }},
		{"missing name", func(r *CreateAccountRequest) { r.Name = "" }},
		{"unknown type", func(r *CreateAccountRequest) { r.Type = "committee" }},
		{"bad currency length", func(r *CreateAccountRequest) { r.Currency = "US" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestCreateAccountRequest_ToUseCaseInput(t *testing.T) {
	hostID := "acct-host"
	req := &CreateAccountRequest{
		Slug:          "osm",
		Name:          "OpenStreetMap",
		Type:          "collective",
		Currency:      "USD",
		HostAccountID: &hostID,
		IsActive:      true,
	}

	got := req.ToUseCaseInput()
	if got.Slug != "osm" || got.Type != domain.AccountTypeCollective ||
		got.Currency != "USD" || got.HostAccountID != &hostID || !got.IsActive {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}

func TestCreateEntryRequest_Validate(t *testing.T) {
	valid := CreateEntryRequest{
		Amount:        5000,
		Currency:      "USD",
		FromAccountID: "acct-donor",
		ToAccountID:   "acct-col",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *CreateEntryRequest)
	}{
		{"missing amount", func(r *CreateEntryRequest) { r.Amount = 0 }},
		{"missing accounts", func(r *CreateEntryRequest) { r.FromAccountID = "" }},
		{"positive platform fee", func(r *CreateEntryRequest) { r.PlatformFeeInHostCurrency = 100 }},
		{"positive processor fee", func(r *CreateEntryRequest) { r.PaymentProcessorFeeInHostCurrency = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestCreateEntryRequest_ToIntent(t *testing.T) {
	rate := decimal.RequireFromString("1.1")
	orderID := "order-1"
	req := &CreateEntryRequest{
		Amount:                            5000,
		Currency:                          "EUR",
		FromAccountID:                     "acct-donor",
		ToAccountID:                       "acct-col",
		HostCurrency:                      "USD",
		HostCurrencyFxRate:                &rate,
		PaymentProcessorFeeInHostCurrency: -250,
		OrderID:                           &orderID,
		FeesOnTop:                         true,
		Data:                              map[string]any{"platform": "stripe"},
	}

	from := &domain.Account{ID: "acct-donor"}
	to := &domain.Account{ID: "acct-col"}
	host := &domain.Account{ID: "acct-host"}

	got := req.ToIntent(from, to, host)
	if got.FromAccount != from || got.ToAccount != to || got.HostAccount != host {
		t.Fatalf("expected resolved accounts to pass through, got %+v", got)
	}
	if got.Amount != 5000 || got.Currency != "EUR" || got.HostCurrency != "USD" {
		t.Fatalf("expected amounts to pass through, got %+v", got)
	}
	if !got.HostCurrencyFxRate.Equal(rate) {
		t.Fatalf("expected fx rate 1.1, got %s", got.HostCurrencyFxRate)
	}
	if got.PaymentProcessorFeeInHostCurrency != -250 || !got.FeesOnTop || got.OrderID != &orderID {
		t.Fatalf("expected fee fields to pass through, got %+v", got)
	}
}

func TestRefundEntryRequest_Validate(t *testing.T) {
	if err := (&RefundEntryRequest{ProcessorFeeRefund: 250}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&RefundEntryRequest{ProcessorFeeRefund: -1}).Validate(); err == nil {
		t.Fatal("expected negative fee refund to be rejected")
	}
}

func TestCreateExpenseRequest_ToUseCaseInput(t *testing.T) {
	incurred := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	pmID := "pm-1"
	req := &CreateExpenseRequest{
		AccountID:      "acct-col",
		PayeeAccountID: "acct-payee",
		Description:    "conference travel",
		Amount:         5000,
		Currency:       "USD",
		PayoutMethodID: &pmID,
		Items: []ExpenseItemRequest{
			{Description: "flight", Amount: 3000, IncurredAt: incurred},
			{Description: "hotel", Amount: 2000, IncurredAt: incurred},
		},
		Attachments: []ExpenseAttachmentRequest{
			{URL: "https://receipts.example.com/1.pdf", Name: "receipt"},
		},
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := req.ToUseCaseInput()
	if got.AccountID != "acct-col" || got.Amount != 5000 || got.PayoutMethodID != &pmID {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
	if len(got.Items) != 2 || got.Items[0].Amount != 3000 || !got.Items[0].IncurredAt.Equal(incurred) {
		t.Fatalf("expected items to convert, got %+v", got.Items)
	}
	if len(got.Attachments) != 1 || got.Attachments[0].URL != "https://receipts.example.com/1.pdf" {
		t.Fatalf("expected attachments to convert, got %+v", got.Attachments)
	}
}

func TestCreateExpenseRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateExpenseRequest)
	}{
		{"zero amount", func(r *CreateExpenseRequest) { r.Amount = 0 }},
		{"negative item", func(r *CreateExpenseRequest) {
			r.Items = []ExpenseItemRequest{{Description: "x", Amount: -1}}
		}},
		{"attachment without url", func(r *CreateExpenseRequest) {
			r.Attachments = []ExpenseAttachmentRequest{{Name: "receipt"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateExpenseRequest{
				AccountID:      "acct-col",
				PayeeAccountID: "acct-payee",
				Description:    "travel",
				Amount:         5000,
				Currency:       "USD",
			}
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestUpdateExpenseRequest_ToUseCaseInput(t *testing.T) {
	desc := "updated"
	amount := int64(6000)
	req := &UpdateExpenseRequest{
		Description: &desc,
		Amount:      &amount,
		Items: []ExpenseItemRequest{
			{Description: "flight", Amount: 6000},
		},
	}

	got := req.ToUseCaseInput("expense-1")
	if got.ExpenseID != "expense-1" || got.Description != &desc || got.Amount != &amount {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].Amount != 6000 {
		t.Fatalf("expected items to convert, got %+v", got.Items)
	}

	// Absent item list stays nil so the use case leaves items untouched.
	empty := &UpdateExpenseRequest{}
	if got := empty.ToUseCaseInput("expense-1"); got.Items != nil {
		t.Fatalf("expected nil items for absent list, got %+v", got.Items)
	}
}

func TestCreatePayoutMethodRequest_ToUseCaseInput(t *testing.T) {
	req := &CreatePayoutMethodRequest{
		AccountID:     "acct-payee",
		Kind:          "BANK_ACCOUNT",
		Name:          "main iban",
		Data:          map[string]any{"iban": "DE02120300000000202051"},
		SavedForReuse: true,
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := req.ToUseCaseInput()
	want := usecase.CreatePayoutMethodInput{
		AccountID:     "acct-payee",
		Kind:          domain.PayoutKindBankAccount,
		Name:          "main iban",
		Data:          req.Data,
		SavedForReuse: true,
	}
	if got.AccountID != want.AccountID || got.Kind != want.Kind ||
		got.Name != want.Name || !got.SavedForReuse {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
	if got.Data["iban"] != "DE02120300000000202051" {
		t.Fatalf("expected data to pass through, got %+v", got.Data)
	}
}
