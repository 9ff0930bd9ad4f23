package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

var validate = validator.New()

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Slug          string  `json:"slug" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Type          string  `json:"type" validate:"required,oneof=collective user host platform"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	HostAccountID *string `json:"host_account_id,omitempty"`
	IsActive      bool    `json:"is_active"`
}

// Validate checks the request fields.
func (r *CreateAccountRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Slug:          r.Slug,
		Name:          r.Name,
		Type:          domain.AccountType(r.Type),
		Currency:      r.Currency,
		HostAccountID: r.HostAccountID,
		IsActive:      r.IsActive,
	}
}

// CreateEntryRequest represents a request to record an economic event.
// Amounts are in minor units; a positive amount credits the destination
// account, a negative one debits it. Fees are zero or negative, in host
// currency.
type CreateEntryRequest struct {
	Amount   int64  `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`

	FromAccountID string  `json:"from_account_id" validate:"required"`
	ToAccountID   string  `json:"to_account_id" validate:"required"`
	HostAccountID *string `json:"host_account_id,omitempty"`

	HostCurrency       string           `json:"host_currency,omitempty"`
	HostCurrencyFxRate *decimal.Decimal `json:"host_currency_fx_rate,omitempty"`

	PlatformFeeInHostCurrency         int64 `json:"platform_fee_in_host_currency,omitempty" validate:"lte=0"`
	HostFeeInHostCurrency             int64 `json:"host_fee_in_host_currency,omitempty" validate:"lte=0"`
	PaymentProcessorFeeInHostCurrency int64 `json:"payment_processor_fee_in_host_currency,omitempty" validate:"lte=0"`
	TaxAmount                         int64 `json:"tax_amount,omitempty"`

	OrderID *string `json:"order_id,omitempty"`

	FeesOnTop bool `json:"fees_on_top,omitempty"`

	Data map[string]any `json:"data,omitempty"`
}

// Validate checks the request fields.
func (r *CreateEntryRequest) Validate() error {
	return validate.Struct(r)
}

// ToIntent converts to a builder intent. Accounts arrive already resolved by
// the handler.
func (r *CreateEntryRequest) ToIntent(from, to, host *domain.Account) usecase.EntryIntent {
	return usecase.EntryIntent{
		Amount:                            r.Amount,
		Currency:                          r.Currency,
		FromAccount:                       from,
		ToAccount:                         to,
		HostAccount:                       host,
		HostCurrency:                      r.HostCurrency,
		HostCurrencyFxRate:                r.HostCurrencyFxRate,
		PlatformFeeInHostCurrency:         r.PlatformFeeInHostCurrency,
		HostFeeInHostCurrency:             r.HostFeeInHostCurrency,
		PaymentProcessorFeeInHostCurrency: r.PaymentProcessorFeeInHostCurrency,
		TaxAmount:                         r.TaxAmount,
		OrderID:                           r.OrderID,
		FeesOnTop:                         r.FeesOnTop,
		Data:                              r.Data,
	}
}

// RefundEntryRequest represents a request to refund an entry.
// ProcessorFeeRefund is the part of the original payment processor fee the
// processor gives back, in host currency minor units.
type RefundEntryRequest struct {
	ProcessorFeeRefund int64 `json:"processor_fee_refund" validate:"gte=0"`
}

// Validate checks the request fields.
func (r *RefundEntryRequest) Validate() error {
	return validate.Struct(r)
}

// ExpenseItemRequest is one line item of an expense submission.
type ExpenseItemRequest struct {
	Description string    `json:"description" validate:"required"`
	Amount      int64     `json:"amount" validate:"required,gt=0"`
	IncurredAt  time.Time `json:"incurred_at"`
}

// ExpenseAttachmentRequest is one attached file of an expense submission.
type ExpenseAttachmentRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Name string `json:"name"`
}

// CreateExpenseRequest represents an expense submission.
type CreateExpenseRequest struct {
	AccountID          string                     `json:"account_id" validate:"required"`
	PayeeAccountID     string                     `json:"payee_account_id" validate:"required"`
	Description        string                     `json:"description" validate:"required"`
	Amount             int64                      `json:"amount" validate:"required,gt=0"`
	Currency           string                     `json:"currency" validate:"required,len=3"`
	PayoutMethodID     *string                    `json:"payout_method_id,omitempty"`
	LegacyPayoutMethod string                     `json:"payout_method,omitempty"`
	Items              []ExpenseItemRequest       `json:"items,omitempty" validate:"dive"`
	Attachments        []ExpenseAttachmentRequest `json:"attachments,omitempty" validate:"dive"`
}

// Validate checks the request fields.
func (r *CreateExpenseRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput() usecase.CreateExpenseInput {
	input := usecase.CreateExpenseInput{
		AccountID:          r.AccountID,
		PayeeAccountID:     r.PayeeAccountID,
		Description:        r.Description,
		Amount:             r.Amount,
		Currency:           r.Currency,
		PayoutMethodID:     r.PayoutMethodID,
		LegacyPayoutMethod: r.LegacyPayoutMethod,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, usecase.ExpenseItemInput{
			Description: item.Description,
			Amount:      item.Amount,
			IncurredAt:  item.IncurredAt,
		})
	}
	for _, att := range r.Attachments {
		input.Attachments = append(input.Attachments, usecase.ExpenseAttachmentInput{
			URL:  att.URL,
			Name: att.Name,
		})
	}
	return input
}

// UpdateExpenseRequest represents an expense edit. Absent fields are left
// untouched.
type UpdateExpenseRequest struct {
	Description    *string              `json:"description,omitempty"`
	Amount         *int64               `json:"amount,omitempty"`
	Items          []ExpenseItemRequest `json:"items,omitempty" validate:"dive"`
	PayoutMethodID *string              `json:"payout_method_id,omitempty"`
}

// Validate checks the request fields.
func (r *UpdateExpenseRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput(expenseID string) usecase.UpdateExpenseInput {
	input := usecase.UpdateExpenseInput{
		ExpenseID:      expenseID,
		Description:    r.Description,
		Amount:         r.Amount,
		PayoutMethodID: r.PayoutMethodID,
	}
	if r.Items != nil {
		input.Items = make([]usecase.ExpenseItemInput, 0, len(r.Items))
		for _, item := range r.Items {
			input.Items = append(input.Items, usecase.ExpenseItemInput{
				Description: item.Description,
				Amount:      item.Amount,
				IncurredAt:  item.IncurredAt,
			})
		}
	}
	return input
}

// ConfirmProcessingRequest reports a deferred payout's outcome back from the
// provider. Fee is the actual charge in FeeCurrency minor units.
type ConfirmProcessingRequest struct {
	Fee               int64  `json:"fee" validate:"gte=0"`
	FeeCurrency       string `json:"fee_currency,omitempty"`
	ProviderReference string `json:"provider_reference,omitempty"`
}

// Validate checks the request fields.
func (r *ConfirmProcessingRequest) Validate() error {
	return validate.Struct(r)
}

// MarkUnpaidRequest represents a request to reverse a paid expense.
type MarkUnpaidRequest struct {
	RefundPaymentProcessorFee bool `json:"refund_payment_processor_fee"`
}

// CreatePayoutMethodRequest represents a request to register a payout method.
type CreatePayoutMethodRequest struct {
	AccountID     string         `json:"account_id" validate:"required"`
	Kind          string         `json:"kind" validate:"required"`
	Name          string         `json:"name"`
	Data          map[string]any `json:"data,omitempty"`
	SavedForReuse bool           `json:"saved_for_reuse"`
}

// Validate checks the request fields.
func (r *CreatePayoutMethodRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseInput converts to use case input.
func (r *CreatePayoutMethodRequest) ToUseCaseInput() usecase.CreatePayoutMethodInput {
	return usecase.CreatePayoutMethodInput{
		AccountID:     r.AccountID,
		Kind:          domain.PayoutMethodKind(r.Kind),
		Name:          r.Name,
		Data:          r.Data,
		SavedForReuse: r.SavedForReuse,
	}
}
