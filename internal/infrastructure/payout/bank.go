package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// BankTransferProvider pays expenses over a bank transfer API. Transfers
// complete asynchronously: Pay initiates the transfer and reports Deferred,
// the confirmation webhook finishes the expense.
type BankTransferProvider struct {
	client *resty.Client
	logger zerolog.Logger
}

// NewBankTransferProvider creates a new BankTransferProvider.
func NewBankTransferProvider(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *BankTransferProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &BankTransferProvider{
		client: client,
		logger: logger,
	}
}

type bankQuoteRequest struct {
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Details  map[string]any `json:"details"`
}

type bankQuoteResponse struct {
	Fee         int64  `json:"fee"`
	FeeCurrency string `json:"feeCurrency"`
}

type bankTransferRequest struct {
	Reference string         `json:"reference"`
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	Details   map[string]any `json:"details"`
}

type bankTransferResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Quote estimates the transfer fee.
func (p *BankTransferProvider) Quote(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutQuote, error) {
	var out bankQuoteResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(bankQuoteRequest{
			Amount:   expense.Amount,
			Currency: expense.Currency,
			Details:  method.Data,
		}).
		SetResult(&out).
		Post("/v1/quotes")
	if err != nil {
		return nil, fmt.Errorf("%w: bank transfer quote: %v", domain.ErrPaymentProcessor, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: bank transfer quote returned %s", domain.ErrPaymentProcessor, resp.Status())
	}

	return &usecase.PayoutQuote{
		Fee:         out.Fee,
		FeeCurrency: out.FeeCurrency,
	}, nil
}

// Pay initiates the transfer. The result is always deferred.
func (p *BankTransferProvider) Pay(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutResult, error) {
	var out bankTransferResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(bankTransferRequest{
			Reference: expense.ID,
			Amount:    expense.Amount,
			Currency:  expense.Currency,
			Details:   method.Data,
		}).
		SetResult(&out).
		Post("/v1/transfers")
	if err != nil {
		return nil, fmt.Errorf("%w: bank transfer initiation: %v", domain.ErrPaymentProcessor, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: bank transfer initiation returned %s", domain.ErrPaymentProcessor, resp.Status())
	}

	p.logger.Info().
		Str("expense_id", expense.ID).
		Str("transfer_id", out.ID).
		Str("status", out.Status).
		Msg("bank transfer initiated")

	return &usecase.PayoutResult{
		ProviderReference: out.ID,
		Deferred:          true,
	}, nil
}
