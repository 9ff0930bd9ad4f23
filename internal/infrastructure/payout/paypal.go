package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// paypalFeePercent is PayPal's published payouts fee: 2% of the amount.
var paypalFeePercent = decimal.NewFromInt(2)

// PayPalProvider pays expenses through PayPal Payouts. Payouts settle
// synchronously from the ledger's point of view.
type PayPalProvider struct {
	client *resty.Client
	logger zerolog.Logger
}

// NewPayPalProvider creates a new PayPalProvider.
func NewPayPalProvider(baseURL, clientID, secret string, timeout time.Duration, logger zerolog.Logger) *PayPalProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetBasicAuth(clientID, secret)

	return &PayPalProvider{
		client: client,
		logger: logger,
	}
}

type paypalPayoutRequest struct {
	SenderBatchID string `json:"sender_batch_id"`
	Receiver      string `json:"receiver"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Note          string `json:"note"`
}

type paypalPayoutResponse struct {
	BatchID string `json:"payout_batch_id"`
	Status  string `json:"batch_status"`
}

// Quote estimates the payout fee from the published fee schedule.
func (p *PayPalProvider) Quote(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutQuote, error) {
	fee := domain.CalcFee(expense.Amount, paypalFeePercent)

	return &usecase.PayoutQuote{
		Fee:         fee,
		FeeCurrency: expense.Currency,
	}, nil
}

// Pay sends the payout.
func (p *PayPalProvider) Pay(ctx context.Context, method *domain.PayoutMethod, expense *domain.Expense) (*usecase.PayoutResult, error) {
	receiver, _ := method.Data["email"].(string)
	if receiver == "" {
		return nil, fmt.Errorf("%w: paypal payout method has no email", domain.ErrValidationFailed)
	}

	var out paypalPayoutResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(paypalPayoutRequest{
			SenderBatchID: expense.ID,
			Receiver:      receiver,
			Amount:        decimal.New(expense.Amount, -2).StringFixed(2),
			Currency:      expense.Currency,
			Note:          expense.Description,
		}).
		SetResult(&out).
		Post("/v1/payments/payouts")
	if err != nil {
		return nil, fmt.Errorf("%w: paypal payout: %v", domain.ErrPaymentProcessor, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: paypal payout returned %s", domain.ErrPaymentProcessor, resp.Status())
	}

	p.logger.Info().
		Str("expense_id", expense.ID).
		Str("batch_id", out.BatchID).
		Str("status", out.Status).
		Msg("paypal payout sent")

	return &usecase.PayoutResult{
		ProviderReference: out.BatchID,
		Fee:               domain.CalcFee(expense.Amount, paypalFeePercent),
		FeeCurrency:       expense.Currency,
	}, nil
}
