package payout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundhost/ledger/internal/domain"
)

func TestRegistryResolvesRegisteredKind(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	balance := NewBalanceProvider()
	registry.Register(domain.PayoutKindAccountBalance, balance)

	provider, err := registry.For(domain.PayoutKindAccountBalance)
	require.NoError(t, err)
	assert.Same(t, balance, provider)

	_, err = registry.For(domain.PayoutKindPayPal)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestBalanceProviderIsFree(t *testing.T) {
	t.Parallel()

	provider := NewBalanceProvider()
	expense := &domain.Expense{ID: "exp-1", Amount: 5000, Currency: "USD"}
	method := &domain.PayoutMethod{Kind: domain.PayoutKindAccountBalance}

	quote, err := provider.Quote(context.Background(), method, expense)
	require.NoError(t, err)
	assert.Zero(t, quote.Fee)
	assert.Equal(t, "USD", quote.FeeCurrency)

	result, err := provider.Pay(context.Background(), method, expense)
	require.NoError(t, err)
	assert.False(t, result.Deferred, "balance payouts settle synchronously")
}

func TestBankTransferProviderDefersPayment(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/quotes":
			var req bankQuoteRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(7500), req.Amount)
			assert.Equal(t, "USD", req.Currency)
			json.NewEncoder(w).Encode(bankQuoteResponse{Fee: 150, FeeCurrency: "USD"})
		case "/v1/transfers":
			var req bankTransferRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "exp-1", req.Reference)
			json.NewEncoder(w).Encode(bankTransferResponse{ID: "tr-42", Status: "processing"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	provider := NewBankTransferProvider(server.URL, "test-key", 5*time.Second, zerolog.Nop())
	expense := &domain.Expense{ID: "exp-1", Amount: 7500, Currency: "USD"}
	method := &domain.PayoutMethod{
		Kind: domain.PayoutKindBankAccount,
		Data: map[string]any{"iban": "DE89370400440532013000"},
	}

	quote, err := provider.Quote(context.Background(), method, expense)
	require.NoError(t, err)
	assert.Equal(t, int64(150), quote.Fee)

	result, err := provider.Pay(context.Background(), method, expense)
	require.NoError(t, err)
	assert.True(t, result.Deferred, "bank transfers settle asynchronously")
	assert.Equal(t, "tr-42", result.ProviderReference)
}

func TestBankTransferProviderMapsAPIErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewBankTransferProvider(server.URL, "test-key", 5*time.Second, zerolog.Nop())
	expense := &domain.Expense{ID: "exp-1", Amount: 7500, Currency: "USD"}
	method := &domain.PayoutMethod{Kind: domain.PayoutKindBankAccount}

	_, err := provider.Quote(context.Background(), method, expense)
	assert.ErrorIs(t, err, domain.ErrPaymentProcessor)
}

func TestPayPalProviderQuotesPublishedFee(t *testing.T) {
	t.Parallel()

	provider := NewPayPalProvider("http://paypal.invalid", "id", "secret", 5*time.Second, zerolog.Nop())
	expense := &domain.Expense{ID: "exp-1", Amount: 10000, Currency: "USD"}

	quote, err := provider.Quote(context.Background(), &domain.PayoutMethod{Kind: domain.PayoutKindPayPal}, expense)
	require.NoError(t, err)
	assert.Equal(t, int64(200), quote.Fee, "2 percent of 10000")
	assert.Equal(t, "USD", quote.FeeCurrency)
}
