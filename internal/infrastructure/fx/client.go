package fx

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// HTTPRateSource fetches historical rates from an exchange-rate HTTP API.
type HTTPRateSource struct {
	client *resty.Client
}

type rateResponse struct {
	Base  string            `json:"base"`
	Date  string            `json:"date"`
	Rates map[string]string `json:"rates"`
}

// NewHTTPRateSource creates a new HTTPRateSource against the given base URL.
func NewHTTPRateSource(baseURL string, timeout time.Duration) *HTTPRateSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &HTTPRateSource{client: client}
}

// FetchRate fetches the rate for a pair on a date.
func (s *HTTPRateSource) FetchRate(ctx context.Context, base, quote string, at time.Time) (decimal.Decimal, error) {
	var out rateResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"base":    base,
			"symbols": quote,
		}).
		SetResult(&out).
		Get("/" + at.UTC().Format("2006-01-02"))
	if err != nil {
		return decimal.Zero, err
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("rate provider returned %s", resp.Status())
	}

	raw, ok := out.Rates[quote]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate provider has no %s/%s rate for %s", base, quote, out.Date)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate provider returned malformed rate %q: %w", raw, err)
	}

	return rate, nil
}
