package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is a pinned currency conversion rate for a pair on a given date.
// Rates are pinned per date so the ledger stays reconcilable: replaying an
// entry build for the same date must yield the same integers.
type FxRate struct {
	Base  string
	Quote string
	Rate  decimal.Decimal
	AsOf  time.Time
}
