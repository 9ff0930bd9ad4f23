package domain

import (
	"fmt"
	"time"
)

// PayoutMethodKind is the tagged variant of supported payout rails.
type PayoutMethodKind string

const (
	PayoutKindBankAccount    PayoutMethodKind = "BANK_ACCOUNT"
	PayoutKindPayPal         PayoutMethodKind = "PAYPAL"
	PayoutKindAccountBalance PayoutMethodKind = "ACCOUNT_BALANCE"
	PayoutKindManual         PayoutMethodKind = "MANUAL"
	PayoutKindOther          PayoutMethodKind = "OTHER"
)

// PayoutMethod describes how an expense is paid out. Owned by the payee
// account and referenced, never embedded, by expenses.
type PayoutMethod struct {
	ID            string
	AccountID     string
	Kind          PayoutMethodKind
	Name          string
	Data          map[string]any
	SavedForReuse bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// legacyPayoutMethods maps the deprecated string enum onto the tagged
// variant. "donation" expenses never reach the payout rail so they resolve
// to a manual method.
var legacyPayoutMethods = map[string]PayoutMethodKind{
	"paypal":        PayoutKindPayPal,
	"banktransfer":  PayoutKindBankAccount,
	"account":       PayoutKindAccountBalance,
	"manual":        PayoutKindManual,
	"donation":      PayoutKindManual,
	"other":         PayoutKindOther,
	"virtual_card":  PayoutKindOther,
	"bank_transfer": PayoutKindBankAccount,
}

// ResolvePayoutMethod is the single resolution point for both the structured
// reference and the legacy string enum. A structured method wins when both
// are present.
func ResolvePayoutMethod(structured *PayoutMethod, legacy string) (*PayoutMethod, error) {
	if structured != nil {
		return structured, nil
	}
	if legacy == "" {
		return nil, fmt.Errorf("%w: expense has no payout method", ErrValidationFailed)
	}
	kind, ok := legacyPayoutMethods[legacy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown payout method %q", ErrValidationFailed, legacy)
	}
	return &PayoutMethod{Kind: kind, Name: legacy}, nil
}
