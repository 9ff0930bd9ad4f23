package dto

import (
	"time"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Currency      string    `json:"currency"`
	HostAccountID *string   `json:"host_account_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		Slug:          a.Slug,
		Name:          a.Name,
		Type:          string(a.Type),
		Currency:      a.Currency,
		HostAccountID: a.HostAccountID,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BalanceResponse represents an account balance. Amount is in minor units of
// the account currency.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Currency  string `json:"currency"`
	Amount    int64  `json:"amount"`
}

// BalanceFromUseCase converts a use case balance to response.
func BalanceFromUseCase(b *usecase.Balance) *BalanceResponse {
	return &BalanceResponse{
		AccountID: b.AccountID,
		Currency:  b.Currency,
		Amount:    b.Amount,
	}
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Direction string `json:"direction"`

	ToAccountID   string  `json:"to_account_id"`
	FromAccountID string  `json:"from_account_id"`
	HostAccountID *string `json:"host_account_id,omitempty"`

	Currency                   string `json:"currency"`
	Amount                     int64  `json:"amount"`
	HostCurrency               string `json:"host_currency"`
	HostCurrencyFxRate         string `json:"host_currency_fx_rate"`
	AmountInHostCurrency       int64  `json:"amount_in_host_currency"`
	NetAmountInAccountCurrency int64  `json:"net_amount_in_account_currency"`

	PlatformFeeInHostCurrency         int64 `json:"platform_fee_in_host_currency"`
	HostFeeInHostCurrency             int64 `json:"host_fee_in_host_currency"`
	PaymentProcessorFeeInHostCurrency int64 `json:"payment_processor_fee_in_host_currency"`
	TaxAmount                         int64 `json:"tax_amount"`

	OrderID           *string `json:"order_id,omitempty"`
	ExpenseID         *string `json:"expense_id,omitempty"`
	RefundOfEntryID   *string `json:"refund_of_entry_id,omitempty"`
	RefundedByEntryID *string `json:"refunded_by_entry_id,omitempty"`

	Data map[string]any `json:"data,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:                                e.ID,
		GroupID:                           e.GroupID,
		Direction:                         string(e.Direction()),
		ToAccountID:                       e.ToAccountID,
		FromAccountID:                     e.FromAccountID,
		HostAccountID:                     e.HostAccountID,
		Currency:                          e.Currency,
		Amount:                            e.Amount,
		HostCurrency:                      e.HostCurrency,
		HostCurrencyFxRate:                e.HostCurrencyFxRate.String(),
		AmountInHostCurrency:              e.AmountInHostCurrency,
		NetAmountInAccountCurrency:        e.NetAmountInAccountCurrency,
		PlatformFeeInHostCurrency:         e.PlatformFeeInHostCurrency,
		HostFeeInHostCurrency:             e.HostFeeInHostCurrency,
		PaymentProcessorFeeInHostCurrency: e.PaymentProcessorFeeInHostCurrency,
		TaxAmount:                         e.TaxAmount,
		OrderID:                           e.OrderID,
		ExpenseID:                         e.ExpenseID,
		RefundOfEntryID:                   e.RefundOfEntryID,
		RefundedByEntryID:                 e.RefundedByEntryID,
		Data:                              e.Data,
		CreatedAt:                         e.CreatedAt,
		DeletedAt:                         e.DeletedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ExpenseItemResponse represents an expense line item.
type ExpenseItemResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	IncurredAt  time.Time `json:"incurred_at"`
}

// ExpenseAttachmentResponse represents an attached file.
type ExpenseAttachmentResponse struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID             string `json:"id"`
	AccountID      string `json:"account_id"`
	PayeeAccountID string `json:"payee_account_id"`
	CreatedByID    string `json:"created_by_id"`

	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`

	PayoutMethodID     *string `json:"payout_method_id,omitempty"`
	LegacyPayoutMethod string  `json:"payout_method,omitempty"`

	Items       []ExpenseItemResponse       `json:"items,omitempty"`
	Attachments []ExpenseAttachmentResponse `json:"attachments,omitempty"`

	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ExpenseFromDomain converts domain expense to response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:                 e.ID,
		AccountID:          e.AccountID,
		PayeeAccountID:     e.PayeeAccountID,
		CreatedByID:        e.CreatedByID,
		Description:        e.Description,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Status:             string(e.Status),
		PayoutMethodID:     e.PayoutMethodID,
		LegacyPayoutMethod: e.LegacyPayoutMethod,
		ProcessedAt:        e.ProcessedAt,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	for _, item := range e.Items {
		resp.Items = append(resp.Items, ExpenseItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Amount:      item.Amount,
			IncurredAt:  item.IncurredAt,
		})
	}
	for _, att := range e.Attachments {
		resp.Attachments = append(resp.Attachments, ExpenseAttachmentResponse{
			ID:   att.ID,
			URL:  att.URL,
			Name: att.Name,
		})
	}
	return resp
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// PayoutMethodResponse represents a payout method in API responses.
type PayoutMethodResponse struct {
	ID            string         `json:"id"`
	AccountID     string         `json:"account_id"`
	Kind          string         `json:"kind"`
	Name          string         `json:"name,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	SavedForReuse bool           `json:"saved_for_reuse"`
	CreatedAt     time.Time      `json:"created_at"`
}

// PayoutMethodFromDomain converts domain payout method to response.
func PayoutMethodFromDomain(m *domain.PayoutMethod) *PayoutMethodResponse {
	return &PayoutMethodResponse{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Kind:          string(m.Kind),
		Name:          m.Name,
		Data:          m.Data,
		SavedForReuse: m.SavedForReuse,
		CreatedAt:     m.CreatedAt,
	}
}

// PayoutMethodsFromDomain converts domain payout methods to responses.
func PayoutMethodsFromDomain(methods []*domain.PayoutMethod) []*PayoutMethodResponse {
	result := make([]*PayoutMethodResponse, len(methods))
	for i, m := range methods {
		result[i] = PayoutMethodFromDomain(m)
	}
	return result
}

// GroupImbalanceResponse reports one entry group whose sides do not cancel.
type GroupImbalanceResponse struct {
	GroupID  string `json:"group_id"`
	Legs     int    `json:"legs"`
	Drift    int64  `json:"drift"`
	Currency string `json:"currency"`
}

// ConsistencyReportResponse is the outcome of a reconciliation run.
type ConsistencyReportResponse struct {
	Consistent    bool                     `json:"consistent"`
	GroupsChecked int                      `json:"groups_checked"`
	Imbalances    []GroupImbalanceResponse `json:"imbalances,omitempty"`
}

// ConsistencyReportFromUseCase converts a reconciliation report to response.
func ConsistencyReportFromUseCase(report *usecase.CheckReport) *ConsistencyReportResponse {
	resp := &ConsistencyReportResponse{
		Consistent:    len(report.Imbalances) == 0,
		GroupsChecked: report.GroupsChecked,
	}
	for _, im := range report.Imbalances {
		resp.Imbalances = append(resp.Imbalances, GroupImbalanceResponse{
			GroupID:  im.GroupID,
			Legs:     im.Legs,
			Drift:    im.Drift,
			Currency: im.Currency,
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
