package usecase

import (
	"context"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
)

// ExportUseCase renders account ledgers as CSV for bookkeeping exports.
type ExportUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *ExportUseCase {
	return &ExportUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// ledgerCSVRow is the flat projection of a ledger entry. Amounts are in
// major units with two decimals, dates are YYYY-MM-DD.
type ledgerCSVRow struct {
	Date            string `csv:"date"`
	Group           string `csv:"group"`
	Direction       string `csv:"direction"`
	FromAccount     string `csv:"from_account"`
	ToAccount       string `csv:"to_account"`
	Amount          string `csv:"amount"`
	Currency        string `csv:"currency"`
	AmountInHost    string `csv:"amount_in_host_currency"`
	HostCurrency    string `csv:"host_currency"`
	PlatformFee     string `csv:"platform_fee"`
	HostFee         string `csv:"host_fee"`
	ProcessorFee    string `csv:"payment_processor_fee"`
	NetAmount       string `csv:"net_amount"`
	RefundOfEntryID string `csv:"refund_of"`
	ExpenseID       string `csv:"expense_id"`
	OrderID         string `csv:"order_id"`
}

// exportPageSize bounds memory while paging through large ledgers.
const exportPageSize = 500

// ExportAccountLedger streams an account's live entries, oldest first as
// returned by the repository, into w as CSV.
func (uc *ExportUseCase) ExportAccountLedger(ctx context.Context, accountID string, w io.Writer) error {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return err
	}

	var rows []*ledgerCSVRow
	offset := 0
	for {
		entries, err := uc.entryRepo.GetByAccount(ctx, accountID, exportPageSize, offset)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.DeletedAt != nil {
				continue
			}
			rows = append(rows, csvRowFromEntry(entry))
		}
		if len(entries) < exportPageSize {
			break
		}
		offset += exportPageSize
	}

	return gocsv.Marshal(rows, w)
}

func csvRowFromEntry(entry *domain.LedgerEntry) *ledgerCSVRow {
	row := &ledgerCSVRow{
		Date:         entry.CreatedAt.Format("2006-01-02"),
		Group:        entry.GroupID,
		Direction:    string(entry.Direction()),
		FromAccount:  entry.FromAccountID,
		ToAccount:    entry.ToAccountID,
		Amount:       majorUnits(entry.Amount),
		Currency:     entry.Currency,
		AmountInHost: majorUnits(entry.AmountInHostCurrency),
		HostCurrency: entry.HostCurrency,
		PlatformFee:  majorUnits(entry.PlatformFeeInHostCurrency),
		HostFee:      majorUnits(entry.HostFeeInHostCurrency),
		ProcessorFee: majorUnits(entry.PaymentProcessorFeeInHostCurrency),
		NetAmount:    majorUnits(entry.NetAmountInAccountCurrency),
	}
	if entry.RefundOfEntryID != nil {
		row.RefundOfEntryID = *entry.RefundOfEntryID
	}
	if entry.ExpenseID != nil {
		row.ExpenseID = *entry.ExpenseID
	}
	if entry.OrderID != nil {
		row.OrderID = *entry.OrderID
	}
	return row
}

// majorUnits renders minor units as a fixed two-decimal string.
func majorUnits(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
