package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
)

// ConsistencyUseCase reconciles the ledger: in every entry group the CREDIT
// side's amount must match the DEBIT side's net amount after FX, within one
// minor unit of rounding tolerance per currency conversion.
type ConsistencyUseCase struct {
	entryRepo EntryRepository
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(entryRepo EntryRepository) *ConsistencyUseCase {
	return &ConsistencyUseCase{entryRepo: entryRepo}
}

// GroupImbalance reports one entry group whose CREDIT and DEBIT sides do
// not cancel out. Drift is expressed in Currency, the side the group was
// reconciled in.
type GroupImbalance struct {
	GroupID  string
	Legs     int
	Drift    int64
	Currency string
}

// CheckReport is the outcome of a reconciliation run.
type CheckReport struct {
	GroupsChecked int
	Imbalances    []GroupImbalance
}

// roundingTolerance is the permitted drift per group in minor units. Each
// cross-currency leg rounds independently, so a group can be off by one.
const roundingTolerance = 1

const checkPageSize = 200

// CheckGroups walks every entry group and reports the ones whose live legs
// do not cancel out.
func (uc *ConsistencyUseCase) CheckGroups(ctx context.Context) (*CheckReport, error) {
	report := &CheckReport{}
	offset := 0
	for {
		groupIDs, err := uc.entryRepo.ListGroups(ctx, checkPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, groupID := range groupIDs {
			imbalance, err := uc.checkGroup(ctx, groupID)
			if err != nil {
				return nil, err
			}
			report.GroupsChecked++
			if imbalance != nil {
				report.Imbalances = append(report.Imbalances, *imbalance)
			}
		}
		if len(groupIDs) < checkPageSize {
			break
		}
		offset += checkPageSize
	}
	return report, nil
}

// CheckGroup reconciles a single entry group.
func (uc *ConsistencyUseCase) CheckGroup(ctx context.Context, groupID string) (*GroupImbalance, error) {
	return uc.checkGroup(ctx, groupID)
}

func (uc *ConsistencyUseCase) checkGroup(ctx context.Context, groupID string) (*GroupImbalance, error) {
	entries, err := uc.entryRepo.GetByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	live := make([]*domain.LedgerEntry, 0, len(entries))
	ref := ""
	for _, entry := range entries {
		if entry.DeletedAt != nil {
			continue
		}
		live = append(live, entry)
		if ref == "" && entry.Amount > 0 {
			ref = entry.Currency
		}
	}
	if len(live) == 0 {
		return nil, nil
	}
	if ref == "" {
		ref = live[0].Currency
	}

	// Money arriving on the CREDIT side must equal money leaving the DEBIT
	// side net of fees. A cross-currency group is reconciled in the CREDIT
	// leg's currency, converting through the rates the group itself
	// recorded, so the check never consults live market data.
	rates := groupRates(live)

	var credits, debits int64
	converted := 0
	for _, entry := range live {
		var side *int64
		var value int64
		if entry.Amount > 0 {
			side, value = &credits, entry.Amount
		} else {
			side, value = &debits, -entry.NetAmountInAccountCurrency
		}
		if entry.Currency != "" && entry.Currency != ref {
			if rate, ok := rates.resolve(entry.Currency, ref); ok {
				value = domain.RoundAmount(value, rate)
				converted++
			}
		}
		*side += value
	}

	diff := credits - debits
	drift := diff
	if drift < 0 {
		drift = -drift
	}
	if drift <= roundingTolerance*int64(1+converted) {
		return nil, nil
	}
	return &GroupImbalance{
		GroupID:  groupID,
		Legs:     len(live),
		Drift:    diff,
		Currency: ref,
	}, nil
}

// rateTable maps currency pairs like "EURUSD" to the rates a group's legs
// carry, either as the leg's own host-currency rate or as the audit rate
// stamped into its data.
type rateTable map[string]decimal.Decimal

func groupRates(entries []*domain.LedgerEntry) rateTable {
	table := rateTable{}
	for _, entry := range entries {
		if len(entry.Currency) == 3 && len(entry.HostCurrency) == 3 &&
			entry.Currency != entry.HostCurrency && !entry.HostCurrencyFxRate.IsZero() {
			table[entry.Currency+entry.HostCurrency] = entry.HostCurrencyFxRate
		}
		pair, _ := entry.Data["fxPair"].(string)
		raw, _ := entry.Data["fxRate"].(string)
		if len(pair) == 6 && raw != "" {
			if rate, err := decimal.NewFromString(raw); err == nil && !rate.IsZero() {
				table[pair] = rate
			}
		}
	}
	return table
}

func (t rateTable) lookup(from, to string) (decimal.Decimal, bool) {
	if rate, ok := t[from+to]; ok {
		return rate, true
	}
	if rate, ok := t[to+from]; ok {
		return decimal.NewFromInt(1).Div(rate), true
	}
	return decimal.Decimal{}, false
}

// resolve finds a conversion between two currencies, directly or through
// one intermediate the group also recorded.
func (t rateTable) resolve(from, to string) (decimal.Decimal, bool) {
	if rate, ok := t.lookup(from, to); ok {
		return rate, true
	}
	seen := map[string]struct{}{}
	for pair := range t {
		seen[pair[:3]] = struct{}{}
		seen[pair[3:]] = struct{}{}
	}
	for mid := range seen {
		if mid == from || mid == to {
			continue
		}
		first, ok := t.lookup(from, mid)
		if !ok {
			continue
		}
		if second, ok := t.lookup(mid, to); ok {
			return first.Mul(second), true
		}
	}
	return decimal.Decimal{}, false
}
