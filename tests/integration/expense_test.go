package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

type expenseFixture struct {
	host       *domain.Account
	collective *domain.Account
	payee      *domain.Account
	method     *domain.PayoutMethod
}

// fundedParties seeds a hosted collective holding the given balance and a
// payee with a balance payout method under the same host.
func fundedParties(t *testing.T, env *testEnv, balance int64) expenseFixture {
	t.Helper()
	ctx := context.Background()

	host, collective, payee := env.db.CreateHostedParties(ctx, "USD")
	donor := env.db.CreateTestAccount(ctx, "donor-e", domain.AccountTypeUser, "USD", nil, false)

	if _, err := env.ledgerUC.CreateDoubleEntry(ctx, usecase.EntryIntent{
		Amount:      balance,
		Currency:    "USD",
		FromAccount: donor,
		ToAccount:   collective,
		HostAccount: host,
	}); err != nil {
		t.Fatalf("failed to fund collective: %v", err)
	}

	method, err := env.payoutUC.CreatePayoutMethod(ctx, usecase.CreatePayoutMethodInput{
		AccountID:     payee.ID,
		Kind:          domain.PayoutKindAccountBalance,
		Name:          "balance",
		SavedForReuse: true,
	})
	if err != nil {
		t.Fatalf("failed to create payout method: %v", err)
	}

	return expenseFixture{host: host, collective: collective, payee: payee, method: method}
}

func submitExpense(t *testing.T, env *testEnv, fix expenseFixture, amount int64) *domain.Expense {
	t.Helper()

	expense, err := env.expenseUC.CreateExpense(adminContext(), usecase.CreateExpenseInput{
		AccountID:      fix.collective.ID,
		PayeeAccountID: fix.payee.ID,
		Description:    "conference travel",
		Amount:         amount,
		Currency:       "USD",
		PayoutMethodID: &fix.method.ID,
		Items: []usecase.ExpenseItemInput{
			{Description: "train", Amount: amount - 2500, IncurredAt: time.Now().UTC()},
			{Description: "hotel", Amount: 2500, IncurredAt: time.Now().UTC()},
		},
	})
	if err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	if expense.Status != domain.ExpenseStatusPending {
		t.Fatalf("expected PENDING, got %s", expense.Status)
	}
	return expense
}

func TestExpensePayoutFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	fix := fundedParties(t, env, 20000)
	expense := submitExpense(t, env, fix, 7500)

	approved, err := env.expenseUC.ApproveExpense(adminContext(), expense.ID)
	if err != nil {
		t.Fatalf("failed to approve: %v", err)
	}
	if approved.Status != domain.ExpenseStatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}

	paid, err := env.expenseUC.PayExpense(adminContext(), expense.ID)
	if err != nil {
		t.Fatalf("failed to pay: %v", err)
	}
	if paid.Status != domain.ExpenseStatusPaid {
		t.Fatalf("expected PAID, got %s", paid.Status)
	}
	if paid.ProcessedAt == nil {
		t.Fatal("paid expense should carry a processed timestamp")
	}

	collectiveBalance, err := env.accountUC.GetBalance(ctx, fix.collective.ID)
	if err != nil {
		t.Fatalf("failed to get collective balance: %v", err)
	}
	if collectiveBalance.Amount != 12500 {
		t.Fatalf("expected collective balance 12500, got %d", collectiveBalance.Amount)
	}
	payeeBalance, err := env.accountUC.GetBalance(ctx, fix.payee.ID)
	if err != nil {
		t.Fatalf("failed to get payee balance: %v", err)
	}
	if payeeBalance.Amount != 7500 {
		t.Fatalf("expected payee balance 7500, got %d", payeeBalance.Amount)
	}

	entries, err := env.entryRepo.GetByExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to load payout entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 payout legs, got %d", len(entries))
	}
	imbalance, err := env.consistencyUC.CheckGroup(ctx, entries[0].GroupID)
	if err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
	if imbalance != nil {
		t.Fatalf("payout group should reconcile, got %+v", imbalance)
	}

	// Paying twice is a conflict, not a double payout.
	if _, err := env.expenseUC.PayExpense(adminContext(), expense.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestExpensePayoutFlow_InsufficientFunds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	fix := fundedParties(t, env, 5000)
	expense := submitExpense(t, env, fix, 50000)

	if _, err := env.expenseUC.ApproveExpense(adminContext(), expense.ID); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}

	if _, err := env.expenseUC.PayExpense(adminContext(), expense.ID); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// A failed payout leaves the expense APPROVED and the ledger untouched.
	reloaded, err := env.expenseUC.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("failed to reload expense: %v", err)
	}
	if reloaded.Status != domain.ExpenseStatusApproved {
		t.Fatalf("expected APPROVED, got %s", reloaded.Status)
	}
	balance, err := env.accountUC.GetBalance(ctx, fix.collective.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if balance.Amount != 5000 {
		t.Fatalf("expected balance unchanged at 5000, got %d", balance.Amount)
	}
}

func TestExpensePayoutFlow_MarkAsUnpaid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	fix := fundedParties(t, env, 20000)
	expense := submitExpense(t, env, fix, 7500)

	if _, err := env.expenseUC.ApproveExpense(adminContext(), expense.ID); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}
	if _, err := env.expenseUC.PayExpense(adminContext(), expense.ID); err != nil {
		t.Fatalf("failed to pay: %v", err)
	}

	unpaid, err := env.expenseUC.MarkExpenseAsUnpaid(adminContext(), expense.ID, true)
	if err != nil {
		t.Fatalf("failed to mark as unpaid: %v", err)
	}
	if unpaid.Status != domain.ExpenseStatusApproved {
		t.Fatalf("expected APPROVED after unpaid, got %s", unpaid.Status)
	}
	if unpaid.ProcessedAt != nil {
		t.Fatal("unpaid expense should drop its processed timestamp")
	}

	collectiveBalance, err := env.accountUC.GetBalance(ctx, fix.collective.ID)
	if err != nil {
		t.Fatalf("failed to get collective balance: %v", err)
	}
	if collectiveBalance.Amount != 20000 {
		t.Fatalf("expected collective balance restored to 20000, got %d", collectiveBalance.Amount)
	}
	payeeBalance, err := env.accountUC.GetBalance(ctx, fix.payee.ID)
	if err != nil {
		t.Fatalf("failed to get payee balance: %v", err)
	}
	if payeeBalance.Amount != 0 {
		t.Fatalf("expected payee balance back to 0, got %d", payeeBalance.Amount)
	}
}
