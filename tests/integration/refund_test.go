package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/usecase"
)

func createDonation(t *testing.T, env *testEnv, amount, processorFee int64) (*domain.Account, *domain.LedgerEntry) {
	t.Helper()
	ctx := context.Background()

	host, collective, _ := env.db.CreateHostedParties(ctx, "USD")
	donor := env.db.CreateTestAccount(ctx, "donor-r", domain.AccountTypeUser, "USD", nil, false)

	entry, err := env.ledgerUC.CreateDoubleEntry(ctx, usecase.EntryIntent{
		Amount:                            amount,
		Currency:                          "USD",
		FromAccount:                       donor,
		ToAccount:                         collective,
		HostAccount:                       host,
		PaymentProcessorFeeInHostCurrency: processorFee,
	})
	if err != nil {
		t.Fatalf("failed to create donation: %v", err)
	}
	return collective, entry
}

func TestRefundFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	collective, original := createDonation(t, env, 5000, -250)

	// Processor gives the full fee back.
	refund, err := env.refundUC.RefundEntry(adminContext(), original.ID, 250)
	if err != nil {
		t.Fatalf("failed to refund: %v", err)
	}

	if refund.Amount != -5000 {
		t.Fatalf("expected refund amount -5000, got %d", refund.Amount)
	}
	if refund.PaymentProcessorFeeInHostCurrency != 250 {
		t.Fatalf("expected returned processor fee 250, got %d", refund.PaymentProcessorFeeInHostCurrency)
	}
	if refund.RefundOfEntryID == nil || *refund.RefundOfEntryID != original.ID {
		t.Fatal("refund should point back at the original entry")
	}

	reloaded, err := env.entryRepo.GetByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("failed to reload original: %v", err)
	}
	if reloaded.RefundedByEntryID == nil || *reloaded.RefundedByEntryID != refund.ID {
		t.Fatal("original should point forward at the refund")
	}

	balance, err := env.accountUC.GetBalance(ctx, collective.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if balance.Amount != 0 {
		t.Fatalf("expected balance back to 0, got %d", balance.Amount)
	}

	imbalance, err := env.consistencyUC.CheckGroup(ctx, refund.GroupID)
	if err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
	if imbalance != nil {
		t.Fatalf("refund group should reconcile, got %+v", imbalance)
	}

	// The original cannot be refunded twice.
	if _, err := env.refundUC.RefundEntry(adminContext(), original.ID, 0); !errors.Is(err, domain.ErrAlreadyRefunded) {
		t.Fatalf("expected ErrAlreadyRefunded, got %v", err)
	}
}

func TestRefundFlow_RefundOfRefund(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	collective, original := createDonation(t, env, 5000, -250)

	refund, err := env.refundUC.RefundEntry(adminContext(), original.ID, 250)
	if err != nil {
		t.Fatalf("failed to refund: %v", err)
	}

	// Reversing the refund restores the original numbers, fee included.
	restore, err := env.refundUC.RefundEntry(adminContext(), refund.ID, 0)
	if err != nil {
		t.Fatalf("failed to refund the refund: %v", err)
	}
	if restore.Amount != 5000 {
		t.Fatalf("expected restored amount 5000, got %d", restore.Amount)
	}
	if restore.PaymentProcessorFeeInHostCurrency != -250 {
		t.Fatalf("expected restored processor fee -250, got %d", restore.PaymentProcessorFeeInHostCurrency)
	}

	balance, err := env.accountUC.GetBalance(ctx, collective.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}
	if balance.Amount != 4750 {
		t.Fatalf("expected balance restored to 4750, got %d", balance.Amount)
	}
}

func TestRefundFlow_Authorization(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	_, original := createDonation(t, env, 1000, 0)

	// No actor on the context.
	if _, err := env.refundUC.RefundEntry(ctx, original.ID, 0); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// A fee refund larger than the fee the processor took.
	if _, err := env.refundUC.RefundEntry(adminContext(), original.ID, 300); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}
