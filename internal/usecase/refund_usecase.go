package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/infrastructure/metrics"
)

// RefundUseCase produces the exact inverse of an existing entry as a new
// balanced group. A refund is a full double-entry event, never a row edit:
// the original legs stay in place and the two groups reference each other.
type RefundUseCase struct {
	txManager   TransactionManager
	entryRepo   EntryRepository
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	ledger      *LedgerUseCase
	authorizer  Authorizer
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewRefundUseCase creates a new RefundUseCase.
func NewRefundUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	ledger *LedgerUseCase,
	authorizer Authorizer,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *RefundUseCase {
	return &RefundUseCase{
		txManager:   txManager,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		ledger:      ledger,
		authorizer:  authorizer,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// RefundEntry refunds an entry. processorFeeRefund is the amount of the
// original payment processor fee the processor gives back, in host currency,
// never negative. Pass 0 when the processor keeps its fee; the payer side
// then bears it through the net amount.
func (uc *RefundUseCase) RefundEntry(ctx context.Context, entryID string, processorFeeRefund int64) (*domain.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Refunded() {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyRefunded, entry.ID)
	}
	if processorFeeRefund < 0 {
		return nil, fmt.Errorf("%w: processor fee refund must not be negative", domain.ErrValidationFailed)
	}
	if max := -entry.PaymentProcessorFeeInHostCurrency; max >= 0 && processorFeeRefund > max {
		return nil, fmt.Errorf("%w: processor fee refund %d exceeds original fee %d", domain.ErrValidationFailed, processorFeeRefund, max)
	}

	if uc.authorizer != nil {
		actor, _ := domain.ActorFromContext(ctx)
		if !uc.authorizer.CanRefund(actor, entry) {
			return nil, fmt.Errorf("%w: actor cannot refund entry %s", domain.ErrUnauthorized, entry.ID)
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	refundPrimary, err := uc.refundWithinTx(txCtx, tx, entry, processorFeeRefund)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RefundsCreated.Inc()
	}

	return refundPrimary, nil
}

// refundWithinTx builds and persists the inverse group inside an existing
// unit of work. Used directly by the expense orchestrator so a markAsUnpaid
// commits the refund and the status reset together.
func (uc *RefundUseCase) refundWithinTx(ctx context.Context, tx Transaction, entry *domain.LedgerEntry, processorFeeRefund int64) (*domain.LedgerEntry, error) {
	intent, err := uc.buildRefundIntent(ctx, entry, processorFeeRefund)
	if err != nil {
		return nil, err
	}

	refundPrimary, refundOpposite, err := uc.ledger.BuildDoubleEntry(ctx, intent)
	if err != nil {
		return nil, err
	}

	if err := uc.ledger.persistPair(ctx, tx, refundPrimary, refundOpposite); err != nil {
		return nil, err
	}

	// Bidirectional linkage: the refund already points at the original
	// through the intent; the original now points forward at the refund.
	if err := uc.entryRepo.MarkRefunded(ctx, tx, entry.ID, refundPrimary.ID); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   refundPrimary.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeEntryRefunded,
		Payload: map[string]any{
			"refund_entry_id":   refundPrimary.ID,
			"original_entry_id": entry.ID,
			"amount":            refundPrimary.Amount,
			"currency":          refundPrimary.Currency,
		},
		CreatedAt: refundPrimary.CreatedAt,
		Published: false,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	return refundPrimary, nil
}

// buildRefundIntent negates every amount and fee field of the original.
// The processor fee is the one exception: it carries whatever the processor
// actually gives back.
func (uc *RefundUseCase) buildRefundIntent(ctx context.Context, entry *domain.LedgerEntry, processorFeeRefund int64) (EntryIntent, error) {
	fromAccount, err := uc.accountRepo.GetByID(ctx, entry.FromAccountID)
	if err != nil {
		return EntryIntent{}, err
	}
	toAccount, err := uc.accountRepo.GetByID(ctx, entry.ToAccountID)
	if err != nil {
		return EntryIntent{}, err
	}

	var hostAccount *domain.Account
	if entry.HostAccountID != nil {
		hostAccount, err = uc.accountRepo.GetByID(ctx, *entry.HostAccountID)
		if err != nil {
			return EntryIntent{}, err
		}
	}

	procFee := processorFeeRefund
	if entry.PaymentProcessorFeeInHostCurrency > 0 {
		// Refunding a refund restores the original fee exactly, so the
		// double inverse lands back on the original's numbers.
		procFee = -entry.PaymentProcessorFeeInHostCurrency
	}

	amountInHost := -entry.AmountInHostCurrency
	rate := entry.HostCurrencyFxRate
	originalID := entry.ID

	return EntryIntent{
		Amount:                            -entry.Amount,
		Currency:                          entry.Currency,
		FromAccount:                       fromAccount,
		ToAccount:                         toAccount,
		HostAccount:                       hostAccount,
		HostCurrency:                      entry.HostCurrency,
		HostCurrencyFxRate:                &rate,
		AmountInHostCurrency:              &amountInHost,
		PlatformFeeInHostCurrency:         -entry.PlatformFeeInHostCurrency,
		HostFeeInHostCurrency:             -entry.HostFeeInHostCurrency,
		PaymentProcessorFeeInHostCurrency: procFee,
		TaxAmount:                         -entry.TaxAmount,
		OrderID:                           entry.OrderID,
		ExpenseID:                         entry.ExpenseID,
		RefundOfEntryID:                   &originalID,
		Data: map[string]any{
			"refund": true,
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}
