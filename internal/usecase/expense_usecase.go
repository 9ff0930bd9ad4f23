package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/infrastructure/metrics"
)

// ExpenseUseCase orchestrates the expense workflow: submission, approval,
// payout and reversal. It is the only component with externally visible
// state transitions. Every ledger-affecting operation runs as one unit of
// work; external payout calls happen before the transaction and their
// failure leaves the expense at its prior status.
type ExpenseUseCase struct {
	txManager   TransactionManager
	expenseRepo ExpenseRepository
	entryRepo   EntryRepository
	accountRepo AccountRepository
	payoutRepo  PayoutMethodRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	ledger      *LedgerUseCase
	refunds     *RefundUseCase
	providers   PayoutProviderRegistry
	fx          FxResolver
	authorizer  Authorizer
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	expenseRepo ExpenseRepository,
	entryRepo EntryRepository,
	accountRepo AccountRepository,
	payoutRepo PayoutMethodRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	ledger *LedgerUseCase,
	refunds *RefundUseCase,
	providers PayoutProviderRegistry,
	fx FxResolver,
	authorizer Authorizer,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		payoutRepo:  payoutRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		ledger:      ledger,
		refunds:     refunds,
		providers:   providers,
		fx:          fx,
		authorizer:  authorizer,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// ExpenseItemInput is one line item of a submission.
type ExpenseItemInput struct {
	Description string
	Amount      int64
	IncurredAt  time.Time
}

// ExpenseAttachmentInput is one attached file of a submission.
type ExpenseAttachmentInput struct {
	URL  string
	Name string
}

// CreateExpenseInput represents an expense submission.
type CreateExpenseInput struct {
	AccountID          string
	PayeeAccountID     string
	Description        string
	Amount             int64
	Currency           string
	PayoutMethodID     *string
	LegacyPayoutMethod string
	Items              []ExpenseItemInput
	Attachments        []ExpenseAttachmentInput
}

// CreateExpense submits a new expense in PENDING.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.accountRepo.GetByID(ctx, input.PayeeAccountID); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	if input.Currency != account.Currency {
		return nil, fmt.Errorf("%w: expense currency %s does not match account currency %s",
			domain.ErrValidationFailed, input.Currency, account.Currency)
	}

	actorID := "system"
	if actor, ok := domain.ActorFromContext(ctx); ok {
		actorID = actor.ID
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:                 uc.idGen.Generate(),
		AccountID:          input.AccountID,
		PayeeAccountID:     input.PayeeAccountID,
		CreatedByID:        actorID,
		Description:        input.Description,
		Amount:             input.Amount,
		Currency:           input.Currency,
		Status:             domain.ExpenseStatusPending,
		PayoutMethodID:     input.PayoutMethodID,
		LegacyPayoutMethod: input.LegacyPayoutMethod,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, item := range input.Items {
		expense.Items = append(expense.Items, domain.ExpenseItem{
			ID:          uc.idGen.Generate(),
			ExpenseID:   expense.ID,
			Description: item.Description,
			Amount:      item.Amount,
			IncurredAt:  item.IncurredAt,
			CreatedAt:   now,
		})
	}
	for _, att := range input.Attachments {
		expense.Attachments = append(expense.Attachments, domain.ExpenseAttachment{
			ID:        uc.idGen.Generate(),
			ExpenseID: expense.ID,
			URL:       att.URL,
			Name:      att.Name,
			CreatedAt: now,
		})
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.resolvePayoutMethod(ctx, expense); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.expenseRepo.Create(txCtx, tx, expense); err != nil {
		return nil, err
	}
	if err := uc.emitStatusEvent(txCtx, tx, expense, domain.EventTypeExpenseCreated); err != nil {
		return nil, err
	}
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesCreated.Inc()
	}
	uc.auditStatus(ctx, expense, nil)

	return expense, nil
}

// ApproveExpense moves a pending expense to APPROVED.
func (uc *ExpenseUseCase) ApproveExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return uc.transition(ctx, expenseID, domain.ExpenseStatusApproved, domain.EventTypeExpenseApproved,
		func(actor *domain.Actor, e *domain.Expense) bool { return uc.authorizer.CanApprove(actor, e) })
}

// RejectExpense moves a pending or approved expense to REJECTED.
func (uc *ExpenseUseCase) RejectExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return uc.transition(ctx, expenseID, domain.ExpenseStatusRejected, domain.EventTypeExpenseRejected,
		func(actor *domain.Actor, e *domain.Expense) bool { return uc.authorizer.CanReject(actor, e) })
}

func (uc *ExpenseUseCase) transition(
	ctx context.Context,
	expenseID string,
	next domain.ExpenseStatus,
	eventType string,
	allowed func(*domain.Actor, *domain.Expense) bool,
) (*domain.Expense, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	expense, err := uc.expenseRepo.GetByIDForUpdate(txCtx, tx, expenseID)
	if err != nil {
		return nil, err
	}

	actor, _ := domain.ActorFromContext(ctx)
	if uc.authorizer != nil && !allowed(actor, expense) {
		return nil, fmt.Errorf("%w: actor cannot change expense %s", domain.ErrUnauthorized, expense.ID)
	}

	if !expense.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: expense cannot move from %s to %s", domain.ErrConflict, expense.Status, next)
	}

	before := expense.Status
	now := time.Now().UTC()
	if err := uc.expenseRepo.UpdateStatus(txCtx, tx, expense.ID, next, expense.ProcessedAt, now); err != nil {
		return nil, err
	}
	expense.Status = next
	expense.UpdatedAt = now

	if err := uc.emitStatusEvent(txCtx, tx, expense, eventType); err != nil {
		return nil, err
	}
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpenseStatus.WithLabelValues(string(before), string(next)).Inc()
		if next == domain.ExpenseStatusRejected {
			uc.metrics.ExpensesRejected.Inc()
		}
	}

	uc.auditStatus(ctx, expense, &before)

	return expense, nil
}

// UpdateExpenseInput carries an expense edit. Nil fields are untouched.
type UpdateExpenseInput struct {
	ExpenseID      string
	Description    *string
	Amount         *int64
	Items          []ExpenseItemInput
	PayoutMethodID *string
}

// UpdateExpense edits an unpaid expense. Changing the item total or the
// payout method forces re-approval by resetting status to PENDING.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*domain.Expense, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	expense, err := uc.expenseRepo.GetByIDForUpdate(txCtx, tx, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	actor, _ := domain.ActorFromContext(ctx)
	if uc.authorizer != nil && !uc.authorizer.CanEdit(actor, expense) {
		return nil, fmt.Errorf("%w: actor cannot edit expense %s", domain.ErrUnauthorized, expense.ID)
	}
	if expense.Status == domain.ExpenseStatusPaid || expense.Status == domain.ExpenseStatusProcessing {
		return nil, fmt.Errorf("%w: expense in status %s cannot be edited", domain.ErrConflict, expense.Status)
	}

	previousTotal := expense.ItemsTotal()
	previousPayoutMethodID := expense.PayoutMethodID

	now := time.Now().UTC()
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Items != nil {
		items := make([]domain.ExpenseItem, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, domain.ExpenseItem{
				ID:          uc.idGen.Generate(),
				ExpenseID:   expense.ID,
				Description: item.Description,
				Amount:      item.Amount,
				IncurredAt:  item.IncurredAt,
				CreatedAt:   now,
			})
		}
		expense.Items = items
	}
	if input.PayoutMethodID != nil {
		expense.PayoutMethodID = input.PayoutMethodID
	}
	expense.UpdatedAt = now

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	// Qualifying edits reset approval. The comparison is against the stored
	// totals, not against which input fields were present.
	unapproved := false
	if expense.ItemsTotal() != previousTotal || !equalStringPtr(expense.PayoutMethodID, previousPayoutMethodID) {
		if expense.Status == domain.ExpenseStatusApproved {
			unapproved = true
		}
		expense.Status = domain.ExpenseStatusPending
	}

	if input.Items != nil {
		if err := uc.expenseRepo.ReplaceItems(txCtx, tx, expense.ID, expense.Items); err != nil {
			return nil, err
		}
	}
	if err := uc.expenseRepo.Update(txCtx, tx, expense); err != nil {
		return nil, err
	}
	if unapproved {
		if err := uc.emitStatusEvent(txCtx, tx, expense, domain.EventTypeExpenseUnapproved); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return expense, nil
}

// PayExpense pays an approved expense. Bank transfer methods are quoted and
// parked in PROCESSING until the provider confirms; direct methods post the
// ledger entry immediately and land in PAID.
func (uc *ExpenseUseCase) PayExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Status == domain.ExpenseStatusPaid || expense.Status == domain.ExpenseStatusProcessing {
		return nil, fmt.Errorf("%w: expense is already %s", domain.ErrConflict, expense.Status)
	}
	if expense.Status != domain.ExpenseStatusApproved {
		return nil, fmt.Errorf("%w: only APPROVED expenses can be paid, current status is %s", domain.ErrConflict, expense.Status)
	}

	actor, _ := domain.ActorFromContext(ctx)
	if uc.authorizer != nil && !uc.authorizer.CanPay(actor, expense) {
		return nil, fmt.Errorf("%w: actor cannot pay expense %s", domain.ErrUnauthorized, expense.ID)
	}

	method, err := uc.resolvePayoutMethod(ctx, expense)
	if err != nil {
		return nil, err
	}

	collective, payee, host, err := uc.resolveParties(ctx, expense)
	if err != nil {
		return nil, err
	}

	if method.Kind == domain.PayoutKindAccountBalance && !collective.SameHostAs(payee) {
		return nil, fmt.Errorf("%w: balance payouts require payer and payee under the same fiscal host", domain.ErrValidationFailed)
	}

	provider, err := uc.providers.For(method.Kind)
	if err != nil {
		return nil, err
	}

	// Fee estimate and balance check happen before any external call.
	quote, err := provider.Quote(ctx, method, expense)
	if err != nil {
		return nil, err
	}
	feeInAccountCurrency, err := uc.convert(ctx, quote.Fee, quote.FeeCurrency, expense.Currency)
	if err != nil {
		return nil, err
	}

	balance, err := uc.entryRepo.SumNetAmountByAccount(ctx, expense.AccountID)
	if err != nil {
		return nil, err
	}
	required := expense.Amount + feeInAccountCurrency
	if balance < required {
		return nil, fmt.Errorf("%w: account balance %d is below the %d required to cover the expense and fees (missing %d)",
			domain.ErrInsufficientFunds, balance, required, required-balance)
	}

	// External call first, state change only on success. A provider failure
	// leaves the expense APPROVED.
	payStart := time.Now()
	result, err := provider.Pay(ctx, method, expense)
	if uc.metrics != nil {
		uc.metrics.PayoutDuration.WithLabelValues(string(method.Kind)).Observe(time.Since(payStart).Seconds())
	}
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.PayoutErrors.WithLabelValues(string(method.Kind)).Inc()
		}
		return nil, err
	}

	if result.Deferred {
		// Asynchronous rail: the ledger posting waits for the provider's
		// confirmation, the expense parks in PROCESSING.
		return uc.markProcessing(ctx, expense, feeInAccountCurrency)
	}

	fee := feeInAccountCurrency
	if result.Fee != 0 {
		fee, err = uc.convert(ctx, result.Fee, result.FeeCurrency, expense.Currency)
		if err != nil {
			return nil, err
		}
	}

	return uc.settleExpense(ctx, expense, collective, payee, host, fee, result.ProviderReference)
}

// markProcessing transitions APPROVED → PROCESSING, re-checking the status
// inside the transaction so concurrent pay attempts serialize on the row.
func (uc *ExpenseUseCase) markProcessing(ctx context.Context, expense *domain.Expense, estimatedFee int64) (*domain.Expense, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	current, err := uc.expenseRepo.GetByIDForUpdate(txCtx, tx, expense.ID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.ExpenseStatusApproved {
		return nil, fmt.Errorf("%w: only APPROVED expenses can be paid, current status is %s", domain.ErrConflict, current.Status)
	}

	now := time.Now().UTC()
	if err := uc.expenseRepo.UpdateStatus(txCtx, tx, current.ID, domain.ExpenseStatusProcessing, nil, now); err != nil {
		return nil, err
	}
	current.Status = domain.ExpenseStatusProcessing
	current.UpdatedAt = now

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   current.ID,
		AggregateType: domain.AggregateTypeExpense,
		EventType:     domain.EventTypeExpenseProcessing,
		Payload: map[string]any{
			"expense_id":    current.ID,
			"account_id":    current.AccountID,
			"status":        string(current.Status),
			"amount":        current.Amount,
			"currency":      current.Currency,
			"estimated_fee": estimatedFee,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return current, nil
}

// ConfirmExpenseProcessing completes a deferred bank-transfer payout once
// the provider reports success. Safe to retry: a PAID expense fails the
// status re-check with Conflict.
func (uc *ExpenseUseCase) ConfirmExpenseProcessing(ctx context.Context, expenseID string, fee int64, feeCurrency, providerReference string) (*domain.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpenseStatusProcessing {
		return nil, fmt.Errorf("%w: expense is %s, not PROCESSING", domain.ErrConflict, expense.Status)
	}

	collective, payee, host, err := uc.resolveParties(ctx, expense)
	if err != nil {
		return nil, err
	}
	feeInAccountCurrency, err := uc.convert(ctx, fee, feeCurrency, expense.Currency)
	if err != nil {
		return nil, err
	}

	return uc.settleExpense(ctx, expense, collective, payee, host, feeInAccountCurrency, providerReference)
}

// settleExpense posts the expense's ledger group and marks it PAID, as one
// unit of work with a status re-check inside the transaction.
func (uc *ExpenseUseCase) settleExpense(
	ctx context.Context,
	expense *domain.Expense,
	collective, payee, host *domain.Account,
	feeInAccountCurrency int64,
	providerReference string,
) (*domain.Expense, error) {
	intent, err := uc.buildPayoutIntent(ctx, expense, collective, payee, host, feeInAccountCurrency, providerReference)
	if err != nil {
		return nil, err
	}

	primary, opposite, err := uc.ledger.BuildDoubleEntry(ctx, intent)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	current, err := uc.expenseRepo.GetByIDForUpdate(txCtx, tx, expense.ID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.ExpenseStatusApproved && current.Status != domain.ExpenseStatusProcessing {
		return nil, fmt.Errorf("%w: expense moved to %s while paying", domain.ErrConflict, current.Status)
	}

	if err := uc.ledger.persistPair(txCtx, tx, primary, opposite); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.expenseRepo.UpdateStatus(txCtx, tx, current.ID, domain.ExpenseStatusPaid, &now, now); err != nil {
		return nil, err
	}
	current.Status = domain.ExpenseStatusPaid
	current.ProcessedAt = &now
	current.UpdatedAt = now

	if err := uc.emitStatusEvent(txCtx, tx, current, domain.EventTypeExpensePaid); err != nil {
		return nil, err
	}
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesPaid.Inc()
	}
	before := domain.ExpenseStatusApproved
	uc.auditStatus(ctx, current, &before)

	return current, nil
}

// MarkExpenseAsUnpaid reverses a paid expense: the payout's ledger group is
// refunded and the expense returns to APPROVED. Elevated privilege only.
func (uc *ExpenseUseCase) MarkExpenseAsUnpaid(ctx context.Context, expenseID string, refundPaymentProcessorFee bool) (*domain.Expense, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	expense, err := uc.expenseRepo.GetByIDForUpdate(txCtx, tx, expenseID)
	if err != nil {
		return nil, err
	}

	actor, _ := domain.ActorFromContext(ctx)
	if uc.authorizer != nil && !uc.authorizer.CanMarkUnpaid(actor, expense) {
		return nil, fmt.Errorf("%w: actor cannot mark expense %s as unpaid", domain.ErrUnauthorized, expense.ID)
	}
	if expense.Status != domain.ExpenseStatusPaid {
		return nil, fmt.Errorf("%w: only PAID expenses can be marked as unpaid, current status is %s", domain.ErrConflict, expense.Status)
	}

	entry, err := uc.findPayoutEntry(txCtx, expense)
	if err != nil {
		return nil, err
	}

	var feeRefund int64
	if refundPaymentProcessorFee {
		feeRefund = -entry.PaymentProcessorFeeInHostCurrency
	}
	if _, err := uc.refunds.refundWithinTx(txCtx, tx, entry, feeRefund); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.expenseRepo.UpdateStatus(txCtx, tx, expense.ID, domain.ExpenseStatusApproved, nil, now); err != nil {
		return nil, err
	}
	expense.Status = domain.ExpenseStatusApproved
	expense.ProcessedAt = nil
	expense.UpdatedAt = now

	if err := uc.emitStatusEvent(txCtx, tx, expense, domain.EventTypeExpenseUnpaid); err != nil {
		return nil, err
	}
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	before := domain.ExpenseStatusPaid
	uc.auditStatus(ctx, expense, &before)

	return expense, nil
}

// DeleteExpense soft-deletes an expense. Paid and in-flight expenses are
// part of ledger history and cannot be removed.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, expenseID string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	expense, err := uc.expenseRepo.GetByIDForUpdate(txCtx, tx, expenseID)
	if err != nil {
		return err
	}

	actor, _ := domain.ActorFromContext(ctx)
	if uc.authorizer != nil && !uc.authorizer.CanDelete(actor, expense) {
		return fmt.Errorf("%w: actor cannot delete expense %s", domain.ErrUnauthorized, expense.ID)
	}
	if !expense.Deletable() {
		return fmt.Errorf("%w: expense in status %s cannot be deleted", domain.ErrConflict, expense.Status)
	}

	if err := uc.expenseRepo.SoftDelete(txCtx, tx, expense.ID, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}

// GetExpense retrieves an expense by ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id)
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	AccountID string
	Status    *domain.ExpenseStatus
	Limit     int
	Offset    int
}

// ListExpenses lists an account's expenses, optionally filtered by status.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.expenseRepo.ListByAccount(ctx, input.AccountID, input.Status, limit, offset)
}

func (uc *ExpenseUseCase) resolvePayoutMethod(ctx context.Context, expense *domain.Expense) (*domain.PayoutMethod, error) {
	var structured *domain.PayoutMethod
	if expense.PayoutMethodID != nil {
		method, err := uc.payoutRepo.GetByID(ctx, *expense.PayoutMethodID)
		if err != nil {
			return nil, err
		}
		structured = method
	}
	return domain.ResolvePayoutMethod(structured, expense.LegacyPayoutMethod)
}

func (uc *ExpenseUseCase) resolveParties(ctx context.Context, expense *domain.Expense) (collective, payee, host *domain.Account, err error) {
	collective, err = uc.accountRepo.GetByID(ctx, expense.AccountID)
	if err != nil {
		return nil, nil, nil, err
	}
	payee, err = uc.accountRepo.GetByID(ctx, expense.PayeeAccountID)
	if err != nil {
		return nil, nil, nil, err
	}
	if collective.HostAccountID == nil {
		return nil, nil, nil, fmt.Errorf("%w: account %s has no fiscal host to pay from", domain.ErrValidationFailed, collective.ID)
	}
	host, err = uc.accountRepo.GetByID(ctx, *collective.HostAccountID)
	if err != nil {
		return nil, nil, nil, err
	}
	return collective, payee, host, nil
}

// buildPayoutIntent describes the debit on the collective's ledger. Fees
// arrive in the account's currency and are converted to host currency at
// the current rate before the builder sees them.
func (uc *ExpenseUseCase) buildPayoutIntent(
	ctx context.Context,
	expense *domain.Expense,
	collective, payee, host *domain.Account,
	feeInAccountCurrency int64,
	providerReference string,
) (EntryIntent, error) {
	hostRate, err := uc.rate(ctx, expense.Currency, host.Currency)
	if err != nil {
		return EntryIntent{}, err
	}

	processorFee := -domain.RoundAmount(feeInAccountCurrency, hostRate)
	expenseID := expense.ID

	data := map[string]any{}
	if providerReference != "" {
		data["providerReference"] = providerReference
	}

	return EntryIntent{
		Amount:                            -expense.Amount,
		Currency:                          expense.Currency,
		FromAccount:                       payee,
		ToAccount:                         collective,
		HostAccount:                       host,
		HostCurrency:                      host.Currency,
		HostCurrencyFxRate:                &hostRate,
		PaymentProcessorFeeInHostCurrency: processorFee,
		ExpenseID:                         &expenseID,
		Data:                              data,
		CreatedAt:                         time.Now().UTC(),
	}, nil
}

// findPayoutEntry locates the live debit leg the payout wrote on the
// collective's ledger.
func (uc *ExpenseUseCase) findPayoutEntry(ctx context.Context, expense *domain.Expense) (*domain.LedgerEntry, error) {
	entries, err := uc.entryRepo.GetByExpense(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.ToAccountID == expense.AccountID &&
			entry.Direction() == domain.DirectionDebit &&
			entry.RefundOfEntryID == nil &&
			!entry.Refunded() &&
			entry.DeletedAt == nil {
			return entry, nil
		}
	}
	return nil, fmt.Errorf("%w: no payout entry found for expense %s", domain.ErrEntryNotFound, expense.ID)
}

func (uc *ExpenseUseCase) convert(ctx context.Context, amount int64, from, to string) (int64, error) {
	if amount == 0 || from == "" || from == to {
		return amount, nil
	}
	rate, err := uc.rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return domain.RoundAmount(amount, rate), nil
}

func (uc *ExpenseUseCase) rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	return uc.fx.GetRate(ctx, from, to, time.Now().UTC())
}

func (uc *ExpenseUseCase) emitStatusEvent(ctx context.Context, tx Transaction, expense *domain.Expense, eventType string) error {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   expense.ID,
		AggregateType: domain.AggregateTypeExpense,
		EventType:     eventType,
		Payload: map[string]any{
			"expense_id": expense.ID,
			"account_id": expense.AccountID,
			"status":     string(expense.Status),
			"amount":     expense.Amount,
			"currency":   expense.Currency,
		},
		CreatedAt: time.Now().UTC(),
		Published: false,
	}
	return uc.outboxRepo.Create(ctx, tx, event)
}

func (uc *ExpenseUseCase) auditStatus(ctx context.Context, expense *domain.Expense, before *domain.ExpenseStatus) {
	if uc.auditRepo == nil {
		return
	}

	actorID := "system"
	if actor, ok := domain.ActorFromContext(ctx); ok {
		actorID = actor.ID
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ActorID:      actorID,
		Action:       string(domain.AuditActionExpenseState),
		ResourceType: domain.AggregateTypeExpense,
		ResourceID:   expense.ID,
		AfterState:   domain.MarshalState(expense),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now(),
	}
	if before != nil {
		log.BeforeState = domain.JSON{"status": string(*before)}
	}
	_ = uc.auditRepo.Create(ctx, log)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
