package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/infrastructure/metrics"
)

// LedgerUseCase builds and persists balanced entry groups. Given one
// economic event it derives the two legs, persists the DEBIT leg before the
// CREDIT leg, and records the domain event in the outbox within the same
// unit of work.
type LedgerUseCase struct {
	txManager   TransactionManager
	entryRepo   EntryRepository
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	fx          FxResolver
	idGen       IDGenerator
	metrics     *metrics.Metrics

	// platformAccountID receives fees-on-top donation entries, settled in
	// PlatformCurrency.
	platformAccountID string
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	fx FxResolver,
	idGen IDGenerator,
	metrics *metrics.Metrics,
	platformAccountID string,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:         txManager,
		entryRepo:         entryRepo,
		accountRepo:       accountRepo,
		outboxRepo:        outboxRepo,
		auditRepo:         auditRepo,
		fx:                fx,
		idGen:             idGen,
		metrics:           metrics,
		platformAccountID: platformAccountID,
	}
}

// EntryIntent describes one economic event. Accounts arrive fully resolved;
// the builder never re-fetches through hidden associations. Amount is signed
// and in the destination account's currency: positive means CREDIT, negative
// DEBIT. Fees are ≤ 0, in host currency.
type EntryIntent struct {
	Amount   int64
	Currency string

	FromAccount *domain.Account
	ToAccount   *domain.Account
	HostAccount *domain.Account

	HostCurrency               string
	HostCurrencyFxRate         *decimal.Decimal
	AmountInHostCurrency       *int64
	NetAmountInAccountCurrency *int64

	PlatformFeeInHostCurrency         int64
	HostFeeInHostCurrency             int64
	PaymentProcessorFeeInHostCurrency int64
	TaxAmount                         int64

	OrderID               *string
	ExpenseID             *string
	RefundOfEntryID       *string
	CardProviderAccountID *string

	// FeesOnTop flags that PlatformFeeInHostCurrency is a platform
	// contribution bundled into the payer's total, to be split into its own
	// donation entry rather than deducted silently.
	FeesOnTop bool

	Data      map[string]any
	CreatedAt time.Time
}

func (i *EntryIntent) validate() error {
	if i.Amount == 0 {
		return fmt.Errorf("%w: intent amount must not be zero", domain.ErrZeroAmount)
	}
	if i.FromAccount == nil || i.ToAccount == nil {
		return fmt.Errorf("%w: intent requires resolved from and to accounts", domain.ErrValidationFailed)
	}
	if err := domain.ValidateCurrency(i.Currency); err != nil {
		return err
	}
	// Refund intents invert the original's fees, so their signs flip.
	if i.RefundOfEntryID == nil {
		if i.PlatformFeeInHostCurrency > 0 ||
			i.HostFeeInHostCurrency > 0 ||
			i.PaymentProcessorFeeInHostCurrency > 0 {
			return fmt.Errorf("%w: fees must be zero or negative", domain.ErrValidationFailed)
		}
	}
	if i.OrderID != nil && i.ExpenseID != nil {
		return fmt.Errorf("%w: intent cannot reference both an order and an expense", domain.ErrValidationFailed)
	}
	return domain.ValidateMetadata(i.Data)
}

// BuildDoubleEntry derives the balanced pair for an intent. The first return
// value is the primary entry (the one matching the intent's sign), the
// second its opposite. Nothing is persisted.
func (uc *LedgerUseCase) BuildDoubleEntry(ctx context.Context, intent EntryIntent) (*domain.LedgerEntry, *domain.LedgerEntry, error) {
	if err := intent.validate(); err != nil {
		return nil, nil, err
	}

	createdAt := intent.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	groupID := uc.idGen.Generate()

	fxRate := decimal.NewFromInt(1)
	if intent.HostCurrencyFxRate != nil {
		fxRate = *intent.HostCurrencyFxRate
	}

	hostCurrency := intent.HostCurrency
	if hostCurrency == "" {
		hostCurrency = intent.Currency
	}

	amountInHost := domain.RoundAmount(intent.Amount, fxRate)
	if intent.AmountInHostCurrency != nil {
		amountInHost = *intent.AmountInHostCurrency
	}

	// Net defaults to the host-currency amount plus fees, brought back into
	// the account currency. With no fees and rate 1 this degenerates to the
	// amount itself.
	net := domain.DivideAmount(
		amountInHost+
			intent.PlatformFeeInHostCurrency+
			intent.HostFeeInHostCurrency+
			intent.PaymentProcessorFeeInHostCurrency,
		fxRate,
	)
	if intent.NetAmountInAccountCurrency != nil {
		net = *intent.NetAmountInAccountCurrency
	}

	var hostAccountID *string
	if intent.HostAccount != nil {
		id := intent.HostAccount.ID
		hostAccountID = &id
	} else if intent.ToAccount.HostAccountID != nil {
		hostAccountID = intent.ToAccount.HostAccountID
	}

	data := make(map[string]any, len(intent.Data))
	for k, v := range intent.Data {
		data[k] = v
	}

	primary := &domain.LedgerEntry{
		ID:                                uc.idGen.Generate(),
		GroupID:                           groupID,
		ToAccountID:                       intent.ToAccount.ID,
		FromAccountID:                     intent.FromAccount.ID,
		HostAccountID:                     hostAccountID,
		CardProviderAccountID:             intent.CardProviderAccountID,
		Currency:                          intent.Currency,
		Amount:                            intent.Amount,
		HostCurrency:                      hostCurrency,
		HostCurrencyFxRate:                fxRate,
		AmountInHostCurrency:              amountInHost,
		NetAmountInAccountCurrency:        net,
		PlatformFeeInHostCurrency:         intent.PlatformFeeInHostCurrency,
		HostFeeInHostCurrency:             intent.HostFeeInHostCurrency,
		PaymentProcessorFeeInHostCurrency: intent.PaymentProcessorFeeInHostCurrency,
		TaxAmount:                         intent.TaxAmount,
		OrderID:                           intent.OrderID,
		ExpenseID:                         intent.ExpenseID,
		RefundOfEntryID:                   intent.RefundOfEntryID,
		Data:                              data,
		CreatedAt:                         createdAt,
	}

	opposite, err := uc.buildOpposite(ctx, primary, intent.FromAccount)
	if err != nil {
		return nil, nil, err
	}

	return primary, opposite, nil
}

// buildOpposite derives the second leg on the fromAccount's ledger. An
// inactive fromAccount sources funds from outside the ledger boundary: its
// leg stays in the primary currency and carries no host. An active one gets
// its leg in its own currency at the pinned rate for the entry date.
func (uc *LedgerUseCase) buildOpposite(ctx context.Context, primary *domain.LedgerEntry, fromAccount *domain.Account) (*domain.LedgerEntry, error) {
	// Fee columns are copied verbatim, not re-converted: fees are always
	// expressed in host currency and describe the whole group, so both legs
	// record the same minor-unit values.
	opposite := &domain.LedgerEntry{
		ID:                                uc.idGen.Generate(),
		GroupID:                           primary.GroupID,
		ToAccountID:                       primary.FromAccountID,
		FromAccountID:                     primary.ToAccountID,
		CardProviderAccountID:             primary.CardProviderAccountID,
		PlatformFeeInHostCurrency:         primary.PlatformFeeInHostCurrency,
		HostFeeInHostCurrency:             primary.HostFeeInHostCurrency,
		PaymentProcessorFeeInHostCurrency: primary.PaymentProcessorFeeInHostCurrency,
		TaxAmount:                         primary.TaxAmount,
		OrderID:                           primary.OrderID,
		ExpenseID:                         primary.ExpenseID,
		RefundOfEntryID:                   primary.RefundOfEntryID,
		CreatedAt:                         primary.CreatedAt,
	}

	if !fromAccount.Active() {
		opposite.Currency = primary.Currency
		opposite.HostCurrency = primary.Currency
		opposite.HostCurrencyFxRate = decimal.NewFromInt(1)
		opposite.HostAccountID = nil
		opposite.Amount = -primary.NetAmountInAccountCurrency
		opposite.AmountInHostCurrency = opposite.Amount
		opposite.NetAmountInAccountCurrency = -primary.Amount
		return opposite, nil
	}

	rate := decimal.NewFromInt(1)
	if primary.Currency != fromAccount.Currency {
		resolved, err := uc.fx.GetRate(ctx, primary.Currency, fromAccount.Currency, primary.CreatedAt)
		if err != nil {
			return nil, err
		}
		rate = resolved
	}

	opposite.Currency = fromAccount.Currency
	opposite.HostCurrency = fromAccount.Currency
	opposite.HostCurrencyFxRate = decimal.NewFromInt(1)
	opposite.HostAccountID = fromAccount.HostAccountID
	opposite.Amount = -domain.RoundAmount(primary.NetAmountInAccountCurrency, rate)
	opposite.AmountInHostCurrency = opposite.Amount
	opposite.NetAmountInAccountCurrency = -domain.RoundAmount(primary.Amount, rate)

	// Record the rate used so the group stays auditable.
	opposite.Data = map[string]any{"fxRate": rate.String(), "fxPair": primary.Currency + fromAccount.Currency}

	return opposite, nil
}

// CreateDoubleEntry builds and persists an entry group as one unit of work.
// An intent flagged fees-on-top is split first; the platform donation becomes
// its own balanced group in the same transaction. Returns the primary entry.
func (uc *LedgerUseCase) CreateDoubleEntry(ctx context.Context, intent EntryIntent) (*domain.LedgerEntry, error) {
	start := time.Now()

	var donation *EntryIntent
	if intent.FeesOnTop {
		main, don, err := uc.SplitFeesOnTop(ctx, intent)
		if err != nil {
			return nil, err
		}
		intent = main
		donation = don
	}

	primary, opposite, err := uc.BuildDoubleEntry(ctx, intent)
	if err != nil {
		return nil, err
	}

	var donationPrimary, donationOpposite *domain.LedgerEntry
	if donation != nil {
		donationPrimary, donationOpposite, err = uc.BuildDoubleEntry(ctx, *donation)
		if err != nil {
			return nil, err
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.persistPair(txCtx, tx, primary, opposite); err != nil {
		return nil, err
	}
	if donationPrimary != nil {
		if err := uc.persistPair(txCtx, tx, donationPrimary, donationOpposite); err != nil {
			return nil, err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   primary.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeEntryCreated,
		Payload: map[string]any{
			"entry_id":   primary.ID,
			"group_id":   primary.GroupID,
			"account_id": primary.ToAccountID,
			"amount":     primary.Amount,
			"currency":   primary.Currency,
		},
		CreatedAt: primary.CreatedAt,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
		uc.metrics.EntryDuration.Observe(time.Since(start).Seconds())
		uc.metrics.EntryAmount.Observe(math.Abs(float64(primary.Amount)))
		if donationPrimary != nil {
			uc.metrics.FeesOnTopSplits.Inc()
		}
	}

	uc.auditEntryCreate(ctx, primary)

	return primary, nil
}

// persistPair writes a group honoring the ordering invariant: the DEBIT leg
// is created before the CREDIT leg regardless of which one is primary.
func (uc *LedgerUseCase) persistPair(ctx context.Context, tx Transaction, primary, opposite *domain.LedgerEntry) error {
	first, second := primary, opposite
	if first.Amount > 0 {
		first, second = opposite, primary
	}

	if err := first.Validate(); err != nil {
		return err
	}
	if err := second.Validate(); err != nil {
		return err
	}

	if err := uc.entryRepo.Create(ctx, tx, first); err != nil {
		return err
	}
	return uc.entryRepo.Create(ctx, tx, second)
}

// VoidEntryGroup tombstones every leg of a group. Both legs go together so
// account balances stay consistent; the rows remain for audit.
func (uc *LedgerUseCase) VoidEntryGroup(ctx context.Context, groupID string) error {
	entries, err := uc.entryRepo.GetByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return domain.ErrEntryNotFound
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	for _, entry := range entries {
		if entry.DeletedAt != nil {
			return fmt.Errorf("%w: entry %s is already voided", domain.ErrInvalidState, entry.ID)
		}
		if err := uc.entryRepo.SoftDelete(txCtx, tx, entry.ID, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesVoided.Inc()
	}

	return nil
}

// GetEntry retrieves a single entry.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// GetEntryGroup retrieves all legs of a group.
func (uc *LedgerUseCase) GetEntryGroup(ctx context.Context, groupID string) ([]*domain.LedgerEntry, error) {
	entries, err := uc.entryRepo.GetByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEntryNotFound
	}
	return entries, nil
}

func (uc *LedgerUseCase) auditEntryCreate(ctx context.Context, entry *domain.LedgerEntry) {
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
		Action:       string(domain.AuditActionEntryCreate),
		ResourceType: domain.AggregateTypeEntry,
		ResourceID:   entry.ID,
		AfterState:   domain.MarshalState(entry),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now(),
	}
	_ = uc.auditRepo.Create(ctx, log)
}
