package integration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fundhost/ledger/internal/adapter/repository/postgres"
	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/infrastructure/authz"
	"github.com/fundhost/ledger/internal/infrastructure/fx"
	"github.com/fundhost/ledger/internal/infrastructure/payout"
	"github.com/fundhost/ledger/internal/usecase"
	"github.com/fundhost/ledger/tests/testutil"
)

// testEnv wires the full object graph over a real database, mirroring the
// production composition in cmd/server.
type testEnv struct {
	db *testutil.TestDB

	entryRepo   *postgres.EntryRepository
	accountRepo *postgres.AccountRepository
	expenseRepo *postgres.ExpenseRepository
	payoutRepo  *postgres.PayoutMethodRepository
	outboxRepo  *postgres.OutboxRepository
	fxRateRepo  *postgres.FxRateRepository

	accountUC     *usecase.AccountUseCase
	ledgerUC      *usecase.LedgerUseCase
	refundUC      *usecase.RefundUseCase
	expenseUC     *usecase.ExpenseUseCase
	payoutUC      *usecase.PayoutMethodUseCase
	consistencyUC *usecase.ConsistencyUseCase
	exportUC      *usecase.ExportUseCase

	platformAccount *domain.Account
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()

	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)
	db.TruncateAll(ctx)

	pool := db.Pool
	entryRepo := postgres.NewEntryRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	payoutRepo := postgres.NewPayoutMethodRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	fxRateRepo := postgres.NewFxRateRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	resolver := fx.NewResolver(fxRateRepo, nil, nil, zerolog.Nop(), nil)
	authorizer := authz.NewRoleAuthorizer()

	platform := db.CreateTestAccount(ctx, "platform", domain.AccountTypePlatform, usecase.PlatformCurrency, nil, true)

	ledgerUC := usecase.NewLedgerUseCase(txManager, entryRepo, accountRepo, outboxRepo, auditRepo, resolver, idGen, nil, platform.ID)
	refundUC := usecase.NewRefundUseCase(txManager, entryRepo, accountRepo, outboxRepo, ledgerUC, authorizer, idGen, nil)

	registry := payout.NewRegistry()
	registry.Register(domain.PayoutKindAccountBalance, payout.NewBalanceProvider())
	registry.Register(domain.PayoutKindManual, payout.NewManualProvider())

	expenseUC := usecase.NewExpenseUseCase(
		txManager, expenseRepo, entryRepo, accountRepo, payoutRepo, outboxRepo, auditRepo,
		ledgerUC, refundUC, registry, resolver, authorizer, idGen, nil,
	)

	return &testEnv{
		db:              db,
		entryRepo:       entryRepo,
		accountRepo:     accountRepo,
		expenseRepo:     expenseRepo,
		payoutRepo:      payoutRepo,
		outboxRepo:      outboxRepo,
		fxRateRepo:      fxRateRepo,
		accountUC:       usecase.NewAccountUseCase(accountRepo, entryRepo, auditRepo, idGen),
		ledgerUC:        ledgerUC,
		refundUC:        refundUC,
		expenseUC:       expenseUC,
		payoutUC:        usecase.NewPayoutMethodUseCase(payoutRepo, accountRepo, idGen),
		consistencyUC:   usecase.NewConsistencyUseCase(entryRepo),
		exportUC:        usecase.NewExportUseCase(accountRepo, entryRepo),
		platformAccount: platform,
	}
}

// adminContext returns a context carrying a site admin actor.
func adminContext() context.Context {
	return domain.WithActor(context.Background(), &domain.Actor{
		ID:   "admin-1",
		Role: domain.RoleSiteAdmin,
	})
}
