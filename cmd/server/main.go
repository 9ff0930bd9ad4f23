package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fundhost/ledger/internal/adapter/http"
	"github.com/fundhost/ledger/internal/adapter/http/handler"
	"github.com/fundhost/ledger/internal/adapter/http/middleware"
	postgresRepo "github.com/fundhost/ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/fundhost/ledger/internal/adapter/repository/redis"
	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/infrastructure/authz"
	"github.com/fundhost/ledger/internal/infrastructure/config"
	"github.com/fundhost/ledger/internal/infrastructure/eventpublisher"
	"github.com/fundhost/ledger/internal/infrastructure/fx"
	"github.com/fundhost/ledger/internal/infrastructure/logger"
	"github.com/fundhost/ledger/internal/infrastructure/logging"
	"github.com/fundhost/ledger/internal/infrastructure/metrics"
	"github.com/fundhost/ledger/internal/infrastructure/payout"
	"github.com/fundhost/ledger/internal/infrastructure/postgres"
	"github.com/fundhost/ledger/internal/infrastructure/redis"
	"github.com/fundhost/ledger/internal/usecase"
)

func main() {
	// Bootstrap logger until config is loaded
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	appLog := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	payoutMethodRepo := postgresRepo.NewPayoutMethodRepository(pool)
	fxRateRepo := postgresRepo.NewFxRateRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	m := metrics.New()

	// FX resolution: Redis cache, pinned rates, external source
	fxCache := redisRepo.NewFxRateCache(redisClient, cfg.FxCacheTTL)
	var rateSource fx.RateSource
	if cfg.FxRateAPIURL != "" {
		rateSource = fx.NewHTTPRateSource(cfg.FxRateAPIURL, cfg.PayoutTimeout)
	}
	fxResolver := fx.NewResolver(fxRateRepo, fxCache, rateSource, log.Logger, m)

	// Payout rails
	registry := payout.NewRegistry()
	registry.Register(domain.PayoutKindAccountBalance, payout.NewBalanceProvider())
	registry.Register(domain.PayoutKindManual, payout.NewManualProvider())
	registry.Register(domain.PayoutKindOther, payout.NewManualProvider())
	if cfg.BankTransferAPIURL != "" {
		registry.Register(domain.PayoutKindBankAccount,
			payout.NewBankTransferProvider(cfg.BankTransferAPIURL, cfg.BankTransferAPIKey, cfg.PayoutTimeout, log.Logger))
	}
	if cfg.PayPalAPIURL != "" {
		registry.Register(domain.PayoutKindPayPal,
			payout.NewPayPalProvider(cfg.PayPalAPIURL, cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayoutTimeout, log.Logger))
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	authorizer := authz.NewRoleAuthorizer()

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, entryRepo, accountRepo, outboxRepo, auditRepo, fxResolver, idGen, m, cfg.PlatformAccountID)
	refundUC := usecase.NewRefundUseCase(txManager, entryRepo, accountRepo, outboxRepo, ledgerUC, authorizer, idGen, m)
	accountUC := usecase.NewAccountUseCase(accountRepo, entryRepo, auditRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(txManager, expenseRepo, entryRepo, accountRepo, payoutMethodRepo, outboxRepo, auditRepo,
		ledgerUC, refundUC, registry, fxResolver, authorizer, idGen, m)
	payoutMethodUC := usecase.NewPayoutMethodUseCase(payoutMethodRepo, accountRepo, idGen)
	consistencyUC := usecase.NewConsistencyUseCase(entryRepo)
	exportUC := usecase.NewExportUseCase(accountRepo, entryRepo)

	// Outbox publisher: poll unpublished events and push them to Redis
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewRedisPublisher(redisClient),
		Logger:     appLog.Logger,
	})
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	entryHandler := handler.NewEntryHandler(ledgerUC, refundUC, accountUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	payoutMethodHandler := handler.NewPayoutMethodHandler(payoutMethodUC)
	ledgerHandler := handler.NewLedgerHandler(consistencyUC, exportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:      accountHandler,
		EntryHandler:        entryHandler,
		ExpenseHandler:      expenseHandler,
		PayoutMethodHandler: payoutMethodHandler,
		LedgerHandler:       ledgerHandler,
		HealthHandler:       healthHandler,
		IdempotencyStore:    idempotencyStore,
		RequestLogger:       middleware.NewLoggingMiddleware(log.Logger),
		RateLimiter:         rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
