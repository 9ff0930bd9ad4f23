package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fundhost/ledger/internal/adapter/http/handler"
	"github.com/fundhost/ledger/internal/adapter/http/middleware"
	"github.com/fundhost/ledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler      *handler.AccountHandler
	EntryHandler        *handler.EntryHandler
	ExpenseHandler      *handler.ExpenseHandler
	PayoutMethodHandler *handler.PayoutMethodHandler
	LedgerHandler       *handler.LedgerHandler
	HealthHandler       *handler.HealthHandler
	IdempotencyStore    usecase.IdempotencyStore
	RateLimiter         *middleware.RateLimiter
	RequestLogger       *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger.Wrap)
	}
	r.Use(middleware.Metrics)
	r.Use(middleware.Actor)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/slug/{slug}", cfg.AccountHandler.GetBySlug)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
			r.Get("/{id}/entries", cfg.AccountHandler.ListEntries)
			r.Get("/{id}/expenses", cfg.ExpenseHandler.ListByAccount)
			r.Get("/{id}/payout-methods", cfg.PayoutMethodHandler.ListByAccount)
			r.Get("/{id}/ledger.csv", cfg.LedgerHandler.ExportAccountLedger)
		})

		// Ledger entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Post("/{id}/refund", cfg.EntryHandler.Refund)
			r.Get("/groups/{groupID}", cfg.EntryHandler.GetGroup)
			r.Delete("/groups/{groupID}", cfg.EntryHandler.VoidGroup)
		})

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/{id}", cfg.ExpenseHandler.Get)
			r.Put("/{id}", cfg.ExpenseHandler.Update)
			r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			r.Post("/{id}/approve", cfg.ExpenseHandler.Approve)
			r.Post("/{id}/reject", cfg.ExpenseHandler.Reject)
			r.Post("/{id}/pay", cfg.ExpenseHandler.Pay)
			r.Post("/{id}/confirm-processing", cfg.ExpenseHandler.ConfirmProcessing)
			r.Post("/{id}/mark-as-unpaid", cfg.ExpenseHandler.MarkAsUnpaid)
		})

		// Payout methods
		r.Route("/payout-methods", func(r chi.Router) {
			r.Post("/", cfg.PayoutMethodHandler.Create)
			r.Get("/{id}", cfg.PayoutMethodHandler.Get)
		})

		// Ledger-wide operations
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/consistency", cfg.LedgerHandler.CheckConsistency)
			r.Get("/consistency/{groupID}", cfg.LedgerHandler.CheckGroup)
		})
	})

	return r
}
