package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments the usecases and the FX resolver
// record into. HTTP request metrics live in the http middleware package.
type Metrics struct {
	// Ledger metrics
	EntriesCreated  prometheus.Counter
	EntriesVoided   prometheus.Counter
	RefundsCreated  prometheus.Counter
	FeesOnTopSplits prometheus.Counter
	EntryDuration   prometheus.Histogram
	EntryAmount     prometheus.Histogram

	// Expense metrics
	ExpensesCreated  prometheus.Counter
	ExpensesPaid     prometheus.Counter
	ExpensesRejected prometheus.Counter
	ExpenseStatus    *prometheus.CounterVec
	PayoutDuration   *prometheus.HistogramVec
	PayoutErrors     *prometheus.CounterVec

	// FX metrics
	FxLookups   *prometheus.CounterVec
	FxCacheHits prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_ledger_entries_created_total",
			Help: "Total number of double-entry groups created",
		}),
		EntriesVoided: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_ledger_entries_voided_total",
			Help: "Total number of entry groups voided",
		}),
		RefundsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_ledger_refunds_created_total",
			Help: "Total number of refunds created",
		}),
		FeesOnTopSplits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_ledger_fees_on_top_splits_total",
			Help: "Total number of contributions split into donation and main entries",
		}),
		EntryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundhost_ledger_entry_duration_seconds",
			Help:    "Duration of entry creation operations",
			Buckets: prometheus.DefBuckets,
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundhost_ledger_entry_amount",
			Help:    "Entry amounts in minor units",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),

		// Expense metrics
		ExpensesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_expenses_created_total",
			Help: "Total number of expenses submitted",
		}),
		ExpensesPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_expenses_paid_total",
			Help: "Total number of expenses paid",
		}),
		ExpensesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_expenses_rejected_total",
			Help: "Total number of expenses rejected",
		}),
		ExpenseStatus: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundhost_expense_status_transitions_total",
				Help: "Total expense status transitions",
			},
			[]string{"from", "to"},
		),
		PayoutDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundhost_payout_duration_seconds",
				Help:    "Duration of external payout calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		PayoutErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundhost_payout_errors_total",
				Help: "Total payout provider errors",
			},
			[]string{"provider"},
		),

		// FX metrics
		FxLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundhost_fx_lookups_total",
				Help: "Total FX rate lookups by currency pair",
			},
			[]string{"base", "quote"},
		),
		FxCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundhost_fx_cache_hits_total",
			Help: "Total FX rate lookups served from cache",
		}),
	}
}
