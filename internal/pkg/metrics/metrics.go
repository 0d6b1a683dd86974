package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "crewpay_"

var (
	// LedgerTransactions counts posted ledger transactions by kind.
	LedgerTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "ledger_transactions_total",
			Help: "Total ledger transactions posted, by kind",
		},
		[]string{"kind"},
	)

	// LedgerRejections counts ledger postings refused before mutation.
	LedgerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "ledger_rejections_total",
			Help: "Total ledger postings rejected, by reason",
		},
		[]string{"reason"},
	)

	// AttendanceUpserts counts attendance writes by status.
	AttendanceUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "attendance_upserts_total",
			Help: "Total attendance upserts, by status",
		},
		[]string{"status"},
	)

	// SettlementFinalizations counts finalize batches by outcome.
	SettlementFinalizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "settlement_finalizations_total",
			Help: "Total settlement finalize batches, by type and outcome",
		},
		[]string{"type", "outcome"},
	)
)
