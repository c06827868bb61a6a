package validator

import (
	"sync"

	"github.com/bsv-blockchain/litenode/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// prometheusTransactionValidate measures a whole ValidateTransaction call
	prometheusTransactionValidate prometheus.Histogram

	// prometheusTransactionValidateScripts measures the parallel script stage
	prometheusTransactionValidateScripts prometheus.Histogram

	prometheusInvalidTransactions *prometheus.CounterVec
	prometheusInvalidScripts      prometheus.Counter
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusTransactionValidate = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "litenode",
			Subsystem: "validator",
			Name:      "transaction_validate",
			Help:      "Duration of transaction validation",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusTransactionValidateScripts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "litenode",
			Subsystem: "validator",
			Name:      "transaction_validate_scripts",
			Help:      "Duration of input script verification for a transaction",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusInvalidTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "litenode",
			Subsystem: "validator",
			Name:      "invalid_transactions",
			Help:      "Number of transactions that failed validation, by reason",
		},
		[]string{"reason"},
	)

	prometheusInvalidScripts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "litenode",
			Subsystem: "validator",
			Name:      "invalid_scripts",
			Help:      "Number of transaction inputs whose scripts failed",
		},
	)
}
