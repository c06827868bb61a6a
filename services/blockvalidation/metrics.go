package blockvalidation

import (
	"sync"

	"github.com/bsv-blockchain/litenode/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusBlockValidationValidateBlock prometheus.Histogram
	prometheusBlockValidationValid         prometheus.Counter
	prometheusBlockValidationInvalid       *prometheus.CounterVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusBlockValidationValidateBlock = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "litenode",
			Subsystem: "blockvalidation",
			Name:      "validate_block",
			Help:      "Duration of block validation",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusBlockValidationValid = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "litenode",
			Subsystem: "blockvalidation",
			Name:      "valid",
			Help:      "Number of blocks that passed validation",
		},
	)

	prometheusBlockValidationInvalid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "litenode",
			Subsystem: "blockvalidation",
			Name:      "invalid",
			Help:      "Number of blocks that failed validation, by rule",
		},
		[]string{"rule"},
	)
}
