package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for RequestsTotal.
const (
	ResultOK               = "ok"
	ResultBadRequest       = "bad_request"
	ResultDecodeError      = "decode_error"
	ResultOracleError      = "oracle_error"
	ResultExtractionFailed = "extraction_failed"
	ResultInternalError    = "internal_error"
)

var (
	once sync.Once

	// RequestsTotal counts analyze requests by outcome.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "food_analyzer",
		Name:      "requests_total",
		Help:      "Total number of food image analyze requests, labeled by result.",
	}, []string{"result"})

	// OracleDurationSeconds is the wall time of a single oracle call.
	OracleDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "food_analyzer",
		Name:      "oracle_duration_seconds",
		Help:      "Time spent waiting for the vision model, labeled by oracle name.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
	}, []string{"oracle"})

	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "food_analyzer",
		Name:      "requests_in_flight",
		Help:      "Current number of analyze requests being served.",
	})
)

// Register registers the analyzer metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			OracleDurationSeconds,
			InFlight,
		)
	})
}
