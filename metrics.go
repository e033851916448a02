package gridvalidate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomePass  = "pass"
	outcomeFail  = "fail"
	outcomeError = "error"
)

// Metrics holds the Prometheus collectors of a Service. A nil *Metrics records nothing.
type Metrics struct {
	validations *prometheus.CounterVec
	stale       prometheus.Counter
	latency     *prometheus.HistogramVec
	runs        prometheus.Counter
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridvalidate_validator_results_total",
				Help: "Validator completions by validator type and outcome",
			},
			[]string{"validator", "outcome"}, // pass, fail or error
		),
		stale: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gridvalidate_stale_completions_total",
				Help: "Validator completions discarded because a newer run started for the cell",
			},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridvalidate_async_validator_duration_seconds",
				Help:    "Time from invocation to completion of asynchronous validators",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"validator"},
		),
		runs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gridvalidate_runs_total",
				Help: "RunValidators calls that evaluated validators",
			},
		),
	}
}

func (m *Metrics) result(validatorType, outcome string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(validatorType, outcome).Inc()
}

func (m *Metrics) staleCompletion() {
	if m == nil {
		return
	}
	m.stale.Inc()
}

func (m *Metrics) asyncDuration(validatorType string, d time.Duration) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(validatorType).Observe(d.Seconds())
}

func (m *Metrics) run() {
	if m == nil {
		return
	}
	m.runs.Inc()
}
