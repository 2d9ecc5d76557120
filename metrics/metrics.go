package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Breaker state gauge values.
const (
	breakerClosed   = 0
	breakerOpen     = 1
	breakerHalfOpen = 2
)

// Metrics holds all Prometheus metric descriptors for the retry engine.
type Metrics struct {
	attemptsTotal   *prometheus.CounterVec
	exhaustedTotal  prometheus.Counter
	rejectedTotal   prometheus.Counter
	cancelledTotal  prometheus.Counter
	backoffDuration prometheus.Histogram
	breakerState    prometheus.Gauge
}

// New creates a Metrics instance and registers all descriptors with reg.
// Use prometheus.DefaultRegisterer in production and prometheus.NewRegistry()
// in tests to avoid cross-test pollution.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retry_attempts_total",
				Help: "Total number of operation attempts by outcome.",
			},
			[]string{"outcome"},
		),
		exhaustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "retry_exhausted_total",
			Help: "Total number of calls that spent their whole attempt budget.",
		}),
		rejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "retry_breaker_rejected_total",
			Help: "Total number of calls rejected by the open circuit breaker.",
		}),
		cancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "retry_cancelled_total",
			Help: "Total number of calls aborted by cancellation during backoff.",
		}),
		backoffDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "retry_backoff_duration_seconds",
			Help:    "Jittered backoff delays inserted between attempts.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
		breakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "retry_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open).",
		}),
	}

	reg.MustRegister(
		m.attemptsTotal,
		m.exhaustedTotal,
		m.rejectedTotal,
		m.cancelledTotal,
		m.backoffDuration,
		m.breakerState,
	)

	return m
}

// RecordAttempt records one operation invocation.
// outcome should be "ok" or "error".
func (m *Metrics) RecordAttempt(outcome string) {
	if m == nil {
		return
	}

	m.attemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordBackoff records the jittered delay inserted before a retry.
func (m *Metrics) RecordBackoff(d time.Duration) {
	if m == nil {
		return
	}

	m.backoffDuration.Observe(d.Seconds())
}

// RecordExhausted records a call that failed on every allowed attempt.
func (m *Metrics) RecordExhausted() {
	if m == nil {
		return
	}

	m.exhaustedTotal.Inc()
}

// RecordRejected records a call rejected by the open breaker.
func (m *Metrics) RecordRejected() {
	if m == nil {
		return
	}

	m.rejectedTotal.Inc()
}

// RecordCancelled records a call aborted by cancellation during backoff.
func (m *Metrics) RecordCancelled() {
	if m == nil {
		return
	}

	m.cancelledTotal.Inc()
}

// SetBreakerState updates the breaker state gauge.
// state should be one of "closed", "open", "half-open".
func (m *Metrics) SetBreakerState(state string) {
	if m == nil {
		return
	}

	switch state {
	case "open":
		m.breakerState.Set(breakerOpen)
	case "half-open":
		m.breakerState.Set(breakerHalfOpen)
	default:
		m.breakerState.Set(breakerClosed)
	}
}
