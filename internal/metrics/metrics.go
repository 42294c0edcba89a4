package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/hassecalc/internal/algebra"
	apperrors "github.com/agbru/hassecalc/internal/errors"
	"github.com/agbru/hassecalc/internal/orchestration"
)

const namespace = "hassecalc"

// Metrics holds the evaluation instruments.
type Metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	batches     prometheus.Counter
	active      prometheus.Gauge
	engine      *prometheus.GaugeVec
}

var _ orchestration.Observer = (*Metrics)(nil)

// New creates a Metrics with a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Evaluated expressions by operation and result kind.",
		}, []string{"op", "kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluation_errors_total",
			Help:      "Expressions rejected before evaluation, by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating one expression.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Completed batch runs.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_batches",
			Help:      "Batch runs in progress.",
		}),
		engine: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_info",
			Help:      "Configuration of the active algebra (value is always 1).",
		}, []string{"size", "rule", "cycle_length", "bounded"}),
	}
	m.registry.MustRegister(
		m.evaluations, m.failures, m.duration, m.batches, m.active, m.engine,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the instruments are registered with.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SetEngine publishes the configuration of a as the only engine_info series.
func (m *Metrics) SetEngine(a *algebra.Algebra) {
	m.engine.Reset()
	m.engine.WithLabelValues(
		strconv.Itoa(a.Size()),
		a.RuleText(),
		strconv.Itoa(a.CycleLength()),
		strconv.FormatBool(a.IsBounded()),
	).Set(1)
}

// RecordEvaluation counts one evaluation of op whose result has kind.
func (m *Metrics) RecordEvaluation(op algebra.Op, kind algebra.Kind, d time.Duration) {
	m.evaluations.WithLabelValues(op.Name(), kind.String()).Inc()
	m.duration.WithLabelValues(op.Name()).Observe(d.Seconds())
}

// RecordFailure counts an expression rejected with err.
func (m *Metrics) RecordFailure(err error) {
	m.failures.WithLabelValues(failureReason(err)).Inc()
}

// Observe implements orchestration.Observer.
func (m *Metrics) Observe(r orchestration.ExpressionResult) {
	if r.Err != nil {
		m.RecordFailure(r.Err)
		return
	}
	m.RecordEvaluation(r.Result.Op, r.Result.Value.Kind(), r.Duration)
}

// BatchStarted marks a batch as running. The returned function marks it done.
func (m *Metrics) BatchStarted() func() {
	m.active.Inc()
	return func() {
		m.active.Dec()
		m.batches.Inc()
	}
}

func failureReason(err error) string {
	switch {
	case apperrors.IsContextError(err):
		return "canceled"
	case errors.Is(err, algebra.ErrInvalidDigit):
		return "invalid_digit"
	case errors.Is(err, algebra.ErrUnknownOp):
		return "unknown_op"
	case errors.Is(err, algebra.ErrInvalidExpression):
		return "invalid_expression"
	default:
		return "other"
	}
}
