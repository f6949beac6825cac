package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brokenalarms/astro-masonry/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use so that an unused
// collector never touches the registry.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	resolves           *prometheus.CounterVec
	breakpointFallback prometheus.Counter
	redistributions    *prometheus.CounterVec
	redistributeTime   *prometheus.HistogramVec
	itemsDistributed   prometheus.Gauge
	columns            prometheus.Gauge
	signals            *prometheus.CounterVec
	publishes          *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "masonry" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "masonry"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.resolves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "breakpoint",
			Name:      "resolves_total",
			Help:      "Total breakpoint resolutions by outcome (changed, unchanged).",
		}, []string{"result"})

		p.breakpointFallback = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "breakpoint",
			Name:      "fallback_total",
			Help:      "Malformed breakpoint tables replaced by the fallback table.",
		})

		p.redistributions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "distributor",
			Name:      "redistributions_total",
			Help:      "Total full redistributions by strategy.",
		}, []string{"strategy"})

		p.redistributeTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "distributor",
			Name:      "redistribution_seconds",
			Help:      "Time spent in a full redistribution by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us .. ~2.6s
		}, []string{"strategy"})

		p.itemsDistributed = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "distributor",
			Name:      "items",
			Help:      "Number of items in the most recent redistribution.",
		})

		p.columns = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "layout",
			Name:      "columns",
			Help:      "Current column count.",
		})

		p.signals = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "controller",
			Name:      "width_signals_total",
			Help:      "Width signals received by the controller (coalesced=true|false).",
		}, []string{"coalesced"})

		p.publishes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "controller",
			Name:      "publishes_total",
			Help:      "Layout publish attempts by result (success, failure).",
		}, []string{"result"})

		p.reg.MustRegister(p.resolves)
		p.reg.MustRegister(p.breakpointFallback)
		p.reg.MustRegister(p.redistributions)
		p.reg.MustRegister(p.redistributeTime)
		p.reg.MustRegister(p.itemsDistributed)
		p.reg.MustRegister(p.columns)
		p.reg.MustRegister(p.signals)
		p.reg.MustRegister(p.publishes)
	})
}

// RecordResolve counts a breakpoint resolution.
func (p *PrometheusCollector) RecordResolve(_ /* columns */ int, changed bool) {
	p.ensureRegistered()
	if changed {
		p.resolves.WithLabelValues("changed").Inc()
	} else {
		p.resolves.WithLabelValues("unchanged").Inc()
	}
}

// RecordBreakpointFallback counts a fallback to the default table.
func (p *PrometheusCollector) RecordBreakpointFallback() {
	p.ensureRegistered()
	p.breakpointFallback.Inc()
}

// RecordRedistribution counts a redistribution and observes its duration.
func (p *PrometheusCollector) RecordRedistribution(strategy string, items int, duration float64) {
	p.ensureRegistered()
	p.redistributions.WithLabelValues(strategy).Inc()
	p.redistributeTime.WithLabelValues(strategy).Observe(duration)
	p.itemsDistributed.Set(float64(items))
}

// RecordColumnCount sets the column count gauge.
func (p *PrometheusCollector) RecordColumnCount(count int) {
	p.ensureRegistered()
	p.columns.Set(float64(count))
}

// RecordSignal counts a width signal.
func (p *PrometheusCollector) RecordSignal(coalesced bool) {
	p.ensureRegistered()
	p.signals.WithLabelValues(strconv.FormatBool(coalesced)).Inc()
}

// RecordPublish counts a publish attempt.
func (p *PrometheusCollector) RecordPublish(success bool) {
	p.ensureRegistered()
	if success {
		p.publishes.WithLabelValues("success").Inc()
	} else {
		p.publishes.WithLabelValues("failure").Inc()
	}
}
