package observability

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/cleanarch-backend/internal/platform/envutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

const namespace = "cleanarch"

// Metrics owns a private Prometheus registry. All methods are safe on a nil
// receiver so callers never need to check whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	uowLatency   *prometheus.HistogramVec
	uowConflicts *prometheus.CounterVec

	mediatorLatency *prometheus.HistogramVec

	realtimeClients prometheus.Gauge
	realtimeDropped prometheus.Counter
	domainEvents    *prometheus.CounterVec

	sloCompliance *prometheus.GaugeVec
	sloBudget     *prometheus.GaugeVec
	sloBurn       *prometheus.GaugeVec

	// raw totals read by the SLO evaluator
	apiTotal atomic.Uint64
	apiError atomic.Uint64
	apiGood  atomic.Uint64
	uowTotal atomic.Uint64
	uowError atomic.Uint64
}

// Requests faster than this count as good for the latency SLO.
var latencyGoodThreshold = envutil.Duration("SLO_API_LATENCY_THRESHOLD", 500*time.Millisecond)

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", true)
}

// Init builds the process-wide metrics once. It returns nil when disabled.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("prometheus metrics initialized")
		}
	})
	return instance
}

func Current() *Metrics {
	return instance
}

func NewMetrics() *Metrics {
	latencyBuckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   latencyBuckets,
		}, []string{"method", "route", "status"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		uowLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_of_work_duration_seconds",
			Help:      "Unit of work transaction latency by operation and outcome.",
			Buckets:   latencyBuckets,
		}, []string{"op", "status"}),
		uowConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_of_work_conflicts_total",
			Help:      "Unit of work operations that failed with a conflict.",
		}, []string{"op"}),
		mediatorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mediator_request_duration_seconds",
			Help:      "Command and query handling latency by request type and outcome.",
			Buckets:   latencyBuckets,
		}, []string{"request", "status"}),
		realtimeClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_clients",
			Help:      "Connected realtime clients.",
		}),
		realtimeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_dropped_messages_total",
			Help:      "Realtime messages dropped because a client buffer was full.",
		}),
		domainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events dispatched after commit, by event name.",
		}, []string{"event"}),
		sloCompliance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_compliance_ratio",
			Help:      "Rolling SLI per objective and window.",
		}, []string{"slo", "window"}),
		sloBudget: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_error_budget_remaining_ratio",
			Help:      "Remaining error budget per objective and window.",
		}, []string{"slo", "window"}),
		sloBurn: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slo_burn_rate",
			Help:      "Error budget burn rate per objective and window.",
		}, []string{"slo", "window"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.httpInflight,
		m.uowLatency,
		m.uowConflicts,
		m.mediatorLatency,
		m.realtimeClients,
		m.realtimeDropped,
		m.domainEvents,
		m.sloCompliance,
		m.sloBudget,
		m.sloBurn,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.httpLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())

	m.apiTotal.Add(1)
	if status >= http.StatusInternalServerError {
		m.apiError.Add(1)
	} else if dur <= latencyGoodThreshold {
		m.apiGood.Add(1)
	}
}

func (m *Metrics) IncInflight() {
	if m == nil {
		return
	}
	m.httpInflight.Inc()
}

func (m *Metrics) DecInflight() {
	if m == nil {
		return
	}
	m.httpInflight.Dec()
}

func (m *Metrics) ObserveUnitOfWork(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.uowLatency.WithLabelValues(label(op), label(status)).Observe(dur.Seconds())
	m.uowTotal.Add(1)
	// domain rejections (validation, conflict, ...) are not failures of the store
	if status == "failure" || status == "internal" {
		m.uowError.Add(1)
	}
}

func (m *Metrics) IncUnitOfWorkConflict(op string) {
	if m == nil {
		return
	}
	m.uowConflicts.WithLabelValues(label(op)).Inc()
}

func (m *Metrics) ObserveMediatorRequest(request, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.mediatorLatency.WithLabelValues(label(request), label(status)).Observe(dur.Seconds())
}

func (m *Metrics) SetRealtimeClients(n int) {
	if m == nil {
		return
	}
	m.realtimeClients.Set(float64(n))
}

func (m *Metrics) IncRealtimeDropped() {
	if m == nil {
		return
	}
	m.realtimeDropped.Inc()
}

func (m *Metrics) IncDomainEvent(name string) {
	if m == nil {
		return
	}
	m.domainEvents.WithLabelValues(label(name)).Inc()
}

func (m *Metrics) snapshot() counterSnapshot {
	return counterSnapshot{
		apiTotal: float64(m.apiTotal.Load()),
		apiError: float64(m.apiError.Load()),
		apiGood:  float64(m.apiGood.Load()),
		uowTotal: float64(m.uowTotal.Load()),
		uowError: float64(m.uowError.Load()),
	}
}

func (m *Metrics) setSLO(name, window string, sli, budget, burn float64) {
	m.sloCompliance.WithLabelValues(name, window).Set(sli)
	m.sloBudget.WithLabelValues(name, window).Set(budget)
	m.sloBurn.WithLabelValues(name, window).Set(burn)
}

func label(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	return v
}
