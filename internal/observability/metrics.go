package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the report pipeline.
type Metrics struct {
	analyzeRequests *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	vendorDuration  *prometheus.HistogramVec
	clientRetries   prometheus.Counter
}

// MustNewMetrics registers the collectors with reg. Registering twice against
// the same registry reuses the existing collectors.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		analyzeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soulmatch",
			Name:      "analyze_requests_total",
			Help:      "Report requests handled by the analyze endpoint, by delivery path and outcome.",
		}, []string{"path", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soulmatch",
			Name:      "cache_lookups_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		vendorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "soulmatch",
			Name:      "vendor_duration_seconds",
			Help:      "Time spent generating a report with the model vendor.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"backend", "status"}),
		clientRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "soulmatch",
			Name:      "client_retries_total",
			Help:      "Retries issued by the analysis client.",
		}),
	}

	m.analyzeRequests = register(reg, m.analyzeRequests)
	m.cacheLookups = register(reg, m.cacheLookups)
	m.vendorDuration = register(reg, m.vendorDuration)
	m.clientRetries = register(reg, m.clientRetries)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) C {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return collector
}

// AnalyzeRequest counts one handled report request.
func (m *Metrics) AnalyzeRequest(path, outcome string) {
	if m == nil {
		return
	}
	m.analyzeRequests.WithLabelValues(path, outcome).Inc()
}

// CacheLookup counts a cache lookup with result hit, miss, error or disabled.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveVendor records one generation call.
func (m *Metrics) ObserveVendor(backend, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.vendorDuration.WithLabelValues(backend, status).Observe(d.Seconds())
}

// ClientRetry counts one retry of the analysis client.
func (m *Metrics) ClientRetry() {
	if m == nil {
		return
	}
	m.clientRetries.Inc()
}
