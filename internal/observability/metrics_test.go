package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNewMetrics(reg)

	m.AnalyzeRequest("stream", "ok")
	m.AnalyzeRequest("stream", "ok")
	m.CacheLookup("hit")
	m.ObserveVendor("gemini", "ok", time.Second)
	m.ClientRetry()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyzeRequests.WithLabelValues("stream", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clientRetries))
	assert.Equal(t, 1, testutil.CollectAndCount(m.vendorDuration))
}

func TestMustNewMetricsTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNewMetrics(reg)
	second := MustNewMetrics(reg)

	first.ClientRetry()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.clientRetries))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AnalyzeRequest("json", "ok")
		m.CacheLookup("miss")
		m.ObserveVendor("openai", "error", time.Millisecond)
		m.ClientRetry()
	})
}
