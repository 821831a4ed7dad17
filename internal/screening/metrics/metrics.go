package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the screening pipeline.
type Metrics struct {
	ChecksTotal       *prometheus.CounterVec
	ScreeningDuration prometheus.Histogram
	ReportCacheHits   prometheus.Counter
	ReportCacheMisses prometheus.Counter
	SyntheticReports  prometheus.Counter
}

// New creates and registers all screening metrics.
func New() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rently_screening_checks_total",
			Help: "Provider check invocations by check name and outcome",
		}, []string{"check", "outcome"}),
		ScreeningDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rently_screening_duration_seconds",
			Help:    "End-to-end duration of producing one screening report",
			Buckets: prometheus.DefBuckets,
		}),
		ReportCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rently_screening_report_cache_hits_total",
			Help: "Screening reports reused from the report cache",
		}),
		ReportCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rently_screening_report_cache_misses_total",
			Help: "Report cache lookups that required a fresh screening run",
		}),
		SyntheticReports: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rently_screening_synthetic_reports_total",
			Help: "Reports generated synthetically because the provider was unavailable",
		}),
	}
}

// RecordCheck records one provider check outcome ("ok" or "defaulted").
func (m *Metrics) RecordCheck(check, outcome string) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(check, outcome).Inc()
}

// RecordCacheHit increments the report cache hit counter.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.ReportCacheHits.Inc()
}

// RecordCacheMiss increments the report cache miss counter.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.ReportCacheMisses.Inc()
}

// RecordSynthetic increments the synthetic fallback counter.
func (m *Metrics) RecordSynthetic() {
	if m == nil {
		return
	}
	m.SyntheticReports.Inc()
}

// ObserveDuration records the end-to-end screening duration in seconds.
func (m *Metrics) ObserveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.ScreeningDuration.Observe(seconds)
}
