package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics for the application.
type Metrics struct {
	ApplicationsSubmitted prometheus.Counter
	ListingsCreated       prometheus.Counter
	RequestDuration       *prometheus.HistogramVec
}

// New creates and registers all process-level Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ApplicationsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rently_applications_submitted_total",
			Help: "Total number of rental applications submitted",
		}),
		ListingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rently_listings_created_total",
			Help: "Total number of listings created",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rently_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// IncrementApplicationsSubmitted increments the applications counter by 1.
func (m *Metrics) IncrementApplicationsSubmitted() {
	m.ApplicationsSubmitted.Inc()
}

// IncrementListingsCreated increments the listings counter by 1.
func (m *Metrics) IncrementListingsCreated() {
	m.ListingsCreated.Inc()
}
