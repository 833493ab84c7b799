package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	scansTotal       *prometheus.CounterVec
	scanDuration     prometheus.Histogram
	scanMatched      prometheus.Gauge
	resolveRequests  *prometheus.CounterVec
	matchesTotal     *prometheus.CounterVec
	catalogProducts  prometheus.Gauge
	apiErrorsTotal   *prometheus.CounterVec
	requestsInFlight prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benefit_scans_total",
				Help: "Total number of benefit scan runs",
			},
			[]string{"status"},
		),
		scanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "benefit_scan_duration_milliseconds",
				Help:    "Benefit scan duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		scanMatched: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "benefit_scan_matched_last",
				Help: "Number of transactions matched by the most recent scan",
			},
		),
		resolveRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "product_resolve_requests_total",
				Help: "Total number of product resolver invocations",
			},
			[]string{"status"},
		),
		matchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_matches_total",
				Help: "Total number of transaction matches written",
			},
			[]string{"over_cap"},
		),
		catalogProducts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_active_products",
				Help: "Number of active catalog products",
			},
		),
		apiErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API error responses",
			},
			[]string{"code"},
		),
		requestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "scan.completed":
		if status == "" {
			status = "success"
		}
		m.scansTotal.WithLabelValues(status).Inc()
	case "resolver.resolved":
		if status == "" {
			status = "success"
		}
		m.resolveRequests.WithLabelValues(status).Inc()
	case "match.written":
		m.matchesTotal.WithLabelValues(tags["over_cap"]).Inc()
	case "api.error":
		if code := tags["code"]; code != "" {
			m.apiErrorsTotal.WithLabelValues(code).Inc()
		}
	case "http.request.start":
		m.requestsInFlight.Inc()
	case "http.request.done":
		m.requestsInFlight.Dec()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "scan.duration":
		m.scanDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "scan.matched":
		m.scanMatched.Set(value)
	case "catalog.active_products":
		m.catalogProducts.Set(value)
	}
}
