package scraper

import (
	"time"

	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraper.
type Metrics struct {
	Registry         *prometheus.Registry
	RequestsTotal    *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
	RecipesExtracted *prometheus.CounterVec
	RetriesTotal     prometheus.Counter
	ErrorsTotal      *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_requests_total",
			Help: "Total page and image requests issued by the scraper.",
		},
		[]string{"phase"},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_fetch_duration_seconds",
			Help:    "Latency of recipe page fetches.",
			Buckets: prometheus.DefBuckets,
		},
	)
	extracted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_recipes_extracted_total",
			Help: "Recipes extracted, by the tier that produced them.",
		},
		[]string{"method"},
	)
	retries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_retries_total",
			Help: "Total number of retry attempts scheduled.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "Total number of scraper errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, fetchDuration, extracted, retries, errorsTotal)

	return &Metrics{
		Registry:         registry,
		RequestsTotal:    requests,
		FetchDuration:    fetchDuration,
		RecipesExtracted: extracted,
		RetriesTotal:     retries,
		ErrorsTotal:      errorsTotal,
	}
}

// IncRequest increments the requests total counter.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveDuration records a page fetch duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// IncRecipe counts a recipe produced by method.
func (m *Metrics) IncRecipe(method models.Method) {
	if m == nil {
		return
	}
	m.RecipesExtracted.WithLabelValues(string(method)).Inc()
}

// IncRetries increments the retries counter.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
