// Package metrics exposes ingest run counters on a private Prometheus registry
// and pushes them to a Pushgateway when the job finishes.
package metrics

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
)

// Item outcomes
const (
	OutcomeFetched  = "fetched"
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeErrored  = "errored"
)

// IngestMetrics holds the ingest job collectors. A nil *IngestMetrics is a no-op.
type IngestMetrics struct {
	registry         *prometheus.Registry
	items            *prometheus.CounterVec
	rejections       *prometheus.CounterVec
	newProducts      *prometheus.CounterVec
	pricesFailed     *prometheus.CounterVec
	runs             *prometheus.CounterVec
	runDuration      prometheus.Histogram
	providerDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry
func New(service string) *IngestMetrics {
	service = strings.TrimSpace(service)
	if service == "" {
		service = "catalog-ingest"
	}
	constLabels := prometheus.Labels{"service": service}

	m := &IngestMetrics{
		registry: prometheus.NewRegistry(),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "catalog_ingest_items_total",
			Help:        "Crawled items by provider and pipeline outcome.",
			ConstLabels: constLabels,
		}, []string{"provider", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "catalog_ingest_rejections_total",
			Help:        "Rejected items by provider and reason.",
			ConstLabels: constLabels,
		}, []string{"provider", "reason"}),
		newProducts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "catalog_ingest_new_products_total",
			Help:        "Products created by provider.",
			ConstLabels: constLabels,
		}, []string{"provider"}),
		pricesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "catalog_ingest_price_records_failed_total",
			Help:        "Price observations that could not be stored.",
			ConstLabels: constLabels,
		}, []string{"provider"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "catalog_ingest_runs_total",
			Help:        "Ingest runs by terminal status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "catalog_ingest_run_duration_seconds",
			Help:        "Wall time of an ingest run.",
			Buckets:     []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 1800, 3600, 7200},
			ConstLabels: constLabels,
		}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "catalog_ingest_provider_duration_seconds",
			Help:        "Wall time spent on one provider within a run.",
			Buckets:     []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 1800},
			ConstLabels: constLabels,
		}, []string{"provider"}),
	}

	m.registry.MustRegister(
		m.items,
		m.rejections,
		m.newProducts,
		m.pricesFailed,
		m.runs,
		m.runDuration,
		m.providerDuration,
	)

	return m
}

// Registry returns the private registry
func (m *IngestMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRejection counts one rejected item
func (m *IngestMetrics) ObserveRejection(provider string, reason domain.RejectReason) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(provider, string(reason)).Inc()
}

// ObserveProvider adds a provider's counters
func (m *IngestMetrics) ObserveProvider(summary domain.ProviderSummary) {
	if m == nil {
		return
	}
	m.items.WithLabelValues(summary.Provider, OutcomeFetched).Add(float64(summary.Fetched))
	m.items.WithLabelValues(summary.Provider, OutcomeAccepted).Add(float64(summary.Accepted))
	m.items.WithLabelValues(summary.Provider, OutcomeRejected).Add(float64(summary.Rejected))
	m.items.WithLabelValues(summary.Provider, OutcomeErrored).Add(float64(summary.Errored))
	m.newProducts.WithLabelValues(summary.Provider).Add(float64(summary.NewProducts))
	m.pricesFailed.WithLabelValues(summary.Provider).Add(float64(summary.PricesFailed))
	m.providerDuration.WithLabelValues(summary.Provider).Observe(summary.Duration.Seconds())
}

// ObserveRun records the terminal status and duration of a run
func (m *IngestMetrics) ObserveRun(summary *domain.RunSummary) {
	if m == nil || summary == nil {
		return
	}
	m.runs.WithLabelValues(string(summary.Status)).Inc()
	m.runDuration.Observe(summary.FinishedAt.Sub(summary.StartedAt).Seconds())
}

// Push sends the registry to a Pushgateway under job
func (m *IngestMetrics) Push(ctx context.Context, url, job string) error {
	if m == nil {
		return nil
	}
	if strings.TrimSpace(url) == "" {
		return errors.New("pushgateway url is required")
	}
	if strings.TrimSpace(job) == "" {
		return errors.New("pushgateway job is required")
	}

	return push.New(url, job).Gatherer(m.registry).PushContext(ctx)
}
