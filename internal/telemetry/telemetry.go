// Package telemetry exports Prometheus metrics for the post-resolver service.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "post_resolver"

// Fetch result labels.
const (
	FetchResultOK       = "ok"
	FetchResultNotFound = "not_found"
	FetchResultError    = "error"
)

// Metrics holds the service's Prometheus metrics.
type Metrics struct {
	OutcomesTotal *prometheus.CounterVec
	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram
}

// Provider owns a registry so several providers can coexist in one process.
type Provider struct {
	Metrics  *Metrics
	registry *prometheus.Registry
}

// NewProvider creates a registry with Go and process collectors plus the
// service metrics.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Provider{
		Metrics:  initMetrics(promauto.With(reg)),
		registry: reg,
	}
}

func initMetrics(factory promauto.Factory) *Metrics {
	return &Metrics{
		OutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Resolved requests by outcome (redirect, props, not_found)",
		}, []string{"outcome"}),
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cms_fetch_total",
			Help:      "CMS post fetches by result (ok, not_found, error)",
		}, []string{"result"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cms_fetch_duration_seconds",
			Help:      "Time spent waiting on the CMS for one post",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
	}
}

// Registry exposes the underlying registry.
func (p *Provider) Registry() *prometheus.Registry {
	return p.registry
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// RecordOutcome counts one resolved request.
func (p *Provider) RecordOutcome(outcome domain.Outcome) {
	p.Metrics.OutcomesTotal.WithLabelValues(outcome.String()).Inc()
}

// RecordFetch records the result and latency of one CMS fetch.
func (p *Provider) RecordFetch(err error, duration time.Duration) {
	p.Metrics.FetchTotal.WithLabelValues(fetchResult(err)).Inc()
	p.Metrics.FetchDuration.Observe(duration.Seconds())
}

func fetchResult(err error) string {
	switch {
	case err == nil:
		return FetchResultOK
	case errors.Is(err, domain.ErrContentNotFound):
		return FetchResultNotFound
	default:
		return FetchResultError
	}
}

// Fetcher is the CMS lookup being instrumented.
type Fetcher interface {
	FetchPost(ctx context.Context, path string) (*domain.ContentRecord, error)
}

type instrumentedFetcher struct {
	next     Fetcher
	provider *Provider
}

// InstrumentFetcher wraps next so every fetch is counted and timed.
func (p *Provider) InstrumentFetcher(next Fetcher) Fetcher {
	return &instrumentedFetcher{next: next, provider: p}
}

func (f *instrumentedFetcher) FetchPost(ctx context.Context, path string) (*domain.ContentRecord, error) {
	start := time.Now()
	record, err := f.next.FetchPost(ctx, path)
	f.provider.RecordFetch(err, time.Since(start))
	return record, err
}
