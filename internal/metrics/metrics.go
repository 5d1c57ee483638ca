package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the Prometheus metrics for the token pipeline. Each
// service instance owns its own registry so tests never collide on the
// global default.
type Registry struct {
	reg *prometheus.Registry

	FetchAttempts   *prometheus.CounterVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	RefreshDuration prometheus.Histogram
	Refreshes       *prometheus.CounterVec
	RealTokens      prometheus.Gauge
}

// New creates a Registry with all pipeline metrics registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,

		FetchAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokendash_fetch_attempts_total",
				Help: "Upstream resolution attempts by strategy and result",
			},
			[]string{"strategy", "result"},
		),

		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tokendash_cache_hits_total",
				Help: "Refresh requests served from the result cache",
			},
		),

		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tokendash_cache_misses_total",
				Help: "Refresh requests that recomputed the batch",
			},
		),

		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tokendash_refresh_duration_seconds",
				Help:    "Duration of a full refresh batch in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),

		Refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokendash_refreshes_total",
				Help: "Completed refresh batches by API status",
			},
			[]string{"status"},
		),

		RealTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tokendash_real_data_tokens",
				Help: "Tokens with live upstream data in the last batch",
			},
		),
	}

	reg.MustRegister(
		r.FetchAttempts,
		r.CacheHits,
		r.CacheMisses,
		r.RefreshDuration,
		r.Refreshes,
		r.RealTokens,
	)

	return r
}

// Handler returns the /metrics HTTP handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
