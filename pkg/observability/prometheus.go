package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements every hook interface with Prometheus collectors
// registered on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	layoutDuration *prometheus.HistogramVec
	layoutItems    *prometheus.HistogramVec
	renderDuration *prometheus.HistogramVec
	stageErrors    *prometheus.CounterVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus creates the collectors, including the Go runtime and
// process collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "elecciones",
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing chart geometry.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"chart"}),
		layoutItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "elecciones",
			Name:      "layout_items",
			Help:      "Seats, bars, slices or provinces per layout.",
			Buckets:   []float64{5, 10, 25, 50, 75, 100, 250, 500},
		}, []string{"chart"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "elecciones",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering chart artifacts.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"chart", "formats"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elecciones",
			Name:      "pipeline_errors_total",
			Help:      "Failed pipeline stages.",
		}, []string{"stage", "chart"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elecciones",
			Name:      "cache_hits_total",
			Help:      "Cache lookups that found an entry.",
		}, []string{"key_type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elecciones",
			Name:      "cache_misses_total",
			Help:      "Cache lookups that found nothing.",
		}, []string{"key_type"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elecciones",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "elecciones",
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elecciones",
			Name:      "http_requests_total",
			Help:      "Requests served, by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "elecciones",
			Name:      "http_request_duration_seconds",
			Help:      "Request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.layoutDuration, p.layoutItems, p.renderDuration, p.stageErrors,
		p.cacheHits, p.cacheMisses, p.cacheBytes,
		p.httpInFlight, p.httpRequests, p.httpDuration,
	)
	return p
}

// Registry exposes the underlying registry, mainly for tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Prometheus) OnLayoutStart(_ context.Context, chart string, items int) {
	p.layoutItems.WithLabelValues(chart).Observe(float64(items))
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, chart string, d time.Duration, err error) {
	p.layoutDuration.WithLabelValues(chart).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues("layout", chart).Inc()
	}
}

func (p *Prometheus) OnRenderStart(context.Context, string, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, chart string, formats []string, d time.Duration, err error) {
	p.renderDuration.WithLabelValues(chart, strings.Join(formats, ",")).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues("render", chart).Inc()
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheHits.WithLabelValues(keyType).Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheMisses.WithLabelValues(keyType).Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.httpInFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpInFlight.Dec()
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
