package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "graphstat"

// Metrics implements PipelineHooks, CacheHooks and HTTPHooks with
// Prometheus collectors.
type Metrics struct {
	loads           *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	graphNodes      prometheus.Histogram
	analyses        *prometheus.CounterVec
	analyzeDuration *prometheus.HistogramVec
	lastDiameter    prometheus.Gauge
	cacheOps        *prometheus.CounterVec
	cacheBytes      prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inflight        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Edge lists loaded, by outcome",
		}, []string{"outcome"}),
		loadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time to read and build a graph",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		graphNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Node count of loaded graphs",
			Buckets:   []float64{10, 100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Diameter analyses, by method and outcome",
		}, []string{"method", "outcome"}),
		analyzeDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analyze_duration_seconds",
			Help:      "Time to compute graph statistics",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"method"}),
		lastDiameter: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_diameter",
			Help:      "Diameter of the most recently analyzed graph",
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes",
		}, []string{"key_type", "op"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served",
		}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnLoadStart(context.Context, string, string) {}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, nodes, _ int, d time.Duration, err error) {
	m.loads.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return
	}
	m.loadDuration.Observe(d.Seconds())
	m.graphNodes.Observe(float64(nodes))
}

func (m *Metrics) OnAnalyzeStart(context.Context, string, int) {}

func (m *Metrics) OnAnalyzeComplete(_ context.Context, method string, diameter int, d time.Duration, err error) {
	m.analyses.WithLabelValues(method, outcome(err)).Inc()
	if err != nil {
		return
	}
	m.analyzeDuration.WithLabelValues(method).Observe(d.Seconds())
	m.lastDiameter.Set(float64(diameter))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.inflight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inflight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
