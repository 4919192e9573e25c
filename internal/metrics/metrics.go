package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates the prometheus metrics emitted by the feed core.
type Collector struct {
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	cacheBypass      prometheus.Counter
	composeLatency   *prometheus.HistogramVec
	counterFailures  prometheus.Counter
	trendingDuration prometheus.Histogram
}

// NewCollector registers the feed-core metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedcore_cache_hits_total",
			Help: "Response cache hits by key prefix",
		}, []string{"prefix"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedcore_cache_misses_total",
			Help: "Response cache misses by key prefix",
		}, []string{"prefix"}),
		cacheBypass: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedcore_cache_bypass_total",
			Help: "Requests that skipped the response cache because a viewer identity was present",
		}),
		composeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedcore_compose_latency_seconds",
			Help:    "Feed composition latency by mode",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		counterFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedcore_counter_store_failures_total",
			Help: "Engagement counter operations that failed and fell back",
		}),
		trendingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedcore_trending_recompute_seconds",
			Help:    "Duration of trending snapshot recomputation",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.cacheBypass,
		c.composeLatency,
		c.counterFailures,
		c.trendingDuration,
	)

	return c
}

func (c *Collector) RecordCacheHit(prefix string) {
	c.cacheHits.WithLabelValues(prefix).Inc()
}

func (c *Collector) RecordCacheMiss(prefix string) {
	c.cacheMisses.WithLabelValues(prefix).Inc()
}

func (c *Collector) RecordCacheBypass() {
	c.cacheBypass.Inc()
}

func (c *Collector) RecordComposeLatency(mode string, d time.Duration) {
	c.composeLatency.WithLabelValues(mode).Observe(d.Seconds())
}

func (c *Collector) RecordCounterFailure() {
	c.counterFailures.Inc()
}

func (c *Collector) RecordTrendingRecompute(d time.Duration) {
	c.trendingDuration.Observe(d.Seconds())
}
