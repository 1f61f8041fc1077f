package metrics

import (
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/scoutlabs/nichepulse/internal/cache"
)

// Collector tracks service counters both as Prometheus series and as a
// JSON-friendly snapshot for the stats endpoint.
type Collector struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	analyses prometheus.Counter

	started       time.Time
	totalRequests atomic.Int64
	totalAnalyses atomic.Int64
}

// NewCollector builds a collector with its own registry so tests never
// collide on the global one.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nichepulse",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nichepulse",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by endpoint.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"endpoint"}),
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nichepulse",
			Name:      "analyses_total",
			Help:      "Completed niche analyses.",
		}),
	}
	c.registry.MustRegister(
		c.requests,
		c.latency,
		c.analyses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry exposes the collector's registry for the scrape handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	c.totalRequests.Add(1)
	c.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// AnalysisCompleted records one finished niche analysis.
func (c *Collector) AnalysisCompleted() {
	c.totalAnalyses.Add(1)
	c.analyses.Inc()
}

// MemStats is the runtime slice of the stats payload.
type MemStats struct {
	AllocMB    float64 `json:"alloc_mb"`
	SysMB      float64 `json:"sys_mb"`
	NumGC      uint32  `json:"num_gc"`
	Goroutines int     `json:"goroutines"`
}

// APICalls breaks outbound calls down by target.
type APICalls struct {
	Scraper int64 `json:"scraper"`
	Trends  int64 `json:"trends"`
	Total   int64 `json:"total"`
}

// Stats is the JSON snapshot served by the stats endpoint.
type Stats struct {
	UptimeSeconds     float64     `json:"uptime_seconds"`
	TotalRequests     int64       `json:"total_requests"`
	TotalAnalyses     int64       `json:"total_analyses"`
	RequestsPerMinute float64     `json:"requests_per_minute"`
	APICalls          APICalls    `json:"api_calls"`
	Cache             cache.Stats `json:"cache"`
	Memory            MemStats    `json:"memory"`
}

// Snapshot assembles the current stats payload.
func (c *Collector) Snapshot(cacheStats cache.Stats, scraperCalls, trendCalls int64) Stats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	uptime := time.Since(c.started).Seconds()
	requests := c.totalRequests.Load()
	perMinute := 0.0
	if uptime > 0 {
		perMinute = float64(requests) / uptime * 60
	}

	return Stats{
		UptimeSeconds:     uptime,
		TotalRequests:     requests,
		TotalAnalyses:     c.totalAnalyses.Load(),
		RequestsPerMinute: perMinute,
		APICalls: APICalls{
			Scraper: scraperCalls,
			Trends:  trendCalls,
			Total:   scraperCalls + trendCalls,
		},
		Cache: cacheStats,
		Memory: MemStats{
			AllocMB:    float64(ms.Alloc) / 1024 / 1024,
			SysMB:      float64(ms.Sys) / 1024 / 1024,
			NumGC:      ms.NumGC,
			Goroutines: runtime.NumGoroutine(),
		},
	}
}
