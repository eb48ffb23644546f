package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
	ToolErrors   *prometheus.CounterVec

	// Index metrics
	IndexEntries  prometheus.Gauge
	ScansStarted  prometheus.Counter
	ScansFinished *prometheus.CounterVec
	ScanWarnings  *prometheus.CounterVec
	ScansActive   prometheus.Gauge

	// Listing cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Search metrics
	SearchesTotal  prometheus.Counter
	SearchDuration prometheus.Histogram
	SearchResults  prometheus.Histogram

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalSearches int64
	IndexEntries  int64
	ActiveScans   int64
	TotalDuration float64 // sum of all request durations
	RequestCount  int64   // count for averaging
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lens_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lens_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lens_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Tool metrics
		ToolCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lens_tool_calls_total",
				Help: "Total number of provider tool calls",
			},
			[]string{"service", "tool", "status"},
		),
		ToolDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lens_tool_duration_seconds",
				Help:    "Provider tool call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"service", "tool"},
		),
		ToolErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lens_tool_errors_total",
				Help: "Total number of provider tool errors",
			},
			[]string{"service", "tool", "error_type"},
		),

		// Index metrics
		IndexEntries: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lens_index_entries",
				Help: "Number of entries in the current index snapshot",
			},
		),
		ScansStarted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lens_scans_started_total",
				Help: "Total number of index scans started",
			},
		),
		ScansFinished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lens_scans_finished_total",
				Help: "Total number of index scans finished, by terminal state",
			},
			[]string{"state"},
		),
		ScanWarnings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lens_scan_warnings_total",
				Help: "Total number of scan warnings, by kind",
			},
			[]string{"kind"},
		),
		ScansActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lens_scans_active",
				Help: "Number of currently running scans",
			},
		),

		// Listing cache metrics
		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lens_listing_cache_hits_total",
				Help: "Total number of listing cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lens_listing_cache_misses_total",
				Help: "Total number of listing cache misses",
			},
		),

		// Search metrics
		SearchesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lens_searches_total",
				Help: "Total number of search queries",
			},
		),
		SearchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lens_search_duration_seconds",
				Help:    "Search query duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
		SearchResults: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lens_search_results",
				Help:    "Number of entries returned per search",
				Buckets: []float64{0, 1, 10, 50, 100, 500, 1000, 10000},
			},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lens_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lens_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lens_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordToolCall records a provider tool call
func (m *Metrics) RecordToolCall(service, tool, status string, duration time.Duration) {
	m.ToolCalls.WithLabelValues(service, tool, status).Inc()
	m.ToolDuration.WithLabelValues(service, tool).Observe(duration.Seconds())
}

// RecordToolError records a provider tool error
func (m *Metrics) RecordToolError(service, tool, errorType string) {
	m.ToolErrors.WithLabelValues(service, tool, errorType).Inc()
}

// RecordSearch records a search query
func (m *Metrics) RecordSearch(duration time.Duration, results int) {
	m.SearchesTotal.Inc()
	m.SearchDuration.Observe(duration.Seconds())
	m.SearchResults.Observe(float64(results))

	m.mu.Lock()
	m.snapshot.TotalSearches++
	m.mu.Unlock()
}

// RecordScanStarted records a scan start
func (m *Metrics) RecordScanStarted() {
	m.ScansStarted.Inc()
	m.ScansActive.Inc()
	m.mu.Lock()
	m.snapshot.ActiveScans++
	m.mu.Unlock()
}

// RecordScanFinished records a scan reaching a terminal state
func (m *Metrics) RecordScanFinished(state string) {
	m.ScansFinished.WithLabelValues(state).Inc()
	m.ScansActive.Dec()
	m.mu.Lock()
	m.snapshot.ActiveScans--
	m.mu.Unlock()
}

// RecordScanWarning records a scan warning
func (m *Metrics) RecordScanWarning(kind string) {
	m.ScanWarnings.WithLabelValues(kind).Inc()
}

// SetIndexEntries sets the current index size
func (m *Metrics) SetIndexEntries(count int) {
	m.IndexEntries.Set(float64(count))
	m.mu.Lock()
	m.snapshot.IndexEntries = int64(count)
	m.mu.Unlock()
}

// RecordCacheHit records a listing cache hit
func (m *Metrics) RecordCacheHit() {
	m.CacheHits.Inc()
}

// RecordCacheMiss records a listing cache miss
func (m *Metrics) RecordCacheMiss() {
	m.CacheMisses.Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// Snapshot returns the current counters for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// UptimeSeconds returns seconds since the collector was created
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}
