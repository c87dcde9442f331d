package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and
// records nothing, so components can take metrics optionally.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Shell metrics
	Transitions  *prometheus.CounterVec
	AppsOpen     prometheus.Gauge
	AppsHidden   prometheus.Gauge
	ContextMenu  *prometheus.CounterVec
	PowerPhases  *prometheus.CounterVec
	TerminalRuns *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	OpenApps          int64   `json:"open_apps"`
	HiddenApps        int64   `json:"hidden_apps"`
	Transitions       int64   `json:"transitions"`
	ActiveConnections int64   `json:"active_connections"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a new metrics collector registered with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{startTime: time.Now()}

	// HTTP metrics
	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namixos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namixos_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
	m.RequestSize = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namixos_http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)
	m.ResponseSize = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namixos_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// Shell metrics
	m.Transitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namixos_shell_transitions_total",
			Help: "Total number of applied lifecycle transitions",
		},
		[]string{"op"},
	)
	m.AppsOpen = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "namixos_shell_apps_open",
			Help: "Number of open, visible applications",
		},
	)
	m.AppsHidden = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "namixos_shell_apps_hidden",
			Help: "Number of minimized applications",
		},
	)
	m.ContextMenu = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namixos_shell_context_menu_total",
			Help: "Context menu events by kind",
		},
		[]string{"event"},
	)
	m.PowerPhases = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namixos_power_phases_total",
			Help: "Power screen phases entered",
		},
		[]string{"phase"},
	)
	m.TerminalRuns = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namixos_terminal_commands_total",
			Help: "Fake terminal commands executed",
		},
		[]string{"command"},
	)

	// WebSocket metrics
	m.WSConnections = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "namixos_ws_connections",
			Help: "Number of active WebSocket connections",
		},
	)
	m.WSMessages = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namixos_ws_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction", "type"},
	)

	// System metrics
	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "namixos_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordTransition records an applied lifecycle transition
func (m *Metrics) RecordTransition(op string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(op).Inc()

	m.mu.Lock()
	m.snapshot.Transitions++
	m.mu.Unlock()
}

// SetApps sets the open and hidden application gauges
func (m *Metrics) SetApps(open, hidden int) {
	if m == nil {
		return
	}
	m.AppsOpen.Set(float64(open))
	m.AppsHidden.Set(float64(hidden))

	m.mu.Lock()
	m.snapshot.OpenApps = int64(open)
	m.snapshot.HiddenApps = int64(hidden)
	m.mu.Unlock()
}

// RecordContextMenu records a context menu event (shown, dismissed, open, ...)
func (m *Metrics) RecordContextMenu(event string) {
	if m == nil {
		return
	}
	m.ContextMenu.WithLabelValues(event).Inc()
}

// RecordPowerPhase records entering a power screen phase
func (m *Metrics) RecordPowerPhase(phase string) {
	if m == nil {
		return
	}
	m.PowerPhases.WithLabelValues(phase).Inc()
}

// RecordTerminalCommand records a fake terminal command
func (m *Metrics) RecordTerminalCommand(command string) {
	if m == nil {
		return
	}
	m.TerminalRuns.WithLabelValues(command).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON health endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	if snap.TotalRequests > 0 {
		snap.AvgDurationMs = snap.totalDuration / float64(snap.TotalRequests) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
