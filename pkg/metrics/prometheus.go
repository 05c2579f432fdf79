// Package metrics provides Prometheus metrics for the cartolab pipeline and API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns all Prometheus collectors for the process.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Pipeline metrics
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	filesRead     prometheus.Counter
	filesSkipped  prometheus.Counter

	// Artifact metrics
	rowsConsolidated  prometheus.Gauge
	outliersDetected  prometheus.Gauge
	playersAggregated prometheus.Gauge
	artifactAge       *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Upstream Cartola API metrics
	cartolaRequests *prometheus.CounterVec
}

// NewManager builds a Manager and registers all collectors on its registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cartolab",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.register()
	return m
}

func (m *Manager) register() {
	factory := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}
	}

	m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Wall-clock duration of each pipeline stage.",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.stageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("stage_failures_total", "Pipeline stage failures by stage name.")),
		[]string{"stage"})

	m.filesRead = prometheus.NewCounter(
		prometheus.CounterOpts(factory("raw_files_read_total", "Raw round files read successfully.")))

	m.filesSkipped = prometheus.NewCounter(
		prometheus.CounterOpts(factory("raw_files_skipped_total", "Raw round files skipped due to read errors.")))

	m.rowsConsolidated = prometheus.NewGauge(
		prometheus.GaugeOpts(factory("rows_consolidated", "Rows in the consolidated table from the last run.")))

	m.outliersDetected = prometheus.NewGauge(
		prometheus.GaugeOpts(factory("outliers_detected", "Score outliers flagged in the last run.")))

	m.playersAggregated = prometheus.NewGauge(
		prometheus.GaugeOpts(factory("players_aggregated", "Distinct players in the last aggregation run.")))

	m.artifactAge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts(factory("artifact_age_seconds", "Age of persisted artifacts by name.")),
		[]string{"artifact"})

	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("http_requests_total", "HTTP requests by endpoint, method and status.")),
		[]string{"endpoint", "method", "status"})

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})

	m.cartolaRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts(factory("cartola_requests_total", "Upstream Cartola API requests by endpoint and outcome.")),
		[]string{"endpoint", "outcome"})

	m.registry.MustRegister(
		m.stageDuration,
		m.stageFailures,
		m.filesRead,
		m.filesSkipped,
		m.rowsConsolidated,
		m.outliersDetected,
		m.playersAggregated,
		m.artifactAge,
		m.httpRequests,
		m.httpRequestDuration,
		m.cartolaRequests,
	)
}

// Registry exposes the manager's registry for serving /healthz.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordStageDuration records the duration of one pipeline stage in seconds.
func (m *Manager) RecordStageDuration(stage string, seconds float64) {
	if !m.enabled {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordStageFailure counts a failed stage run.
func (m *Manager) RecordStageFailure(stage string) {
	if !m.enabled {
		return
	}
	m.stageFailures.WithLabelValues(stage).Inc()
}

// RecordFileRead counts a successfully ingested raw file.
func (m *Manager) RecordFileRead() {
	if !m.enabled {
		return
	}
	m.filesRead.Inc()
}

// RecordFileSkipped counts a raw file skipped on read error.
func (m *Manager) RecordFileSkipped() {
	if !m.enabled {
		return
	}
	m.filesSkipped.Inc()
}

// SetRowsConsolidated sets the consolidated row count gauge.
func (m *Manager) SetRowsConsolidated(n int) {
	if !m.enabled {
		return
	}
	m.rowsConsolidated.Set(float64(n))
}

// SetOutliersDetected sets the flagged outlier count gauge.
func (m *Manager) SetOutliersDetected(n int) {
	if !m.enabled {
		return
	}
	m.outliersDetected.Set(float64(n))
}

// SetPlayersAggregated sets the aggregated player count gauge.
func (m *Manager) SetPlayersAggregated(n int) {
	if !m.enabled {
		return
	}
	m.playersAggregated.Set(float64(n))
}

// SetArtifactAge reports the age of a persisted artifact in seconds.
func (m *Manager) SetArtifactAge(artifact string, seconds float64) {
	if !m.enabled {
		return
	}
	m.artifactAge.WithLabelValues(artifact).Set(seconds)
}

// RecordHTTPRequest counts one served HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, status string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records a request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordCartolaRequest counts one upstream API call with its outcome.
func (m *Manager) RecordCartolaRequest(endpoint, outcome string) {
	if !m.enabled {
		return
	}
	m.cartolaRequests.WithLabelValues(endpoint, outcome).Inc()
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns the process-wide manager, creating it on first use.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}

// GetRegistry returns the default manager's registry.
func GetRegistry() *prometheus.Registry { return Default().Registry() }

// Package-level helpers delegating to the default manager.

func RecordStageDuration(stage string, seconds float64) { Default().RecordStageDuration(stage, seconds) }
func RecordStageFailure(stage string)                   { Default().RecordStageFailure(stage) }
func RecordFileRead()                                   { Default().RecordFileRead() }
func RecordFileSkipped()                                { Default().RecordFileSkipped() }
func SetRowsConsolidated(n int)                         { Default().SetRowsConsolidated(n) }
func SetOutliersDetected(n int)                         { Default().SetOutliersDetected(n) }
func SetPlayersAggregated(n int)                        { Default().SetPlayersAggregated(n) }
func SetArtifactAge(artifact string, seconds float64)   { Default().SetArtifactAge(artifact, seconds) }

func RecordHTTPRequest(endpoint, method, status string) {
	Default().RecordHTTPRequest(endpoint, method, status)
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	Default().RecordHTTPRequestDuration(endpoint, method, status, durationMs)
}

func RecordCartolaRequest(endpoint, outcome string) {
	Default().RecordCartolaRequest(endpoint, outcome)
}
