package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fill-script outcomes.
const (
	OutcomeFilled     = "filled"
	OutcomeEmpty      = "empty"
	OutcomeUntrusted  = "untrusted_blocked"
	OutcomeSendFailed = "send_failed"
	OutcomeGenerated  = "generated"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Autofill metrics
	FillScripts     *prometheus.CounterVec
	ScriptActions   *prometheus.HistogramVec
	QualifiedFields *prometheus.CounterVec
	PageFields      prometheus.Histogram

	// Remote attribute metrics
	RemoteAttributes        *prometheus.CounterVec
	RemoteAttributeDuration *prometheus.HistogramVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	// Snapshot for the health endpoint
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	FillScripts   int64   `json:"fill_scripts"`
	TotalDuration float64 `json:"-"`
	AvgDuration   float64 `json:"avg_duration_seconds"`
	Uptime        float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector registered on reg. A nil reg
// means the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autofill_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autofill_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autofill_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autofill_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Autofill metrics
		FillScripts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autofill_fill_scripts_total",
				Help: "Fill scripts by cipher type and outcome",
			},
			[]string{"cipher_type", "outcome"},
		),
		ScriptActions: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autofill_script_actions",
				Help:    "Number of operations per generated fill script",
				Buckets: []float64{1, 3, 6, 10, 20, 40, 80},
			},
			[]string{"cipher_type"},
		),
		QualifiedFields: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autofill_qualified_fields_total",
				Help: "Fields tagged with a cipher type by the field qualifier",
			},
			[]string{"cipher_type"},
		),
		PageFields: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "autofill_page_fields",
				Help:    "Number of fields collected per page",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 250},
			},
		),

		// Remote attribute metrics
		RemoteAttributes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autofill_remote_attributes_total",
				Help: "Remote attribute lookups by attribute and status",
			},
			[]string{"attribute", "status"},
		),
		RemoteAttributeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autofill_remote_attribute_duration_seconds",
				Help:    "Remote attribute lookup duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"attribute"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "autofill_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordFillScript records the outcome of one fill script. actions is the
// script's operation count; it is observed for generated scripts only.
func (m *Metrics) RecordFillScript(cipherType, outcome string, actions int) {
	m.FillScripts.WithLabelValues(cipherType, outcome).Inc()
	if outcome == OutcomeGenerated {
		m.ScriptActions.WithLabelValues(cipherType).Observe(float64(actions))
		m.mu.Lock()
		m.snapshot.FillScripts++
		m.mu.Unlock()
	}
}

// RecordQualifiedField records a field tagged with a cipher type
func (m *Metrics) RecordQualifiedField(cipherType string) {
	m.QualifiedFields.WithLabelValues(cipherType).Inc()
}

// RecordPageFields records the size of a collected page
func (m *Metrics) RecordPageFields(n int) {
	m.PageFields.Observe(float64(n))
}

// RecordRemoteAttribute records a remote attribute lookup
func (m *Metrics) RecordRemoteAttribute(attribute, status string, duration time.Duration) {
	m.RemoteAttributes.WithLabelValues(attribute, status).Inc()
	m.RemoteAttributeDuration.WithLabelValues(attribute).Observe(duration.Seconds())
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	s := m.snapshot
	m.mu.RUnlock()

	if s.TotalRequests > 0 {
		s.AvgDuration = s.TotalDuration / float64(s.TotalRequests)
	}
	s.Uptime = time.Since(m.startTime).Seconds()
	return s
}
