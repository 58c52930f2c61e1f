package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "elevation_profile"

// Metrics holds the Prometheus counters, histograms, and gauges for a pipeline run.
type Metrics struct {
	PointsParsed prometheus.Counter
	RowsWritten  prometheus.Counter
	StageErrors  *prometheus.CounterVec // labels: stage={read,parse,split,distance,format,elevation,assemble,write,<sink>}
	RunDuration  prometheus.Histogram
	LastSuccess  prometheus.Gauge

	// Elevation API metrics.
	ElevationRequests    *prometheus.CounterVec // labels: outcome={success,error}
	ElevationAPIDuration prometheus.Histogram
	ElevationSamples     prometheus.Histogram
}

// NewMetrics creates all pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PointsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_parsed_total",
			Help:      "Total coordinate points parsed from path exports.",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Total profile rows written to the output table.",
		}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline failures by stage.",
		}, []string{"stage"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete successful pipeline run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		ElevationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elevation_requests_total",
			Help:      "Elevation API requests by outcome.",
		}, []string{"outcome"}),
		ElevationAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "elevation_api_duration_seconds",
			Help:      "Elevation API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ElevationSamples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "elevation_samples",
			Help:      "Samples requested per elevation API call.",
			Buckets:   []float64{2, 10, 50, 100, 250, 512},
		}),
	}

	reg.MustRegister(
		m.PointsParsed,
		m.RowsWritten,
		m.StageErrors,
		m.RunDuration,
		m.LastSuccess,
		m.ElevationRequests,
		m.ElevationAPIDuration,
		m.ElevationSamples,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// WriteTextfile writes everything g gathers to path in the Prometheus text
// format, for node_exporter's textfile collector. The write is atomic.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
