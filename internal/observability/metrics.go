package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// kinematics pipeline.
type Metrics struct {
	ProfilesConsumed prometheus.Counter
	AnalysesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Analysis metrics.
	AnalysisWarnings *prometheus.CounterVec // label: warning
	ProfileLevels    prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ProfilesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_kinematics",
			Name:      "profiles_consumed_total",
			Help:      "Total wind profile requests read from the source topic.",
		}),
		AnalysesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_kinematics",
			Name:      "analyses_produced_total",
			Help:      "Total analysis results written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_kinematics",
			Name:      "transform_errors_total",
			Help:      "Total requests that failed analysis.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_kinematics",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_kinematics",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_kinematics",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		AnalysisWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_kinematics",
			Name:      "analysis_warnings_total",
			Help:      "Non-fatal analysis conditions by warning code.",
		}, []string{"warning"}),
		ProfileLevels: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_kinematics",
			Name:      "profile_levels",
			Help:      "Number of observation levels per analyzed profile.",
			Buckets:   []float64{2, 5, 10, 15, 20, 30, 40, 60},
		}),
	}

	prometheus.MustRegister(
		m.ProfilesConsumed,
		m.AnalysesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.AnalysisWarnings,
		m.ProfileLevels,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ProfilesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_kinematics", Name: "profiles_consumed_total"}),
		AnalysesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_kinematics", Name: "analyses_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_kinematics", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_kinematics", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_kinematics", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_kinematics", Name: "batch_processing_duration_seconds"}),
		AnalysisWarnings:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_kinematics", Name: "analysis_warnings_total"}, []string{"warning"}),
		ProfileLevels:           prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_kinematics", Name: "profile_levels"}),
	}
}
