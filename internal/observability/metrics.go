package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cn_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the curve
// number pipeline.
type Metrics struct {
	JobsConsumed    prometheus.Counter
	EventsProduced  prometheus.Counter
	TransformErrors prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Product generation metrics.
	BandsGenerated       prometheus.Counter
	ProductBuildDuration prometheus.Histogram
	PixelsAssigned       prometheus.Counter
	BlocksSkipped        *prometheus.CounterVec // labels: reason={outputs_exist,no_valid_soil,empty_grid}
	RasterCache          *prometheus.CounterVec // labels: result={hit,miss}
	SoilPixelsFilled     prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		JobsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_consumed_total",
			Help:      "Total block jobs read from the source topic.",
		}),
		EventsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_produced_total",
			Help:      "Total product events written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total block jobs that failed to produce a product.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of jobs per batch extracted from Kafka.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}),
		BandsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bands_generated_total",
			Help:      "Total curve number bands generated.",
		}),
		ProductBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "product_build_duration_seconds",
			Help:      "Time to build all 18 bands for one block.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PixelsAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pixels_assigned_total",
			Help:      "Total band pixels that matched a curve number table entry.",
		}),
		BlocksSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_skipped_total",
			Help:      "Blocks not generated, by reason.",
		}, []string{"reason"}),
		RasterCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "raster_cache_total",
			Help:      "Input raster cache lookups by result.",
		}, []string{"result"}),
		SoilPixelsFilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "soil_pixels_filled_total",
			Help:      "Soil no-data pixels filled with group D.",
		}),
	}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.JobsConsumed,
		m.EventsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.BandsGenerated,
		m.ProductBuildDuration,
		m.PixelsAssigned,
		m.BlocksSkipped,
		m.RasterCache,
		m.SoilPixelsFilled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// NewLocalMetrics creates Metrics that are never registered, for command line
// tools that do not serve /metrics.
func NewLocalMetrics() *Metrics {
	return newMetrics()
}
