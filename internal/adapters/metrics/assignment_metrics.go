package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "cargoplan"
	subsystem = "assignment"
)

// AssignmentMetricsCollector records assignment engine activity for
// Prometheus. It implements the application layer's RunRecorder port.
type AssignmentMetricsCollector struct {
	batchRunsTotal     prometheus.Counter
	assignedTotal      prometheus.Counter
	processedTotal     prometheus.Counter
	skipsTotal         *prometheus.CounterVec
	advisorFallbacks   prometheus.Counter
	lastBatchAssigned  prometheus.Gauge
	lastBatchProcessed prometheus.Gauge
}

// NewAssignmentMetricsCollector creates the collector with all metrics registered
func NewAssignmentMetricsCollector(registry prometheus.Registerer) *AssignmentMetricsCollector {
	collector := &AssignmentMetricsCollector{
		batchRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "batch_runs_total",
			Help:      "Number of batch auto-assign runs",
		}),
		assignedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "assigned_total",
			Help:      "Number of shipments committed to voyages",
		}),
		processedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "processed_total",
			Help:      "Number of shipments examined by batch runs",
		}),
		skipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "skips_total",
			Help:      "Number of shipments skipped, by reason",
		}, []string{"reason"}),
		advisorFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "advisor_fallbacks_total",
			Help:      "Number of advisor failures that degraded to a deterministic fallback",
		}),
		lastBatchAssigned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_batch_assigned",
			Help:      "Shipments assigned in the most recent batch run",
		}),
		lastBatchProcessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_batch_processed",
			Help:      "Shipments processed in the most recent batch run",
		}),
	}

	registry.MustRegister(
		collector.batchRunsTotal,
		collector.assignedTotal,
		collector.processedTotal,
		collector.skipsTotal,
		collector.advisorFallbacks,
		collector.lastBatchAssigned,
		collector.lastBatchProcessed,
	)
	return collector
}

// RecordBatchRun records the outcome of one batch auto-assign run
func (c *AssignmentMetricsCollector) RecordBatchRun(assigned, processed int) {
	c.batchRunsTotal.Inc()
	c.assignedTotal.Add(float64(assigned))
	c.processedTotal.Add(float64(processed))
	c.lastBatchAssigned.Set(float64(assigned))
	c.lastBatchProcessed.Set(float64(processed))
}

// RecordSkip records one skipped shipment with its reason
func (c *AssignmentMetricsCollector) RecordSkip(reason string) {
	c.skipsTotal.WithLabelValues(reason).Inc()
}

// RecordAdvisorFallback records one advisor failure that fell back
func (c *AssignmentMetricsCollector) RecordAdvisorFallback() {
	c.advisorFallbacks.Inc()
}
