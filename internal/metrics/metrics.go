// Package metrics exposes the engine's Prometheus collectors: operation
// counters, latency histograms, and live-cache gauges, registered the same
// way this codebase's service gateway registers its own.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the engine's Prometheus instrumentation. A nil *Collector
// is safe to call methods on — every method no-ops — so callers that never
// wire metrics don't need nil checks at every call site.
type Collector struct {
	operationsTotal  *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	resolutionMisses *prometheus.CounterVec
	activeSurfaces   prometheus.Gauge
	volumeCellsTotal prometheus.Counter
}

// NewCollector builds and registers the engine's collectors against reg.
// Pass prometheus.NewRegistry() for test isolation, or
// prometheus.DefaultRegisterer for a process-wide singleton.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "takeoff",
			Name:      "operations_total",
			Help:      "Count of engine operations by component and outcome.",
		}, []string{"component", "outcome"}),
		operationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "takeoff",
			Name:      "operation_duration_seconds",
			Help:      "Latency of engine operations by component.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"component"}),
		resolutionMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "takeoff",
			Name:      "scale_resolution_misses_total",
			Help:      "Count of measurement/contour scale resolutions that found no binding scale.",
		}, []string{"page_id"}),
		activeSurfaces: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "takeoff",
			Name:      "active_surface_meshes",
			Help:      "Number of contour surface meshes currently cached.",
		}),
		volumeCellsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "takeoff",
			Name:      "volume_grid_cells_total",
			Help:      "Total Riemann-sum grid cells evaluated across all volume_against calls.",
		}),
	}
}

// ObserveOperation records one operation's outcome and latency.
func (c *Collector) ObserveOperation(component, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.operationsTotal.WithLabelValues(component, outcome).Inc()
	c.operationLatency.WithLabelValues(component).Observe(d.Seconds())
}

// IncResolutionMiss records a scale resolution that left geometry unbound.
func (c *Collector) IncResolutionMiss(pageID string) {
	if c == nil {
		return
	}
	c.resolutionMisses.WithLabelValues(pageID).Inc()
}

// SetActiveSurfaces sets the current count of cached surface meshes.
func (c *Collector) SetActiveSurfaces(n int) {
	if c == nil {
		return
	}
	c.activeSurfaces.Set(float64(n))
}

// AddVolumeCells adds n to the cumulative grid-cell counter.
func (c *Collector) AddVolumeCells(n int) {
	if c == nil {
		return
	}
	c.volumeCellsTotal.Add(float64(n))
}
