package metrics_test

import (
	"testing"
	"time"

	"github.com/arx-os/takeoff/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperationIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.ObserveOperation("scale", "ok", 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.True(t, containsMetric(families, "takeoff_operations_total"))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *metrics.Collector
	assert.NotPanics(t, func() {
		c.ObserveOperation("scale", "ok", time.Millisecond)
		c.IncResolutionMiss("p1")
		c.SetActiveSurfaces(3)
		c.AddVolumeCells(10)
	})
}

func containsMetric(families []*dto.MetricFamily, name string) bool {
	for _, f := range families {
		if f.GetName() == name {
			return true
		}
	}
	return false
}
