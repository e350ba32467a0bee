package engine_test

import (
	"context"
	"testing"

	"github.com/arx-os/takeoff/internal/config"
	"github.com/arx-os/takeoff/internal/engine"
	"github.com/arx-os/takeoff/pkg/contour"
	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/measurement"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/takeoff"
	"github.com/arx-os/takeoff/pkg/units"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(
		engine.WithConfig(config.Config{
			DefaultUnit:     "Feet",
			DefaultCellSize: 2.0,
			IDWNeighbors:    8,
			RDPTolerance:    0.01,
		}),
		engine.WithRegistry(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	return e
}

func TestEngineNewDefaultScaleDefinitionUsesConfiguredUnit(t *testing.T) {
	e := newTestEngine(t)
	def := e.NewDefaultScaleDefinition(100, 10)
	assert.Equal(t, units.Feet, def.Unit)
	ratio, err := def.Ratio()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, ratio, 1e-9)
}

func TestEngineAddMeasurementSimplifiesPolyline(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.State.AddScale(scale.NewDefault("sc1", "page1", e.NewDefaultScaleDefinition(1, 1)))
	require.NoError(t, err)

	noisy := measurement.NewPolyline("m1", "page1", "g1", []geometry.Point2D{
		{X: 0, Y: 0}, {X: 1, Y: 0.001}, {X: 2, Y: -0.001}, {X: 10, Y: 0},
	})
	h, err := e.AddMeasurement(noisy)
	require.NoError(t, err)
	assert.Less(t, h.Points(), len(noisy.Points))
}

func TestEngineVolumeAgainstFallsBackToConfiguredCellSize(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.State.AddScale(scale.NewDefault("sc1", "page1", e.NewDefaultScaleDefinition(1, 1)))
	require.NoError(t, err)

	_, err = e.AddContour(contour.ContourInput{
		ID:     "c1",
		PageID: "page1",
		PointsOfInterest: []contour.ContourPoint{
			{Elevation: 5, Unit: units.Feet, Point: geometry.NewPoint2D(0, 0)},
			{Elevation: 5, Unit: units.Feet, Point: geometry.NewPoint2D(10, 0)},
			{Elevation: 5, Unit: units.Feet, Point: geometry.NewPoint2D(10, 10)},
			{Elevation: 5, Unit: units.Feet, Point: geometry.NewPoint2D(0, 10)},
		},
	})
	require.NoError(t, err)

	outcome, err := e.VolumeAgainst(context.Background(), "page1", "c1",
		takeoff.NewPlaneReferenceInput(0), 0)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, outcome.Raw.Fill, 1e-6)
}
