package group_test

import (
	"testing"

	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/group"
	"github.com/arx-os/takeoff/pkg/measurement"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feetScale() scale.Scale {
	return scale.NewDefault("s1", "p1", scale.ScaleDefinition{PixelDistance: 1, RealDistance: 1, Unit: units.Feet})
}

func TestComputeSumsAreaAndLengthForPolygonsAndRectangles(t *testing.T) {
	s := feetScale()
	rect := measurement.NewRectangle("1", "p1", "g1", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 10})
	poly := measurement.NewPolygon("2", "p1", "g1", []geometry.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})

	totals := group.Compute([]group.Member{
		{Measurement: rect, Scale: &s},
		{Measurement: poly, Scale: &s},
	})

	require.NotNil(t, totals.Area)
	assert.InDelta(t, 200.0, totals.Area.GetConvertedValue(units.Feet), 1e-6)
	require.NotNil(t, totals.Length)
	assert.InDelta(t, 80.0, totals.Length.GetConvertedValue(units.Feet), 1e-6)
	assert.Equal(t, 2, totals.Count)
	assert.Equal(t, 8, totals.Points)
}

func TestComputeExcludesPolylineFromArea(t *testing.T) {
	s := feetScale()
	line := measurement.NewPolyline("1", "p1", "g1", []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}})

	totals := group.Compute([]group.Member{{Measurement: line, Scale: &s}})
	assert.Nil(t, totals.Area)
	require.NotNil(t, totals.Length)
	assert.InDelta(t, 10.0, totals.Length.GetConvertedValue(units.Feet), 1e-6)
}

func TestComputeExcludesCountFromAreaAndLength(t *testing.T) {
	s := feetScale()
	count := measurement.NewCount("1", "p1", "g1", geometry.Point2D{X: 5, Y: 5})

	totals := group.Compute([]group.Member{{Measurement: count, Scale: &s}})
	assert.Nil(t, totals.Area)
	assert.Nil(t, totals.Length)
	assert.Equal(t, 1, totals.Points)
	assert.Equal(t, 1, totals.Count)
}

func TestComputeNoScaleLeavesAreaAndLengthNil(t *testing.T) {
	rect := measurement.NewRectangle("1", "p1", "g1", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 10})
	totals := group.Compute([]group.Member{{Measurement: rect, Scale: nil}})
	assert.Nil(t, totals.Area)
	assert.Nil(t, totals.Length)
	assert.Equal(t, 4, totals.Points)
}

func TestComputeEmptyGroup(t *testing.T) {
	totals := group.Compute(nil)
	assert.Nil(t, totals.Area)
	assert.Nil(t, totals.Length)
	assert.Equal(t, 0, totals.Points)
	assert.Equal(t, 0, totals.Count)
}
