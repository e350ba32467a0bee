package measurement_test

import (
	"testing"

	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/measurement"
	takeofferrors "github.com/arx-os/takeoff/pkg/errors"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectanglePixelAreaAndPerimeter(t *testing.T) {
	m := measurement.NewRectangle("1", "p1", "g1", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 50})

	area, err := m.PixelArea()
	require.NoError(t, err)
	assert.Equal(t, 5000.0, area)

	perimeter, err := m.PixelPerimeter()
	require.NoError(t, err)
	assert.Equal(t, 300.0, perimeter)

	assert.Equal(t, 4, m.PointCount())
	assert.Equal(t, 1, m.Count())
}

func TestRectangleWithoutScaleStillReportsRawGeometry(t *testing.T) {
	m := measurement.NewRectangle("1", "p1", "g1", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 50})
	area, err := m.PixelArea()
	require.NoError(t, err)
	assert.Equal(t, 5000.0, area)
}

func TestPolylinePixelPerimeter(t *testing.T) {
	m := measurement.NewPolyline("1", "p1", "g1", []geometry.Point2D{{X: 0, Y: 0}, {X: 0, Y: 1}})
	perimeter, err := m.PixelPerimeter()
	require.NoError(t, err)
	assert.Equal(t, 1.0, perimeter)

	area, err := m.PixelArea()
	require.NoError(t, err)
	assert.Equal(t, 0.0, area)
}

func TestPolygonRequiresThreePoints(t *testing.T) {
	m := measurement.NewPolygon("1", "p1", "g1", []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}})
	_, err := m.PixelArea()
	require.Error(t, err)
	assert.True(t, takeofferrors.Of(err, takeofferrors.EmptyGeometry))
}

func TestCountCentroidIsItsOwnPoint(t *testing.T) {
	p := geometry.Point2D{X: 3, Y: 4}
	m := measurement.NewCount("1", "p1", "g1", p)
	c, err := m.GetCentroid()
	require.NoError(t, err)
	assert.Equal(t, p, c)
}

func TestWithCentroidAtPreservesAreaAndShape(t *testing.T) {
	m := measurement.NewPolygon("1", "p1", "g1", []geometry.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	before, err := m.PixelArea()
	require.NoError(t, err)

	moved, err := m.WithCentroidAt(geometry.Point2D{X: 100, Y: 100})
	require.NoError(t, err)
	assert.Equal(t, m.ID, moved.ID)
	assert.Equal(t, m.Kind, moved.Kind)
	assert.Equal(t, m.PointCount(), moved.PointCount())

	after, err := moved.PixelArea()
	require.NoError(t, err)
	assert.InDelta(t, before, after, 1e-9)

	c, err := moved.GetCentroid()
	require.NoError(t, err)
	assert.InDelta(t, 100.0, c.X, 1e-9)
	assert.InDelta(t, 100.0, c.Y, 1e-9)
}

func TestRealAreaAndLengthWithBoundScale(t *testing.T) {
	m := measurement.NewRectangle("1", "p1", "g1", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 50})
	s := scale.NewDefault("s1", "p1", scale.ScaleDefinition{PixelDistance: 100, RealDistance: 2, Unit: units.Meters})

	area, err := m.RealArea(s)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, area.GetConvertedValue(units.Meters), 1e-9)

	length, err := m.RealLength(s)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, length.GetConvertedValue(units.Meters), 1e-9)
}

func TestRectangleZeroAreaRaisesEmptyGeometry(t *testing.T) {
	m := measurement.NewRectangle("1", "p1", "g1", geometry.Point2D{X: 5, Y: 5}, geometry.Point2D{X: 5, Y: 20})

	_, err := m.PixelArea()
	require.Error(t, err)
	assert.True(t, takeofferrors.Of(err, takeofferrors.EmptyGeometry))

	_, err = m.PixelPerimeter()
	require.Error(t, err)
	assert.True(t, takeofferrors.Of(err, takeofferrors.EmptyGeometry))

	_, err = m.GetCentroid()
	require.Error(t, err)
	assert.True(t, takeofferrors.Of(err, takeofferrors.EmptyGeometry))

	_, err = m.ToGeometry()
	require.Error(t, err)
	assert.True(t, takeofferrors.Of(err, takeofferrors.EmptyGeometry))
}

func TestRectangleToGeometryExpandsToFourCorners(t *testing.T) {
	m := measurement.NewRectangle("1", "p1", "g1", geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 10, Y: 10})
	geom, err := m.ToGeometry()
	require.NoError(t, err)
	assert.Len(t, geom, 4)
}
