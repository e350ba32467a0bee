package takeoff_test

import (
	"context"
	"testing"

	"github.com/arx-os/takeoff/pkg/contour"
	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/measurement"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/takeoff"
	"github.com/arx-os/takeoff/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneToOneFeet() scale.ScaleDefinition {
	return scale.ScaleDefinition{PixelDistance: 1, RealDistance: 1, Unit: units.Feet}
}

// S1: a rectangle bound to a default scale reports real area and length.
func TestStateRectangleBindsToDefaultScale(t *testing.T) {
	s := takeoff.New(nil, nil)

	_, err := s.AddScale(scale.NewDefault("sc1", "page1", oneToOneFeet()))
	require.NoError(t, err)

	rect := measurement.NewRectangle("m1", "page1", "g1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 50))
	h, err := s.AddMeasurement(rect)
	require.NoError(t, err)

	sc := h.GetScale()
	require.NotNil(t, sc)
	assert.Equal(t, "sc1", sc.ID)

	area, err := h.GetArea()
	require.NoError(t, err)
	require.NotNil(t, area)
	assert.InDelta(t, 5000.0, area.GetConvertedValue(units.Feet), 1e-9)

	length, err := h.GetLength()
	require.NoError(t, err)
	require.NotNil(t, length)
	assert.InDelta(t, 300.0, length.GetConvertedValue(units.Feet), 1e-9)
}

// An Area scale containing the measurement's geometry wins over a page-wide
// Default, and re-resolution follows scale mutation.
func TestStateAreaScaleTakesPrecedenceAndReresolvesOnScaleChange(t *testing.T) {
	s := takeoff.New(nil, nil)

	_, err := s.AddScale(scale.NewDefault("default", "page1", scale.ScaleDefinition{
		PixelDistance: 1, RealDistance: 1, Unit: units.Feet,
	}))
	require.NoError(t, err)

	rect := measurement.NewRectangle("m1", "page1", "g1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 10))
	h, err := s.AddMeasurement(rect)
	require.NoError(t, err)
	require.Equal(t, "default", h.GetScale().ID)

	_, err = s.AddScale(scale.NewArea("area1", "page1", scale.ScaleDefinition{
		PixelDistance: 2, RealDistance: 1, Unit: units.Meters,
	}, geometry.NewPoint2D(0, 0), geometry.NewPoint2D(20, 20)))
	require.NoError(t, err)

	assert.Equal(t, "area1", h.GetScale().ID)

	require.NoError(t, s.RemoveScale("page1", "area1"))
	assert.Equal(t, "default", h.GetScale().ID)
}

// Groups recompute on add/replace/remove, summing area and length only over
// measurements that define them.
func TestStateGroupRecomputesOnMutation(t *testing.T) {
	s := takeoff.New(nil, nil)
	_, err := s.AddScale(scale.NewDefault("sc1", "page1", oneToOneFeet()))
	require.NoError(t, err)

	rect := measurement.NewRectangle("m1", "page1", "g1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 10))
	_, err = s.AddMeasurement(rect)
	require.NoError(t, err)

	count := measurement.NewCount("m2", "page1", "g1", geometry.NewPoint2D(5, 5))
	h2, err := s.AddMeasurement(count)
	require.NoError(t, err)

	totals := s.GroupHandle("g1").Totals()
	require.NotNil(t, totals.Area)
	assert.InDelta(t, 100.0, totals.Area.GetConvertedValue(units.Feet), 1e-9)
	assert.Equal(t, 2, totals.Count)

	require.NoError(t, s.RemoveMeasurement("page1", h2.ID()))
	totals = s.GroupHandle("g1").Totals()
	assert.Equal(t, 1, totals.Count)

	polyline := measurement.NewPolyline("m1", "page1", "g1", []geometry.Point2D{
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0),
	})
	require.NoError(t, s.ReplaceMeasurement("m1", polyline))
	totals = s.GroupHandle("g1").Totals()
	assert.Nil(t, totals.Area)
	require.NotNil(t, totals.Length)
	assert.InDelta(t, 10.0, totals.Length.GetConvertedValue(units.Feet), 1e-9)
}

func squareContourInput() contour.ContourInput {
	return contour.ContourInput{
		ID:     "c1",
		PageID: "page1",
		PointsOfInterest: []contour.ContourPoint{
			{Elevation: 10, Unit: units.Feet, Point: geometry.NewPoint2D(0, 0)},
			{Elevation: 10, Unit: units.Feet, Point: geometry.NewPoint2D(100, 0)},
			{Elevation: 10, Unit: units.Feet, Point: geometry.NewPoint2D(100, 100)},
			{Elevation: 10, Unit: units.Feet, Point: geometry.NewPoint2D(0, 100)},
		},
	}
}

// S4: a flat contour at z=10 reports 10 everywhere inside its bounding box.
func TestStateContourMeshZAt(t *testing.T) {
	s := takeoff.New(nil, nil)
	_, err := s.AddScale(scale.NewDefault("sc1", "page1", oneToOneFeet()))
	require.NoError(t, err)

	h, err := s.AddContour(squareContourInput())
	require.NoError(t, err)

	z, ok := h.ZAt(50, 50)
	require.True(t, ok)
	assert.InDelta(t, 10.0, z, 1e-6)

	_, ok = h.ZAt(500, 500)
	assert.False(t, ok)
}

// S5: a flat contour at z=10 against a reference plane at z=0 over a
// 100x100 bounding box integrates to fill=100000 (10 x 100 x 100), cut=0,
// uncovered=0.
func TestStateVolumeAgainstFlatPlane(t *testing.T) {
	s := takeoff.New(nil, nil)
	_, err := s.AddScale(scale.NewDefault("sc1", "page1", oneToOneFeet()))
	require.NoError(t, err)

	_, err = s.AddContour(squareContourInput())
	require.NoError(t, err)

	outcome, err := s.VolumeAgainst(context.Background(), "page1", "c1",
		takeoff.NewPlaneReferenceInput(0), 1.0)
	require.NoError(t, err)

	assert.InDelta(t, 100000.0, outcome.Raw.Fill, 1e-6)
	assert.InDelta(t, 0.0, outcome.Raw.Cut, 1e-9)
	assert.InDelta(t, 0.0, outcome.Raw.UncoveredArea, 1e-9)

	require.NotNil(t, outcome.Unit)
	assert.InDelta(t, 100000.0, outcome.Unit.Fill.GetConvertedValue(units.Feet), 1e-3)
}

func TestStateVolumeAgainstUnknownContourIsZeroValue(t *testing.T) {
	s := takeoff.New(nil, nil)
	outcome, err := s.VolumeAgainst(context.Background(), "nopage", "nocontour",
		takeoff.NewPlaneReferenceInput(0), 1.0)
	require.NoError(t, err)
	assert.Equal(t, takeoff.VolumeOutcome{}, outcome)
}

func TestStateMeasurementUnresolvedWithoutScale(t *testing.T) {
	s := takeoff.New(nil, nil)
	rect := measurement.NewRectangle("m1", "page1", "g1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 10))
	h, err := s.AddMeasurement(rect)
	require.NoError(t, err)
	assert.Nil(t, h.GetScale())

	area, err := h.GetArea()
	require.NoError(t, err)
	assert.Nil(t, area)
}

func TestMeasurementHandleConvertAreaAndLength(t *testing.T) {
	s := takeoff.New(nil, nil)
	_, err := s.AddScale(scale.NewDefault("sc1", "page1", oneToOneFeet()))
	require.NoError(t, err)

	rect := measurement.NewRectangle("m1", "page1", "g1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 10))
	h, err := s.AddMeasurement(rect)
	require.NoError(t, err)

	areaMeters, ok := h.ConvertArea(units.Meters)
	require.True(t, ok)
	assert.InDelta(t, 100.0*0.3048*0.3048, areaMeters, 1e-6)

	lengthMeters, ok := h.ConvertLength(units.Meters)
	require.True(t, ok)
	assert.InDelta(t, 40.0*0.3048, lengthMeters, 1e-6)
}

func TestMeasurementHandleConvertAreaFalseWithoutScale(t *testing.T) {
	s := takeoff.New(nil, nil)
	rect := measurement.NewRectangle("m1", "page1", "g1",
		geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 10))
	h, err := s.AddMeasurement(rect)
	require.NoError(t, err)

	_, ok := h.ConvertArea(units.Meters)
	assert.False(t, ok)
}

func TestStateGetPageScalesPreservesInsertionOrder(t *testing.T) {
	s := takeoff.New(nil, nil)
	_, err := s.AddScale(scale.NewDefault("sc1", "page1", oneToOneFeet()))
	require.NoError(t, err)
	_, err = s.AddScale(scale.NewDefault("sc2", "page1", oneToOneFeet()))
	require.NoError(t, err)

	scales, err := s.GetPageScales("page1")
	require.NoError(t, err)
	require.Len(t, scales, 2)
	assert.Equal(t, "sc1", scales[0].ID)
	assert.Equal(t, "sc2", scales[1].ID)
}
