// Package group implements named collections of measurements and their
// aggregated totals.
package group

import (
	"github.com/arx-os/takeoff/pkg/measurement"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/units"
)

// Group is a named collection of measurements on one page; its totals are
// recomputed from the group's current membership whenever that membership
// or a member's bound scale changes.
type Group struct {
	ID     string  `json:"id"`
	Name   *string `json:"name,omitempty"`
	PageID string  `json:"page_id"`
}

// Member pairs a measurement with its currently bound scale, if any —
// aggregation needs both to produce dimensioned totals.
type Member struct {
	Measurement measurement.Measurement
	Scale       *scale.Scale
}

// Totals holds the group's aggregated derived quantities. Area and Length
// are nil when no member contributes a bound-scale value for that quantity.
type Totals struct {
	Area   *units.UnitValue
	Length *units.UnitValue
	Points int
	Count  int
}

// Compute aggregates the group's totals over its current members:
// area/length sum only members that have both a defined shape value and a
// bound scale, in that scale's unit (mixed-unit members are converted to
// the first contributing member's unit); points sums every member's vertex
// count regardless of scale; count is the member count.
func Compute(members []Member) Totals {
	totals := Totals{Count: len(members)}

	var areaUnit, lengthUnit *units.Unit
	var areaSum, lengthSum float64
	haveArea, haveLength := false, false

	for _, m := range members {
		totals.Points += m.Measurement.PointCount()

		if m.Scale == nil {
			continue
		}

		definesArea := m.Measurement.Kind == measurement.KindPolygon || m.Measurement.Kind == measurement.KindRectangle
		if definesArea {
			if area, err := m.Measurement.RealArea(*m.Scale); err == nil {
				u := m.Scale.GetUnit()
				if areaUnit == nil {
					areaUnit = &u
				}
				areaSum += area.GetConvertedValue(*areaUnit)
				haveArea = true
			}
		}

		definesLength := m.Measurement.Kind == measurement.KindPolygon ||
			m.Measurement.Kind == measurement.KindPolyline ||
			m.Measurement.Kind == measurement.KindRectangle
		if definesLength {
			if length, err := m.Measurement.RealLength(*m.Scale); err == nil {
				u := m.Scale.GetUnit()
				if lengthUnit == nil {
					lengthUnit = &u
				}
				lengthSum += length.GetConvertedValue(*lengthUnit)
				haveLength = true
			}
		}
	}

	if haveArea {
		v := units.FromArea(areaSum, *areaUnit)
		totals.Area = &v
	}
	if haveLength {
		v := units.FromLength(lengthSum, *lengthUnit)
		totals.Length = &v
	}
	return totals
}
