// Package units implements the five-unit dimensional model the engine needs
// (length/area/volume conversion for yards, feet, inches, meters,
// centimeters) without pulling in an external dimensional-analysis library —
// see DESIGN.md for why the standard library suffices here.
package units

import (
	"fmt"
	"strings"

	takeofferrors "github.com/arx-os/takeoff/pkg/errors"
)

// Unit is one of the five real-world units the engine understands.
type Unit string

const (
	Yards       Unit = "Yards"
	Feet        Unit = "Feet"
	Inches      Unit = "Inches"
	Meters      Unit = "Meters"
	Centimeters Unit = "Centimeters"
)

// metersPerUnit is the canonical SI conversion factor: multiply a value in
// Unit by this to get meters. All conversions factor through meters so the
// table stays O(n) instead of O(n^2).
var metersPerUnit = map[Unit]float64{
	Yards:       0.9144,
	Feet:        0.3048,
	Inches:      0.0254,
	Meters:      1.0,
	Centimeters: 0.01,
}

// All returns every supported unit.
func All() []Unit {
	return []Unit{Yards, Feet, Inches, Meters, Centimeters}
}

// Imperial returns the imperial units.
func Imperial() []Unit {
	return []Unit{Yards, Feet, Inches}
}

// Metric returns the metric units.
func Metric() []Unit {
	return []Unit{Meters, Centimeters}
}

// Abbreviation returns the short display token, e.g. "ft".
func (u Unit) Abbreviation() string {
	switch u {
	case Yards:
		return "yd"
	case Feet:
		return "ft"
	case Inches:
		return "in"
	case Meters:
		return "m"
	case Centimeters:
		return "cm"
	default:
		return string(u)
	}
}

// String returns the canonical full name, e.g. "Feet".
func (u Unit) String() string {
	return string(u)
}

// valid reports whether u is one of the five known units.
func (u Unit) valid() bool {
	_, ok := metersPerUnit[u]
	return ok
}

// ParseUnit parses a unit string case-insensitively, accepting the full
// name, singular form, or abbreviation. Returns UnknownUnit for anything
// else, including the empty string.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yards", "yard", "yd":
		return Yards, nil
	case "feet", "foot", "ft":
		return Feet, nil
	case "inches", "inch", "in":
		return Inches, nil
	case "meters", "metres", "meter", "metre", "m":
		return Meters, nil
	case "centimeters", "centimetres", "centimeter", "centimetre", "cm":
		return Centimeters, nil
	default:
		return "", takeofferrors.NewUnknownUnit(s)
	}
}

// ConvertLength converts a length value between units.
func ConvertLength(value float64, from, to Unit) float64 {
	return value * metersPerUnit[from] / metersPerUnit[to]
}

// ConvertArea converts an area value between units (length factor squared).
func ConvertArea(value float64, from, to Unit) float64 {
	ratio := metersPerUnit[from] / metersPerUnit[to]
	return value * ratio * ratio
}

// ConvertVolume converts a volume value between units (length factor cubed).
func ConvertVolume(value float64, from, to Unit) float64 {
	ratio := metersPerUnit[from] / metersPerUnit[to]
	return value * ratio * ratio * ratio
}

// Dimension identifies which physical quantity a UnitValue carries.
type Dimension string

const (
	DimensionLength Dimension = "length"
	DimensionArea   Dimension = "area"
	DimensionVolume Dimension = "volume"
)

// UnitValue holds a canonical (meters-based) quantity tagged by dimension.
// It is constructed from a value expressed in some Unit and can later be
// converted to, or displayed in, any other unit.
type UnitValue struct {
	dimension Dimension
	canonical float64 // meters, square meters, or cubic meters
}

// NewUnitValue constructs a UnitValue from value expressed in unit.
func NewUnitValue(value float64, unit Unit, dimension Dimension) UnitValue {
	switch dimension {
	case DimensionArea:
		return UnitValue{dimension: dimension, canonical: ConvertArea(value, unit, Meters)}
	case DimensionVolume:
		return UnitValue{dimension: dimension, canonical: ConvertVolume(value, unit, Meters)}
	default:
		return UnitValue{dimension: DimensionLength, canonical: ConvertLength(value, unit, Meters)}
	}
}

// FromLength builds a UnitValue from a length already expressed in unit.
func FromLength(value float64, unit Unit) UnitValue {
	return NewUnitValue(value, unit, DimensionLength)
}

// FromArea builds a UnitValue from an area already expressed in unit.
func FromArea(value float64, unit Unit) UnitValue {
	return NewUnitValue(value, unit, DimensionArea)
}

// FromVolume builds a UnitValue from a volume already expressed in unit.
func FromVolume(value float64, unit Unit) UnitValue {
	return NewUnitValue(value, unit, DimensionVolume)
}

// Dimension reports which physical quantity this value carries.
func (v UnitValue) Dimension() Dimension {
	return v.dimension
}

// GetConvertedValue converts the canonical quantity into to's units.
func (v UnitValue) GetConvertedValue(to Unit) float64 {
	switch v.dimension {
	case DimensionArea:
		return ConvertArea(v.canonical, Meters, to)
	case DimensionVolume:
		return ConvertVolume(v.canonical, Meters, to)
	default:
		return ConvertLength(v.canonical, Meters, to)
	}
}

// suffix returns the dimension's display suffix: "", "²", or "³".
func (d Dimension) suffix() string {
	switch d {
	case DimensionArea:
		return "²"
	case DimensionVolume:
		return "³"
	default:
		return ""
	}
}

// Display formats the value converted into unit, rounded to 2 decimal
// places, with the unit's abbreviation and the dimension's suffix — e.g.
// "1.00 m" for length, "1.00 m²" for area, "1.00 m³" for volume.
func (v UnitValue) Display(unit Unit) string {
	value := v.GetConvertedValue(unit)
	return fmt.Sprintf("%.2f %s%s", value, unit.Abbreviation(), v.dimension.suffix())
}
