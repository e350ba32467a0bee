package measurement

import (
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/units"
)

// RealArea converts pixel_area by the bound scale's ratio squared, returned
// as a UnitValue in the scale's unit. Returns an error if the geometry is
// degenerate; the caller is expected to have already confirmed a scale is
// bound.
func (m Measurement) RealArea(s scale.Scale) (units.UnitValue, error) {
	pixelArea, err := m.PixelArea()
	if err != nil {
		return units.UnitValue{}, err
	}
	ratio, err := s.Ratio()
	if err != nil {
		return units.UnitValue{}, err
	}
	return units.FromArea(pixelArea/(ratio*ratio), s.GetUnit()), nil
}

// RealLength converts pixel_perimeter by the bound scale's ratio, returned
// as a UnitValue in the scale's unit.
func (m Measurement) RealLength(s scale.Scale) (units.UnitValue, error) {
	pixelPerimeter, err := m.PixelPerimeter()
	if err != nil {
		return units.UnitValue{}, err
	}
	ratio, err := s.Ratio()
	if err != nil {
		return units.UnitValue{}, err
	}
	return units.FromLength(pixelPerimeter/ratio, s.GetUnit()), nil
}
