package takeoff

import (
	"github.com/arx-os/takeoff/internal/logger"
	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/measurement"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/units"
)

// MeasurementHandle is the stateful wrapper around a Measurement: it owns
// the currently bound scale, which is re-resolved on every mutation of the
// geometry or the page's scales. Area and length are derived from the
// current geometry and scale on each call.
type MeasurementHandle struct {
	state *State
	guard *guardedMutex

	measurement measurement.Measurement
	scale       *scale.Scale
}

// ID returns the measurement's identifier.
func (h *MeasurementHandle) ID() string {
	var id string
	_ = h.guard.withRead(func() error { id = h.measurement.ID; return nil })
	return id
}

// PageID returns the owning page.
func (h *MeasurementHandle) PageID() string {
	var v string
	_ = h.guard.withRead(func() error { v = h.measurement.PageID; return nil })
	return v
}

// GroupID returns the owning group.
func (h *MeasurementHandle) GroupID() string {
	var v string
	_ = h.guard.withRead(func() error { v = h.measurement.GroupID; return nil })
	return v
}

// snapshot returns a copy of the current measurement and its bound scale
// (nil if unbound) for use by callers outside the handle's own lock, such
// as group aggregation.
func (h *MeasurementHandle) snapshot() (measurement.Measurement, *scale.Scale) {
	var m measurement.Measurement
	var s *scale.Scale
	_ = h.guard.withRead(func() error {
		m = h.measurement
		if h.scale != nil {
			cp := *h.scale
			s = &cp
		}
		return nil
	})
	return m, s
}

// setMeasurement replaces the underlying geometry, then re-resolves its
// scale (the new geometry may fall outside/inside different Area scales).
func (h *MeasurementHandle) setMeasurement(m measurement.Measurement) error {
	if err := h.guard.withWrite(func() error {
		h.measurement = m
		return nil
	}); err != nil {
		return err
	}
	return h.resolveScale()
}

// resolveScale re-runs scale resolution against the page's current scales
// and rebinds accordingly. Always succeeds at the registry level; an
// unresolvable geometry just leaves the handle unbound.
func (h *MeasurementHandle) resolveScale() error {
	pageID := h.PageID()
	p, ok, err := h.state.existingPage(pageID)
	if err != nil || !ok {
		return err
	}

	var geom []geometry.Point2D
	_ = h.guard.withRead(func() error {
		g, gerr := h.measurement.ToGeometry()
		if gerr == nil {
			geom = g
		}
		return nil
	})

	var resolved scale.Scale
	var found bool
	_ = p.guard.withRead(func() error {
		resolved, found = scale.ResolveIndexed(p.scaleIdx, p.scales, p.scaleOrder, geom)
		return nil
	})
	return h.guard.withWrite(func() error {
		if found {
			cp := resolved
			h.scale = &cp
		} else {
			h.scale = nil
			h.state.metrics.IncResolutionMiss(pageID)
			h.state.log.Warnf("measurement unresolved, falling back to no scale%s",
				logger.Fields("measurement_id", h.measurement.ID, "page_id", pageID))
		}
		return nil
	})
}

// GetScale returns the handle's currently bound scale, if any.
func (h *MeasurementHandle) GetScale() *scale.Scale {
	_, s := h.snapshot()
	return s
}

// GetArea returns the area in the bound scale's unit, nil if unbound or the
// geometry doesn't define an area.
func (h *MeasurementHandle) GetArea() (*units.UnitValue, error) {
	m, s := h.snapshot()
	if s == nil {
		return nil, nil
	}
	if m.Kind != measurement.KindPolygon && m.Kind != measurement.KindRectangle {
		return nil, nil
	}
	v, err := m.RealArea(*s)
	if err != nil {
		return nil, nil
	}
	return &v, nil
}

// GetLength returns the length in the bound scale's unit, nil if unbound or
// the geometry doesn't define a length.
func (h *MeasurementHandle) GetLength() (*units.UnitValue, error) {
	m, s := h.snapshot()
	if s == nil {
		return nil, nil
	}
	if m.Kind == measurement.KindCount {
		return nil, nil
	}
	v, err := m.RealLength(*s)
	if err != nil {
		return nil, nil
	}
	return &v, nil
}

// ConvertArea converts the measurement's currently bound area into to,
// without re-resolving scale. False if no scale is bound or the geometry
// doesn't define an area.
func (h *MeasurementHandle) ConvertArea(to units.Unit) (float64, bool) {
	area, err := h.GetArea()
	if err != nil || area == nil {
		return 0, false
	}
	return area.GetConvertedValue(to), true
}

// ConvertLength converts the measurement's currently bound length into to,
// without re-resolving scale. False if no scale is bound or the geometry
// doesn't define a length.
func (h *MeasurementHandle) ConvertLength(to units.Unit) (float64, bool) {
	length, err := h.GetLength()
	if err != nil || length == nil {
		return 0, false
	}
	return length.GetConvertedValue(to), true
}

// Points returns the measurement's vertex count.
func (h *MeasurementHandle) Points() int {
	m, _ := h.snapshot()
	return m.PointCount()
}

// Count is always 1.
func (h *MeasurementHandle) Count() int { return 1 }

// PixelArea returns the raw pixel-space area.
func (h *MeasurementHandle) PixelArea() (float64, error) {
	m, _ := h.snapshot()
	return m.PixelArea()
}

// PixelPerimeter returns the raw pixel-space perimeter.
func (h *MeasurementHandle) PixelPerimeter() (float64, error) {
	m, _ := h.snapshot()
	return m.PixelPerimeter()
}
