// Package measurement implements the tagged Measurement variants (Count,
// Polyline, Polygon, Rectangle) and the pixel-space geometry operations
// shared by every variant: area, perimeter, centroid, and translation.
package measurement

import (
	"github.com/arx-os/takeoff/pkg/geometry"
	takeofferrors "github.com/arx-os/takeoff/pkg/errors"
)

// Kind discriminates the four Measurement variants.
type Kind string

const (
	KindCount     Kind = "Count"
	KindPolyline  Kind = "Polyline"
	KindPolygon   Kind = "Polygon"
	KindRectangle Kind = "Rectangle"
)

// Measurement is a tagged variant over the four geometry shapes a takeoff
// entry can carry. Points holds the variant's vertices: length 1 for Count,
// n for Polyline/Polygon, exactly 2 (opposite corners) for Rectangle.
type Measurement struct {
	Kind    Kind               `json:"type"`
	ID      string             `json:"id"`
	PageID  string             `json:"page_id"`
	GroupID string             `json:"group_id"`
	Points  []geometry.Point2D `json:"points"`
}

// NewCount constructs a single-mark measurement.
func NewCount(id, pageID, groupID string, point geometry.Point2D) Measurement {
	return Measurement{Kind: KindCount, ID: id, PageID: pageID, GroupID: groupID, Points: []geometry.Point2D{point}}
}

// NewPolyline constructs an open-path measurement.
func NewPolyline(id, pageID, groupID string, points []geometry.Point2D) Measurement {
	return Measurement{Kind: KindPolyline, ID: id, PageID: pageID, GroupID: groupID, Points: points}
}

// NewPolygon constructs a closed-area measurement.
func NewPolygon(id, pageID, groupID string, points []geometry.Point2D) Measurement {
	return Measurement{Kind: KindPolygon, ID: id, PageID: pageID, GroupID: groupID, Points: points}
}

// NewRectangle constructs a measurement from two opposite corners.
func NewRectangle(id, pageID, groupID string, a, b geometry.Point2D) Measurement {
	return Measurement{Kind: KindRectangle, ID: id, PageID: pageID, GroupID: groupID, Points: []geometry.Point2D{a, b}}
}

func (m Measurement) boundingBox() (geometry.BoundingBox, bool) {
	return geometry.BoundingBoxOf(m.Points)
}

// rectangleBoundingBox returns the Rectangle's bounding box, rejecting both
// the missing-corner case and the degenerate, zero-area case (two identical
// or collinear corners) with EmptyGeometry.
func (m Measurement) rectangleBoundingBox() (geometry.BoundingBox, error) {
	bb, ok := m.boundingBox()
	if !ok {
		return geometry.BoundingBox{}, takeofferrors.NewEmptyGeometry("rectangle requires 2 points")
	}
	if bb.Width()*bb.Height() == 0 {
		return geometry.BoundingBox{}, takeofferrors.NewEmptyGeometry("rectangle has zero area")
	}
	return bb, nil
}

// PixelArea returns the variant's area in pixel space. 0 for Count and
// Polyline. EmptyGeometry for a Polygon with fewer than 3 points.
func (m Measurement) PixelArea() (float64, error) {
	switch m.Kind {
	case KindCount, KindPolyline:
		return 0, nil
	case KindPolygon:
		if len(m.Points) < 3 {
			return 0, takeofferrors.NewEmptyGeometry("polygon requires at least 3 points")
		}
		return geometry.PolygonArea(m.Points), nil
	case KindRectangle:
		bb, err := m.rectangleBoundingBox()
		if err != nil {
			return 0, err
		}
		return bb.Width() * bb.Height(), nil
	default:
		return 0, takeofferrors.NewEmptyGeometry("unknown measurement kind")
	}
}

// PixelPerimeter returns the variant's perimeter/length in pixel space. 0 for
// Count. EmptyGeometry for a Polyline with fewer than 2 points or a Polygon
// with fewer than 3.
func (m Measurement) PixelPerimeter() (float64, error) {
	switch m.Kind {
	case KindCount:
		return 0, nil
	case KindPolyline:
		if len(m.Points) < 2 {
			return 0, takeofferrors.NewEmptyGeometry("polyline requires at least 2 points")
		}
		return geometry.PolylineLength(m.Points), nil
	case KindPolygon:
		if len(m.Points) < 3 {
			return 0, takeofferrors.NewEmptyGeometry("polygon requires at least 3 points")
		}
		return geometry.PolygonPerimeter(m.Points), nil
	case KindRectangle:
		bb, err := m.rectangleBoundingBox()
		if err != nil {
			return 0, err
		}
		return 2 * (bb.Width() + bb.Height()), nil
	default:
		return 0, takeofferrors.NewEmptyGeometry("unknown measurement kind")
	}
}

// GetCentroid returns the variant's centroid in pixel space.
func (m Measurement) GetCentroid() (geometry.Point2D, error) {
	switch m.Kind {
	case KindCount:
		if len(m.Points) != 1 {
			return geometry.Point2D{}, takeofferrors.NewEmptyGeometry("count requires exactly 1 point")
		}
		return m.Points[0], nil
	case KindPolyline:
		if len(m.Points) < 2 {
			return geometry.Point2D{}, takeofferrors.NewEmptyGeometry("polyline requires at least 2 points")
		}
		return geometry.ArithmeticMean(m.Points), nil
	case KindPolygon:
		if len(m.Points) < 3 {
			return geometry.Point2D{}, takeofferrors.NewEmptyGeometry("polygon requires at least 3 points")
		}
		return geometry.PolygonCentroid(m.Points), nil
	case KindRectangle:
		bb, err := m.rectangleBoundingBox()
		if err != nil {
			return geometry.Point2D{}, err
		}
		return geometry.Point2D{X: (bb.Min.X + bb.Max.X) / 2, Y: (bb.Min.Y + bb.Max.Y) / 2}, nil
	default:
		return geometry.Point2D{}, takeofferrors.NewEmptyGeometry("unknown measurement kind")
	}
}

// WithCentroidAt returns a copy of m with every point translated so its
// centroid lands at p. id/page_id/group_id/variant/point-count are preserved;
// area and length are invariant under this translation.
func (m Measurement) WithCentroidAt(p geometry.Point2D) (Measurement, error) {
	centroid, err := m.GetCentroid()
	if err != nil {
		return Measurement{}, err
	}
	delta := p.Sub(centroid)
	out := m
	out.Points = geometry.Translate(m.Points, delta)
	return out, nil
}

// ToGeometry returns the abstract point set used for Area-scale containment
// tests. For Rectangle this expands the two corners into the four-cornered
// bounding polygon so containment checks see the full shape.
func (m Measurement) ToGeometry() ([]geometry.Point2D, error) {
	if m.Kind == KindRectangle {
		bb, err := m.rectangleBoundingBox()
		if err != nil {
			return nil, err
		}
		return bb.Corners(), nil
	}
	return m.Points, nil
}

// PointCount returns the vertex count exposed to unit-aware callers: 1 for
// Count, n for Polyline/Polygon, 4 for Rectangle (its expanded corners).
func (m Measurement) PointCount() int {
	switch m.Kind {
	case KindRectangle:
		return 4
	default:
		return len(m.Points)
	}
}

// Count is always 1: a Measurement represents one takeoff entry regardless
// of how many vertices it carries.
func (m Measurement) Count() int {
	return 1
}
