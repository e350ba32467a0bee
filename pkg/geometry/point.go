// Package geometry provides the 2D/3D primitives the takeoff engine builds
// on: points, polygon area, polyline length, bounding boxes, containment,
// and polyline simplification.
package geometry

import "math"

// Point2D is a point in pixel space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D constructs a Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point2D) DistanceTo(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns p + other.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Point3D is a point in pixel space with an elevation component stored in
// pixel-space units (see pkg/contour for the z-scaling convention).
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPoint3D constructs a Point3D.
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Point2D projects the point onto the xy plane, discarding elevation.
func (p Point3D) Point2D() Point2D {
	return Point2D{X: p.X, Y: p.Y}
}

// BoundingBox is an axis-aligned rectangle in pixel space.
type BoundingBox struct {
	Min Point2D
	Max Point2D
}

// NewBoundingBox normalizes two arbitrary corners into a Min/Max box.
func NewBoundingBox(a, b Point2D) BoundingBox {
	return BoundingBox{
		Min: Point2D{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point2D{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// BoundingBoxOf returns the axis-aligned hull of points, or false if points is empty.
func BoundingBoxOf(points []Point2D) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	bb := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bb.Min.X = math.Min(bb.Min.X, p.X)
		bb.Min.Y = math.Min(bb.Min.Y, p.Y)
		bb.Max.X = math.Max(bb.Max.X, p.X)
		bb.Max.Y = math.Max(bb.Max.Y, p.Y)
	}
	return bb, true
}

// Width returns the box's extent along x.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the box's extent along y.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies within the box, inclusive of the boundary.
func (b BoundingBox) Contains(p Point2D) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Corners returns the box's four corners in winding order, starting at Min.
func (b BoundingBox) Corners() []Point2D {
	return []Point2D{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// ContainsBox reports whether b fully contains other.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return other.Min.X >= b.Min.X && other.Max.X <= b.Max.X &&
		other.Min.Y >= b.Min.Y && other.Max.Y <= b.Max.Y
}
