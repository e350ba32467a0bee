package geometry

import "math"

// PolygonArea computes the absolute shoelace area of a closed polygon given
// by its vertices in either winding order. Returns 0 for fewer than 3 points.
func PolygonArea(points []Point2D) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// PolygonPerimeter sums the closed-loop segment lengths, including the
// closing edge from the last vertex back to the first.
func PolygonPerimeter(points []Point2D) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += points[i].DistanceTo(points[j])
	}
	return total
}

// PolylineLength sums consecutive segment lengths; does not close the loop.
func PolylineLength(points []Point2D) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += points[i].DistanceTo(points[i+1])
	}
	return total
}

// PolygonCentroid returns the signed-area-weighted centroid of a closed
// polygon. Falls back to the arithmetic mean when the signed area is
// numerically zero (degenerate/collinear polygon).
func PolygonCentroid(points []Point2D) Point2D {
	n := len(points)
	if n == 0 {
		return Point2D{}
	}
	var signedArea, cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := points[i].X*points[j].Y - points[j].X*points[i].Y
		signedArea += cross
		cx += (points[i].X + points[j].X) * cross
		cy += (points[i].Y + points[j].Y) * cross
	}
	signedArea /= 2
	if math.Abs(signedArea) < 1e-12 {
		return ArithmeticMean(points)
	}
	return Point2D{
		X: cx / (6 * signedArea),
		Y: cy / (6 * signedArea),
	}
}

// ArithmeticMean returns the plain average of a set of points.
func ArithmeticMean(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point2D{X: sx / n, Y: sy / n}
}

// Translate returns points shifted by delta.
func Translate(points []Point2D, delta Point2D) []Point2D {
	out := make([]Point2D, len(points))
	for i, p := range points {
		out[i] = p.Add(delta)
	}
	return out
}

// PointInPolygon is a standard ray-casting containment test, inclusive of
// the boundary within a small epsilon. polygon must have at least 3 vertices.
func PointInPolygon(polygon []Point2D, p Point2D) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	if onBoundary(polygon, p) {
		return true
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		intersects := (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X
		if intersects {
			inside = !inside
		}
	}
	return inside
}

func onBoundary(polygon []Point2D, p Point2D) bool {
	n := len(polygon)
	const eps = 1e-9
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := polygon[i], polygon[j]
		if pointOnSegment(a, b, p, eps) {
			return true
		}
	}
	return false
}

func pointOnSegment(a, b, p Point2D, eps float64) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > eps {
		return false
	}
	dot := (p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)
	if dot < -eps {
		return false
	}
	squaredLen := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	return dot <= squaredLen+eps
}

// PolygonContainsPolygon reports whether every vertex of inner lies within
// outer. Used for Area-scale bounding-box containment of arbitrary
// measurement/contour geometry.
func PolygonContainsPolygon(outer, inner []Point2D) bool {
	if len(inner) == 0 {
		return false
	}
	for _, p := range inner {
		if !PointInPolygon(outer, p) {
			return false
		}
	}
	return true
}
