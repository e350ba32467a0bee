package geometry

import "math"

// SimplifyPolyline implements the Ramer-Douglas-Peucker algorithm: it
// recursively retains the vertex farthest from the chord between the current
// segment's endpoints whenever that distance exceeds tolerance, and drops
// every intermediate vertex otherwise. Endpoints are always retained.
// Applying SimplifyPolyline to an already-simplified result with the same
// tolerance is a no-op.
func SimplifyPolyline(points []Point2D, tolerance float64) []Point2D {
	if len(points) < 3 {
		out := make([]Point2D, len(points))
		copy(out, points)
		return out
	}
	kept := rdp(points, tolerance)
	out := make([]Point2D, len(kept))
	copy(out, kept)
	return out
}

func rdp(points []Point2D, tolerance float64) []Point2D {
	n := len(points)
	if n < 3 {
		return points
	}

	first, last := points[0], points[n-1]
	maxDist := -1.0
	maxIdx := -1
	for i := 1; i < n-1; i++ {
		d := perpendicularDistance(points[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist > tolerance {
		left := rdp(points[:maxIdx+1], tolerance)
		right := rdp(points[maxIdx:], tolerance)
		result := make([]Point2D, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return []Point2D{first, last}
}

// perpendicularDistance returns the distance from p to the line through a-b
// (not the segment) — the standard RDP distance metric. Falls back to the
// distance from p to a when a and b coincide.
func perpendicularDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return p.DistanceTo(a)
	}
	num := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	den := math.Sqrt(dx*dx + dy*dy)
	return num / den
}
