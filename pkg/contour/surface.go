package contour

import (
	"math"

	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/dhconnelly/rtreego"
)

// idwK is the number of nearest neighbors used for inverse-distance-weighted
// z interpolation once the cloud is large enough for an R-tree to pay off.
const idwK = 8

// idwEpsilon guards against division by zero when a query point coincides
// with a sample.
const idwEpsilon = 1e-9

// exhaustiveThreshold is the vertex count below which z_at scans the whole
// cloud instead of building an R-tree — not worth the index overhead for a
// handful of points.
const exhaustiveThreshold = 32

// SurfaceMesh is a derived, immutable snapshot of a contour's 3D point
// cloud: rebuilt whenever the owning contour or its bound scale changes,
// never mutated in place.
type SurfaceMesh struct {
	ID          string
	Name        *string
	Vertices    []geometry.Point3D
	BoundingBox geometry.BoundingBox

	tree *rtreego.Rtree
}

type meshVertex struct {
	p geometry.Point3D
}

func (v meshVertex) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{v.p.X, v.p.Y}, []float64{1e-9, 1e-9})
	return rect
}

// buildIndex builds an R-tree over vertices. Called once, eagerly, while a
// SurfaceMesh is still under construction (see ToSurfaceMesh) — never after,
// so a mesh's tree field is either fully built or permanently nil by the
// time it's handed to concurrent readers, and ZAt never has to write it.
func buildIndex(vertices []geometry.Point3D) *rtreego.Rtree {
	tree := rtreego.NewTree(2, 4, 10)
	for _, v := range vertices {
		tree.Insert(meshVertex{v})
	}
	return tree
}

// ZAt returns the interpolated elevation at (x, y), or false if the mesh is
// empty or (x, y) lies outside its bounding box — the latter is the
// "uncovered" signal volumetric integration relies on.
func (m *SurfaceMesh) ZAt(x, y float64) (float64, bool) {
	if len(m.Vertices) == 0 {
		return 0, false
	}
	if !m.BoundingBox.Contains(geometry.Point2D{X: x, Y: y}) {
		return 0, false
	}

	neighbors := m.nearestVertices(x, y, idwK)

	var weightedSum, weightSum float64
	for _, v := range neighbors {
		dx := v.X - x
		dy := v.Y - y
		d2 := dx*dx + dy*dy
		if d2 < idwEpsilon {
			return v.Z, true
		}
		w := 1 / math.Max(d2, idwEpsilon)
		weightedSum += w * v.Z
		weightSum += w
	}
	if weightSum == 0 {
		return 0, false
	}
	return weightedSum / weightSum, true
}

// nearestVertices returns up to k vertices nearest to (x, y). Below
// exhaustiveThreshold (or if no index was built for this mesh) it scans
// linearly; above it, it queries the R-tree built eagerly by ToSurfaceMesh.
func (m *SurfaceMesh) nearestVertices(x, y float64, k int) []geometry.Point3D {
	if m.tree == nil || len(m.Vertices) <= exhaustiveThreshold || k >= len(m.Vertices) {
		return m.Vertices
	}

	hits := m.tree.NearestNeighbors(k, rtreego.Point{x, y})
	out := make([]geometry.Point3D, 0, len(hits))
	for _, h := range hits {
		if v, ok := h.(meshVertex); ok {
			out = append(out, v.p)
		}
	}
	return out
}

// Scatter samples the mesh on an integer lattice over its bounding box,
// stepping by step in both axes (floor of min, ceil of max as grid bounds),
// skipping lattice points whose z_at is undefined. Returns false if
// step <= 0.
func (m *SurfaceMesh) Scatter(step int) ([]geometry.Point3D, bool) {
	if step <= 0 {
		return nil, false
	}

	xStart := int(math.Floor(m.BoundingBox.Min.X))
	xEnd := int(math.Ceil(m.BoundingBox.Max.X))
	yStart := int(math.Floor(m.BoundingBox.Min.Y))
	yEnd := int(math.Ceil(m.BoundingBox.Max.Y))

	var out []geometry.Point3D
	for x := xStart; x <= xEnd; x += step {
		for y := yStart; y <= yEnd; y += step {
			if z, ok := m.ZAt(float64(x), float64(y)); ok {
				out = append(out, geometry.NewPoint3D(float64(x), float64(y), z))
			}
		}
	}
	return out, true
}
