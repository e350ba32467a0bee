// Package contour implements contour input modeling and surface-mesh
// reconstruction: turning 2D polylines and point-of-interest samples tagged
// with elevation into a queryable 3D point cloud.
package contour

import (
	"github.com/arx-os/takeoff/pkg/geometry"
	takeofferrors "github.com/arx-os/takeoff/pkg/errors"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/units"
)

// ContourLine is a 2D polyline whose vertices all share one elevation.
type ContourLine struct {
	Elevation float64            `json:"elevation"`
	Unit      units.Unit         `json:"unit"`
	Points    []geometry.Point2D `json:"points"`
}

// ContourPoint is a single (x, y, z) sample, typically a survey shot.
type ContourPoint struct {
	Elevation float64          `json:"elevation"`
	Unit      units.Unit       `json:"unit"`
	Point     geometry.Point2D `json:"point"`
}

// ContourInput is the raw, editable description of a contour map: the
// source of truth a SurfaceMesh is rebuilt from whenever it or its bound
// scale changes.
type ContourInput struct {
	ID               string         `json:"id"`
	Name             *string        `json:"name,omitempty"`
	PageID           string         `json:"page_id"`
	Lines            []ContourLine  `json:"lines"`
	PointsOfInterest []ContourPoint `json:"points_of_interest"`
}

// allPoints2D returns every vertex across lines and POIs, in the order the
// surface mesh emits them: line vertices in line order first, then POIs.
func (c ContourInput) allPoints2D() []geometry.Point2D {
	out := make([]geometry.Point2D, 0, c.vertexCount())
	for _, l := range c.Lines {
		out = append(out, l.Points...)
	}
	for _, p := range c.PointsOfInterest {
		out = append(out, p.Point)
	}
	return out
}

func (c ContourInput) vertexCount() int {
	n := len(c.PointsOfInterest)
	for _, l := range c.Lines {
		n += len(l.Points)
	}
	return n
}

// BoundingBox is the axis-aligned hull of every 2D vertex. Returns false if
// the contour has no points at all.
func (c ContourInput) BoundingBox() (geometry.BoundingBox, bool) {
	return geometry.BoundingBoxOf(c.allPoints2D())
}

// ToGeometry returns the contour's 2D vertex set, used for Area-scale
// containment tests during scale resolution.
func (c ContourInput) ToGeometry() []geometry.Point2D {
	return c.allPoints2D()
}

// ToSurfaceMesh builds the 3D point cloud for a bound scale: each elevation
// is converted from its own unit into the scale's unit, then scaled by the
// scale's pixel ratio so z lives in the same pixel-space coordinate system
// as x and y. Line vertices are emitted in line order first, then POIs in
// input order, matching the convention the volumetric integral depends on.
func (c ContourInput) ToSurfaceMesh(s scale.Scale) (SurfaceMesh, error) {
	ratio, err := s.Ratio()
	if err != nil {
		return SurfaceMesh{}, err
	}
	scaleUnit := s.GetUnit()

	vertices := make([]geometry.Point3D, 0, c.vertexCount())
	for _, line := range c.Lines {
		zPixel := units.ConvertLength(line.Elevation, line.Unit, scaleUnit) * ratio
		for _, p := range line.Points {
			vertices = append(vertices, geometry.NewPoint3D(p.X, p.Y, zPixel))
		}
	}
	for _, poi := range c.PointsOfInterest {
		zPixel := units.ConvertLength(poi.Elevation, poi.Unit, scaleUnit) * ratio
		vertices = append(vertices, geometry.NewPoint3D(poi.Point.X, poi.Point.Y, zPixel))
	}

	bb, ok := geometry.BoundingBoxOf(c.allPoints2D())
	if !ok {
		return SurfaceMesh{}, takeofferrors.NewEmptyGeometry("contour has no points")
	}

	mesh := SurfaceMesh{ID: c.ID, Name: c.Name, Vertices: vertices, BoundingBox: bb}
	if len(vertices) > exhaustiveThreshold {
		mesh.tree = buildIndex(vertices)
	}
	return mesh, nil
}
