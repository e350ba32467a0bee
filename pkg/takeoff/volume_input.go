package takeoff

import (
	"github.com/arx-os/takeoff/pkg/contour"
	takeofferrors "github.com/arx-os/takeoff/pkg/errors"
	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/volume"
)

// ReferenceKind discriminates the two ReferenceSurfaceInput variants.
type ReferenceKind string

const (
	ReferencePlane ReferenceKind = "Plane"
	ReferenceMesh  ReferenceKind = "Mesh"
)

// ReferenceInput is the plain-data form of a volumetric reference surface:
// a constant plane, or an arbitrary vertex cloud queried the same way the
// primary surface is.
type ReferenceInput struct {
	Kind     ReferenceKind      `json:"type"`
	Z        float64            `json:"z,omitempty"`
	Vertices []geometry.Point3D `json:"vertices,omitempty"`
}

// NewPlaneReferenceInput constructs a constant-elevation reference.
func NewPlaneReferenceInput(z float64) ReferenceInput {
	return ReferenceInput{Kind: ReferencePlane, Z: z}
}

// NewMeshReferenceInput constructs a reference surface from a raw vertex
// cloud.
func NewMeshReferenceInput(vertices []geometry.Point3D) ReferenceInput {
	return ReferenceInput{Kind: ReferenceMesh, Vertices: vertices}
}

func (r ReferenceInput) toReferenceSurface() (volume.ReferenceSurface, error) {
	switch r.Kind {
	case ReferencePlane:
		return volume.NewPlaneReference(r.Z), nil
	case ReferenceMesh:
		bb, ok := geometry.BoundingBoxOf(points2D(r.Vertices))
		if !ok {
			return volume.ReferenceSurface{}, takeofferrors.NewEmptyGeometry("reference mesh has no vertices")
		}
		mesh := contour.SurfaceMesh{Vertices: r.Vertices, BoundingBox: bb}
		return volume.NewMeshReference(&mesh), nil
	default:
		return volume.ReferenceSurface{}, takeofferrors.NewEmptyGeometry("unknown reference surface kind")
	}
}

func points2D(points []geometry.Point3D) []geometry.Point2D {
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = p.Point2D()
	}
	return out
}

// VolumeOutcome holds pixel-space volumetric totals plus the unit-aware
// conversion when a scale is bound.
type VolumeOutcome struct {
	Raw  volume.Result
	Unit *volume.UnitResult
}
