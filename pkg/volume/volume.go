// Package volume implements cut/fill volumetrics: a Riemann-sum grid
// integration of a surface mesh against a reference plane or mesh.
package volume

import (
	"context"
	"math"

	"github.com/arx-os/takeoff/pkg/contour"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/units"
	"golang.org/x/sync/errgroup"
)

// defaultCellSize is used when no cell size is supplied or a non-positive
// one is given.
const defaultCellSize = 1.0

// ReferenceKind discriminates the two ReferenceSurface variants.
type ReferenceKind string

const (
	ReferencePlane ReferenceKind = "Plane"
	ReferenceMesh  ReferenceKind = "Mesh"
)

// ReferenceSurface is a tagged variant: a constant elevation plane, or an
// arbitrary mesh queried by the same z_at interpolation as the primary
// surface.
type ReferenceSurface struct {
	Kind ReferenceKind        `json:"type"`
	Z    float64              `json:"z,omitempty"`
	Mesh *contour.SurfaceMesh `json:"mesh,omitempty"`
}

// NewPlaneReference constructs a constant-elevation reference surface.
func NewPlaneReference(z float64) ReferenceSurface {
	return ReferenceSurface{Kind: ReferencePlane, Z: z}
}

// NewMeshReference constructs a reference surface backed by another mesh.
func NewMeshReference(mesh *contour.SurfaceMesh) ReferenceSurface {
	return ReferenceSurface{Kind: ReferenceMesh, Mesh: mesh}
}

// zAt returns the reference surface's elevation at (x, y); false if
// undefined (mesh has no coverage there).
func (r ReferenceSurface) zAt(x, y float64) (float64, bool) {
	switch r.Kind {
	case ReferencePlane:
		return r.Z, true
	case ReferenceMesh:
		if r.Mesh == nil {
			return 0, false
		}
		return r.Mesh.ZAt(x, y)
	default:
		return 0, false
	}
}

// Result holds pixel-space cut/fill/uncovered-area totals from a grid
// integration.
type Result struct {
	Cut            float64
	Fill           float64
	UncoveredArea  float64
	CellsEvaluated int64
}

// VolumeAgainst runs the Riemann-sum grid integration of surface against
// reference over surface's bounding box, in pixel space. cellSize <= 0
// falls back to defaultCellSize. Row bands are summed concurrently via
// errgroup; ctx cancellation is honored between bands.
func VolumeAgainst(ctx context.Context, surface *contour.SurfaceMesh, reference ReferenceSurface, cellSize float64) (Result, error) {
	c := cellSize
	if c <= 0 {
		c = defaultCellSize
	}

	xStart := surface.BoundingBox.Min.X + c/2
	xEnd := surface.BoundingBox.Max.X
	yStart := surface.BoundingBox.Min.Y + c/2
	yEnd := surface.BoundingBox.Max.Y

	rows := int(math.Ceil((yEnd - yStart) / c))
	if rows < 1 {
		rows = 1
	}

	partials := make([]Result, rows)

	g, gctx := errgroup.WithContext(ctx)
	for row := 0; row < rows; row++ {
		row := row
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y := yStart + float64(row)*c
			var partial Result
			for x := xStart; x <= xEnd; x += c {
				cellArea := c * c
				partial.CellsEvaluated++
				zs, okS := surface.ZAt(x, y)
				if !okS {
					partial.UncoveredArea += cellArea
					continue
				}
				zr, okR := reference.zAt(x, y)
				if !okR {
					partial.UncoveredArea += cellArea
					continue
				}
				delta := zs - zr
				if delta > 0 {
					partial.Fill += delta * cellArea
				} else if delta < 0 {
					partial.Cut += -delta * cellArea
				}
			}
			partials[row] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, p := range partials {
		total.Cut += p.Cut
		total.Fill += p.Fill
		total.UncoveredArea += p.UncoveredArea
		total.CellsEvaluated += p.CellsEvaluated
	}
	return total, nil
}

// UnitResult holds cut/fill/uncovered-area converted into a bound scale's
// real-world unit.
type UnitResult struct {
	Cut           units.UnitValue
	Fill          units.UnitValue
	UncoveredArea units.UnitValue
}

// ToUnitResult converts a pixel-space Result using the scale's ratio and
// unit: volume by ratio cubed, area by ratio squared.
func (r Result) ToUnitResult(s scale.Scale) (UnitResult, error) {
	ratio, err := s.Ratio()
	if err != nil {
		return UnitResult{}, err
	}
	u := s.GetUnit()
	ratioCubed := ratio * ratio * ratio
	ratioSquared := ratio * ratio

	return UnitResult{
		Cut:           units.FromVolume(r.Cut/ratioCubed, u),
		Fill:          units.FromVolume(r.Fill/ratioCubed, u),
		UncoveredArea: units.FromArea(r.UncoveredArea/ratioSquared, u),
	}, nil
}
