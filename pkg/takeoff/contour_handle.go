package takeoff

import (
	"context"
	"time"

	"github.com/arx-os/takeoff/internal/logger"
	"github.com/arx-os/takeoff/pkg/contour"
	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/arx-os/takeoff/pkg/scale"
	"github.com/arx-os/takeoff/pkg/volume"
	"golang.org/x/sync/singleflight"
)

// ContourHandle is the stateful wrapper around a ContourInput: it owns the
// bound scale and the derived SurfaceMesh, rebuilding the mesh whenever
// either changes. Concurrent rebuild requests for the same handle (from
// racing contour or scale mutations) are deduplicated via singleflight so
// they share one reconstruction; reads never trigger a rebuild.
type ContourHandle struct {
	state *State
	guard *guardedMutex

	contour contour.ContourInput
	scale   *scale.Scale
	mesh    *contour.SurfaceMesh

	rebuild singleflight.Group
}

// ID returns the contour's identifier.
func (h *ContourHandle) ID() string {
	var v string
	_ = h.guard.withRead(func() error { v = h.contour.ID; return nil })
	return v
}

// PageID returns the owning page.
func (h *ContourHandle) PageID() string {
	var v string
	_ = h.guard.withRead(func() error { v = h.contour.PageID; return nil })
	return v
}

// snapshot returns a copy of the underlying contour input.
func (h *ContourHandle) snapshot() contour.ContourInput {
	var c contour.ContourInput
	_ = h.guard.withRead(func() error { c = h.contour; return nil })
	return c
}

// setContour replaces the contour's input data and rebuilds its surface
// mesh.
func (h *ContourHandle) setContour(c contour.ContourInput) error {
	if err := h.guard.withWrite(func() error {
		h.contour = c
		return nil
	}); err != nil {
		return err
	}
	return h.rebuildMesh()
}

// resolveScale re-runs scale resolution against the page's current scales
// and rebuilds the surface mesh on any change.
func (h *ContourHandle) resolveScale() error {
	pageID := h.PageID()
	p, ok, err := h.state.existingPage(pageID)
	if err != nil || !ok {
		return err
	}

	var geom []geometry.Point2D
	_ = h.guard.withRead(func() error {
		geom = h.contour.ToGeometry()
		return nil
	})

	var resolved scale.Scale
	var found bool
	_ = p.guard.withRead(func() error {
		resolved, found = scale.ResolveIndexed(p.scaleIdx, p.scales, p.scaleOrder, geom)
		return nil
	})
	if err := h.guard.withWrite(func() error {
		if found {
			cp := resolved
			h.scale = &cp
		} else {
			h.scale = nil
			h.state.metrics.IncResolutionMiss(pageID)
			h.state.log.Warnf("contour unresolved, falling back to no scale%s",
				logger.Fields("contour_id", h.contour.ID, "page_id", pageID))
		}
		return nil
	}); err != nil {
		return err
	}
	return h.rebuildMesh()
}

// rebuildMesh recomputes the surface mesh from the current contour and
// scale, clearing it if no scale is bound. Deduplicated via singleflight:
// concurrent callers racing this rebuild share one reconstruction.
func (h *ContourHandle) rebuildMesh() error {
	_, err, _ := h.rebuild.Do("mesh", func() (interface{}, error) {
		var c contour.ContourInput
		var s *scale.Scale
		hadMesh := false
		_ = h.guard.withRead(func() error {
			c = h.contour
			hadMesh = h.mesh != nil
			if h.scale != nil {
				cp := *h.scale
				s = &cp
			}
			return nil
		})

		var newMesh *contour.SurfaceMesh
		if s != nil {
			m, merr := c.ToSurfaceMesh(*s)
			if merr == nil {
				newMesh = &m
			}
		}

		werr := h.guard.withWrite(func() error {
			h.mesh = newMesh
			return nil
		})

		switch {
		case !hadMesh && newMesh != nil:
			h.state.adjustActiveSurfaces(1)
		case hadMesh && newMesh == nil:
			h.state.adjustActiveSurfaces(-1)
		}
		return nil, werr
	})
	return err
}

// SurfacePoints returns the mesh's vertex cloud, nil if no scale is bound.
func (h *ContourHandle) SurfacePoints() []geometry.Point3D {
	var out []geometry.Point3D
	_ = h.guard.withRead(func() error {
		if h.mesh != nil {
			out = h.mesh.Vertices
		}
		return nil
	})
	return out
}

// ZAt queries the current surface mesh at (x, y); false if no mesh is
// bound or the point is outside its bounding box.
func (h *ContourHandle) ZAt(x, y float64) (float64, bool) {
	var mesh *contour.SurfaceMesh
	_ = h.guard.withRead(func() error { mesh = h.mesh; return nil })
	if mesh == nil {
		return 0, false
	}
	return mesh.ZAt(x, y)
}

// Scatter samples the current surface mesh on an integer lattice; false if
// no mesh is bound or step <= 0.
func (h *ContourHandle) Scatter(step int) ([]geometry.Point3D, bool) {
	var mesh *contour.SurfaceMesh
	_ = h.guard.withRead(func() error { mesh = h.mesh; return nil })
	if mesh == nil {
		return nil, false
	}
	return mesh.Scatter(step)
}

// volumeAgainst runs cut/fill integration of the current surface mesh
// against reference, converting to the bound scale's unit when available.
func (h *ContourHandle) volumeAgainst(ctx context.Context, reference ReferenceInput, cellSize float64) (VolumeOutcome, error) {
	start := time.Now()
	var mesh *contour.SurfaceMesh
	var s *scale.Scale
	_ = h.guard.withRead(func() error {
		mesh = h.mesh
		if h.scale != nil {
			cp := *h.scale
			s = &cp
		}
		return nil
	})
	if mesh == nil {
		return VolumeOutcome{}, nil
	}

	ref, err := reference.toReferenceSurface()
	if err != nil {
		h.state.metrics.ObserveOperation("volume_against", "error", time.Since(start))
		return VolumeOutcome{}, err
	}

	raw, err := volume.VolumeAgainst(ctx, mesh, ref, cellSize)
	if err != nil {
		h.state.metrics.ObserveOperation("volume_against", "error", time.Since(start))
		return VolumeOutcome{}, err
	}
	h.state.metrics.AddVolumeCells(int(raw.CellsEvaluated))
	h.state.metrics.ObserveOperation("volume_against", "ok", time.Since(start))

	outcome := VolumeOutcome{Raw: raw}
	if s != nil {
		unitResult, uerr := raw.ToUnitResult(*s)
		if uerr == nil {
			outcome.Unit = &unitResult
		}
	}
	return outcome, nil
}
