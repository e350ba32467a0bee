// Package takeoff implements the process-wide State registry and the
// stateful handles (MeasurementHandle, ContourHandle, GroupHandle,
// ScaleHandle) that bind measurements and contours to scales and recompute
// their derived caches on every mutation.
package takeoff

import (
	"context"
	"sync/atomic"

	"github.com/arx-os/takeoff/internal/logger"
	"github.com/arx-os/takeoff/internal/metrics"
	"github.com/arx-os/takeoff/pkg/contour"
	"github.com/arx-os/takeoff/pkg/group"
	"github.com/arx-os/takeoff/pkg/measurement"
	"github.com/arx-os/takeoff/pkg/scale"
)

// page holds one page's registries. Lock ordering: State.mu, then
// page.guard, then a handle's own guard — never the reverse, and never two
// per-entity guards held at once.
type page struct {
	guard *guardedMutex

	measurements map[string]*MeasurementHandle
	scaleOrder   []string // insertion order, authoritative for Resolve's tie-break
	scales       map[string]scale.Scale
	scaleIdx     *scale.Index
	contours     map[string]*ContourHandle
}

func newPage() *page {
	return &page{
		guard:        newGuardedMutex("page"),
		measurements: make(map[string]*MeasurementHandle),
		scales:       make(map[string]scale.Scale),
		scaleIdx:     scale.NewIndex(),
		contours:     make(map[string]*ContourHandle),
	}
}

// State is the process-wide registry: PageID -> {measurements, scales,
// contours}, plus a flat group registry (groups are looked up by id alone,
// independent of page). It is the single invalidation authority — handles
// never observe each other directly, they always go through State.
type State struct {
	guard *guardedMutex
	pages map[string]*page

	groupsGuard *guardedMutex
	groups      map[string]*GroupHandle

	activeSurfaces int64 // atomic; count of contours with a currently-cached surface mesh

	metrics *metrics.Collector
	log     *logger.Logger
}

// New constructs an empty State. metrics and log may be nil; every call
// site tolerates a nil *metrics.Collector, and a nil *logger.Logger is
// replaced with logger.New("takeoff"), which writes Info and above to stdout.
func New(m *metrics.Collector, log *logger.Logger) *State {
	if log == nil {
		log = logger.New("takeoff")
	}
	return &State{
		guard:       newGuardedMutex("state"),
		pages:       make(map[string]*page),
		groupsGuard: newGuardedMutex("groups"),
		groups:      make(map[string]*GroupHandle),
		metrics:     m,
		log:         log,
	}
}

func (s *State) pageFor(pageID string) (*page, error) {
	var p *page
	err := s.guard.withWrite(func() error {
		existing, ok := s.pages[pageID]
		if !ok {
			existing = newPage()
			s.pages[pageID] = existing
		}
		p = existing
		return nil
	})
	return p, err
}

// adjustActiveSurfaces applies delta to the live surface-mesh count and
// republishes the resulting total as a gauge.
func (s *State) adjustActiveSurfaces(delta int64) {
	n := atomic.AddInt64(&s.activeSurfaces, delta)
	s.metrics.SetActiveSurfaces(int(n))
}

func (s *State) existingPage(pageID string) (*page, bool, error) {
	var p *page
	var ok bool
	err := s.guard.withRead(func() error {
		p, ok = s.pages[pageID]
		return nil
	})
	return p, ok, err
}

// --- Scales ---

// AddScale registers a scale on its page (in insertion order) and returns a
// ScaleHandle. Triggers re-resolution of every measurement and contour on
// that page.
func (s *State) AddScale(sc scale.Scale) (*ScaleHandle, error) {
	p, err := s.pageFor(sc.PageID)
	if err != nil {
		return nil, err
	}
	if err := p.guard.withWrite(func() error {
		if _, exists := p.scales[sc.ID]; !exists {
			p.scaleOrder = append(p.scaleOrder, sc.ID)
		}
		p.scales[sc.ID] = sc
		p.scaleIdx.Insert(sc)
		return nil
	}); err != nil {
		return nil, err
	}
	s.log.Debugf("scale added%s", logger.Fields("scale_id", sc.ID, "page_id", sc.PageID, "kind", sc.Kind))
	s.reresolvePage(sc.PageID)
	return &ScaleHandle{state: s, pageID: sc.PageID, id: sc.ID}, nil
}

// RemoveScale drops a scale from its page and re-resolves every
// measurement/contour that might have been bound to it.
func (s *State) RemoveScale(pageID, id string) error {
	p, ok, err := s.existingPage(pageID)
	if err != nil || !ok {
		return err
	}
	if err := p.guard.withWrite(func() error {
		delete(p.scales, id)
		p.scaleIdx.Remove(id)
		for i, sid := range p.scaleOrder {
			if sid == id {
				p.scaleOrder = append(p.scaleOrder[:i], p.scaleOrder[i+1:]...)
				break
			}
		}
		return nil
	}); err != nil {
		return err
	}
	s.log.Debugf("scale removed%s", logger.Fields("scale_id", id, "page_id", pageID))
	s.reresolvePage(pageID)
	return nil
}

// GetPageScales returns the page's scales in insertion order — the order
// Resolve's tie-break depends on.
func (s *State) GetPageScales(pageID string) ([]scale.Scale, error) {
	p, ok, err := s.existingPage(pageID)
	if err != nil || !ok {
		return nil, err
	}
	var out []scale.Scale
	err = p.guard.withRead(func() error {
		out = make([]scale.Scale, 0, len(p.scaleOrder))
		for _, id := range p.scaleOrder {
			out = append(out, p.scales[id])
		}
		return nil
	})
	return out, err
}

// reresolvePage re-runs scale resolution for every measurement and contour
// on the page and rebuilds surface meshes / group caches as a consequence.
func (s *State) reresolvePage(pageID string) {
	p, ok, err := s.existingPage(pageID)
	if err != nil || !ok {
		return
	}
	var measurements []*MeasurementHandle
	var contours []*ContourHandle
	_ = p.guard.withRead(func() error {
		for _, m := range p.measurements {
			measurements = append(measurements, m)
		}
		for _, c := range p.contours {
			contours = append(contours, c)
		}
		return nil
	})
	groupIDs := make(map[string]struct{})
	for _, m := range measurements {
		_ = m.resolveScale()
		groupIDs[m.GroupID()] = struct{}{}
	}
	for _, c := range contours {
		_ = c.resolveScale()
	}
	for id := range groupIDs {
		_, _ = s.ComputeGroup(id)
	}
}

// --- Measurements ---

// AddMeasurement registers a measurement, resolves its scale, and triggers
// recomputation of its owning group.
func (s *State) AddMeasurement(m measurement.Measurement) (*MeasurementHandle, error) {
	p, err := s.pageFor(m.PageID)
	if err != nil {
		return nil, err
	}
	h := &MeasurementHandle{
		state:       s,
		guard:       newGuardedMutex("measurement:" + m.ID),
		measurement: m,
	}
	if err := p.guard.withWrite(func() error {
		p.measurements[m.ID] = h
		return nil
	}); err != nil {
		return nil, err
	}
	_ = h.resolveScale()
	_, _ = s.ComputeGroup(m.GroupID)
	return h, nil
}

// RemoveMeasurement drops a measurement and recomputes its former group.
func (s *State) RemoveMeasurement(pageID, id string) error {
	p, ok, err := s.existingPage(pageID)
	if err != nil || !ok {
		return err
	}
	var groupID string
	if err := p.guard.withWrite(func() error {
		if h, exists := p.measurements[id]; exists {
			groupID = h.measurement.GroupID
			delete(p.measurements, id)
		}
		return nil
	}); err != nil {
		return err
	}
	if groupID != "" {
		_, _ = s.ComputeGroup(groupID)
	}
	return nil
}

// ReplaceMeasurement swaps a measurement's underlying geometry, re-resolves
// its scale, and recomputes its group (old and new, if they differ).
func (s *State) ReplaceMeasurement(id string, m measurement.Measurement) error {
	p, err := s.pageFor(m.PageID)
	if err != nil {
		return err
	}
	var h *MeasurementHandle
	var oldGroupID string
	if err := p.guard.withWrite(func() error {
		existing, ok := p.measurements[id]
		if !ok {
			existing = &MeasurementHandle{state: s, guard: newGuardedMutex("measurement:" + id)}
			p.measurements[id] = existing
		} else {
			oldGroupID = existing.measurement.GroupID
		}
		h = existing
		return nil
	}); err != nil {
		return err
	}
	if err := h.setMeasurement(m); err != nil {
		return err
	}
	if oldGroupID != "" && oldGroupID != m.GroupID {
		_, _ = s.ComputeGroup(oldGroupID)
	}
	_, _ = s.ComputeGroup(m.GroupID)
	return nil
}

// GetMeasurementsByGroupID returns every measurement handle on any page
// currently tagged with groupID.
func (s *State) GetMeasurementsByGroupID(groupID string) ([]*MeasurementHandle, error) {
	var out []*MeasurementHandle
	err := s.guard.withRead(func() error {
		for _, p := range s.pages {
			_ = p.guard.withRead(func() error {
				for _, h := range p.measurements {
					if h.measurement.GroupID == groupID {
						out = append(out, h)
					}
				}
				return nil
			})
		}
		return nil
	})
	return out, err
}

// --- Contours ---

// AddContour registers a contour, resolves its scale, and rebuilds its
// surface mesh.
func (s *State) AddContour(c contour.ContourInput) (*ContourHandle, error) {
	p, err := s.pageFor(c.PageID)
	if err != nil {
		return nil, err
	}
	h := &ContourHandle{
		state:   s,
		guard:   newGuardedMutex("contour:" + c.ID),
		contour: c,
	}
	if err := p.guard.withWrite(func() error {
		p.contours[c.ID] = h
		return nil
	}); err != nil {
		return nil, err
	}
	_ = h.resolveScale()
	return h, nil
}

// RemoveContour drops a contour from its page.
func (s *State) RemoveContour(pageID, id string) error {
	p, ok, err := s.existingPage(pageID)
	if err != nil || !ok {
		return err
	}
	return p.guard.withWrite(func() error {
		delete(p.contours, id)
		return nil
	})
}

// GetPageContours returns every contour input currently registered on a
// page.
func (s *State) GetPageContours(pageID string) ([]contour.ContourInput, error) {
	p, ok, err := s.existingPage(pageID)
	if err != nil || !ok {
		return nil, err
	}
	var out []contour.ContourInput
	err = p.guard.withRead(func() error {
		for _, h := range p.contours {
			out = append(out, h.snapshot())
		}
		return nil
	})
	return out, err
}

// --- Groups ---

// ComputeGroup recomputes and caches a group's aggregated totals from its
// current measurement membership.
func (s *State) ComputeGroup(groupID string) (group.Totals, error) {
	members, err := s.GetMeasurementsByGroupID(groupID)
	if err != nil {
		return group.Totals{}, err
	}
	groupMembers := make([]group.Member, 0, len(members))
	for _, h := range members {
		m, sc := h.snapshot()
		groupMembers = append(groupMembers, group.Member{Measurement: m, Scale: sc})
	}
	totals := group.Compute(groupMembers)

	gh := s.groupHandle(groupID)
	gh.setTotals(totals)
	return totals, nil
}

// groupHandle returns the GroupHandle for groupID, creating one on first
// use. Groups are looked up by id alone — a measurement's group_id need not
// share its page_id with every other member.
func (s *State) groupHandle(groupID string) *GroupHandle {
	var found *GroupHandle
	_ = s.groupsGuard.withWrite(func() error {
		if gh, ok := s.groups[groupID]; ok {
			found = gh
			return nil
		}
		gh := &GroupHandle{guard: newGuardedMutex("group:" + groupID), id: groupID}
		s.groups[groupID] = gh
		found = gh
		return nil
	})
	return found
}

// GroupHandle returns the handle for groupID, creating it if it doesn't yet
// exist. Exposed so callers can read Totals() without forcing a recompute.
func (s *State) GroupHandle(groupID string) *GroupHandle {
	return s.groupHandle(groupID)
}

// VolumeAgainst runs Riemann-sum cut/fill integration for a contour's
// current surface mesh against reference, honoring ctx cancellation.
func (s *State) VolumeAgainst(ctx context.Context, pageID, contourID string, reference ReferenceInput, cellSize float64) (VolumeOutcome, error) {
	p, ok, err := s.existingPage(pageID)
	if err != nil {
		return VolumeOutcome{}, err
	}
	if !ok {
		return VolumeOutcome{}, nil
	}
	var h *ContourHandle
	_ = p.guard.withRead(func() error {
		h = p.contours[contourID]
		return nil
	})
	if h == nil {
		return VolumeOutcome{}, nil
	}
	return h.volumeAgainst(ctx, reference, cellSize)
}
