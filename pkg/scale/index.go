package scale

import (
	"sort"
	"sync"

	"github.com/arx-os/takeoff/pkg/geometry"
	"github.com/dhconnelly/rtreego"
)

// rtreeDims is the dimensionality of the spatial index: plain 2D (x, y).
const rtreeDims = 2

// indexedArea is the rtreego.Spatial wrapper around an Area scale's
// bounding box, tagged with its original insertion order so candidate lists
// pulled from the tree can be re-sorted back into the order Resolve expects.
type indexedArea struct {
	scaleID string
	order   int
	bb      geometry.BoundingBox
}

func (e *indexedArea) Bounds() rtreego.Rect {
	width := e.bb.Width()
	height := e.bb.Height()
	if width <= 0 {
		width = 1e-9
	}
	if height <= 0 {
		height = 1e-9
	}
	rect, _ := rtreego.NewRect(rtreego.Point{e.bb.Min.X, e.bb.Min.Y}, []float64{width, height})
	return rect
}

// Index accelerates Area-scale candidate lookup for a single page using an
// R-tree over Area-scale bounding boxes, the same pattern used by the
// reference corpus's S-57 chart indexer for nearest/overlapping spatial
// queries (github.com/dhconnelly/rtreego). It never changes which scale
// wins — it only narrows the set Resolve has to exact-test, and candidates
// are always re-ordered back to insertion order before Resolve sees them so
// the documented first-containing-Area-wins tie-break is preserved exactly.
type Index struct {
	mu      sync.RWMutex
	tree    *rtreego.Rtree
	entries map[string]*indexedArea
	next    int
}

// NewIndex constructs an empty per-page scale index.
func NewIndex() *Index {
	return &Index{
		tree:    rtreego.NewTree(rtreeDims, 2, 5),
		entries: make(map[string]*indexedArea),
	}
}

// Insert adds an Area scale to the index. Non-Area scales are ignored —
// Default scales are never spatial, they fall out of the plain iteration in
// Resolve.
func (ix *Index) Insert(s Scale) {
	if s.Kind != KindArea || s.BoundingBox == nil {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	// A re-inserted ID keeps its first insertion order, the same way the
	// page's scale order keeps a replaced scale in its original slot.
	order := ix.next
	if old, ok := ix.entries[s.ID]; ok {
		ix.tree.Delete(old)
		order = old.order
	} else {
		ix.next++
	}
	e := &indexedArea{scaleID: s.ID, order: order, bb: *s.BoundingBox}
	ix.entries[s.ID] = e
	ix.tree.Insert(e)
}

// Remove drops a scale from the index.
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if e, ok := ix.entries[id]; ok {
		ix.tree.Delete(e)
		delete(ix.entries, id)
	}
}

// CandidateIDs returns the IDs of Area scales whose bounding box intersects
// the given geometry's bounding box, in original insertion order. This is a
// conservative over-approximation (bbox-intersects, not full containment) —
// callers must still run the exact Scale.IsInBoundingBox test on each
// candidate, in the order returned, to honor the documented tie-break.
func (ix *Index) CandidateIDs(geom []geometry.Point2D) []string {
	bb, ok := geometry.BoundingBoxOf(geom)
	if !ok {
		return nil
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	width := bb.Width()
	height := bb.Height()
	if width <= 0 {
		width = 1e-9
	}
	if height <= 0 {
		height = 1e-9
	}
	rect, err := rtreego.NewRect(rtreego.Point{bb.Min.X, bb.Min.Y}, []float64{width, height})
	if err != nil {
		return nil
	}

	hits := ix.tree.SearchIntersect(rect)
	candidates := make([]*indexedArea, 0, len(hits))
	for _, h := range hits {
		if e, ok := h.(*indexedArea); ok {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].order < candidates[j].order })

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.scaleID
	}
	return ids
}
