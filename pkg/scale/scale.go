// Package scale implements the per-page pixel-to-real conversion model:
// ScaleDefinition (the raw ratio), Scale (Default vs area-scoped variants),
// and the scale-resolution algorithm measurements and contours bind through.
package scale

import (
	"fmt"

	"github.com/arx-os/takeoff/pkg/geometry"
	takeofferrors "github.com/arx-os/takeoff/pkg/errors"
	"github.com/arx-os/takeoff/pkg/units"
)

// ScaleDefinition is the raw pixel/real ratio and its unit.
type ScaleDefinition struct {
	PixelDistance float64    `json:"pixel_distance"`
	RealDistance  float64    `json:"real_distance"`
	Unit          units.Unit `json:"unit"`
}

// Validate reports InvalidScale if either distance is non-positive.
func (d ScaleDefinition) Validate() error {
	if d.PixelDistance <= 0 {
		return takeofferrors.NewInvalidScale(fmt.Sprintf("pixel_distance must be positive, got %v", d.PixelDistance))
	}
	if d.RealDistance <= 0 {
		return takeofferrors.NewInvalidScale(fmt.Sprintf("real_distance must be positive, got %v", d.RealDistance))
	}
	return nil
}

// Ratio returns pixel_distance / real_distance (pixels per real unit).
func (d ScaleDefinition) Ratio() (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return d.PixelDistance / d.RealDistance, nil
}

// Kind discriminates the two Scale variants.
type Kind string

const (
	KindDefault Kind = "Default"
	KindArea    Kind = "Area"
)

// Scale is a tagged variant: a Default scale applies to an entire page, an
// Area scale applies only within its bounding box. The Kind field is the
// JSON discriminant, serialized as "type".
type Scale struct {
	Kind       Kind                  `json:"type"`
	ID         string                `json:"id"`
	PageID     string                `json:"page_id"`
	Definition ScaleDefinition       `json:"scale"`
	// BoundingBox is set only for Area scales; the two corners may be given
	// in any order and are normalized on construction.
	BoundingBox *geometry.BoundingBox `json:"bounding_box,omitempty"`
}

// NewDefault constructs a page-wide Default scale.
func NewDefault(id, pageID string, def ScaleDefinition) Scale {
	return Scale{Kind: KindDefault, ID: id, PageID: pageID, Definition: def}
}

// NewArea constructs an Area scale bound to the rectangle spanned by a and b.
func NewArea(id, pageID string, def ScaleDefinition, a, b geometry.Point2D) Scale {
	bb := geometry.NewBoundingBox(a, b)
	return Scale{Kind: KindArea, ID: id, PageID: pageID, Definition: def, BoundingBox: &bb}
}

// Validate reports InvalidScale if the underlying definition is invalid.
func (s Scale) Validate() error {
	return s.Definition.Validate()
}

// Ratio returns the scale's pixels-per-real-unit ratio.
func (s Scale) Ratio() (float64, error) {
	return s.Definition.Ratio()
}

// GetUnit returns the scale's real-world unit.
func (s Scale) GetUnit() units.Unit {
	return s.Definition.Unit
}

// BoundingBoxPolygon returns the Area scale's rectangle as a polygon (for
// containment testing). Returns false for Default scales.
func (s Scale) BoundingBoxPolygon() ([]geometry.Point2D, bool) {
	if s.Kind != KindArea || s.BoundingBox == nil {
		return nil, false
	}
	return s.BoundingBox.Corners(), true
}

// IsInBoundingBox reports whether geometry is fully contained within the
// scale's rectangle. Always false for Default scales.
func (s Scale) IsInBoundingBox(geom []geometry.Point2D) bool {
	poly, ok := s.BoundingBoxPolygon()
	if !ok {
		return false
	}
	return geometry.PolygonContainsPolygon(poly, geom)
}

// Resolve implements the scale-resolution algorithm shared by measurements
// and contours: iterate scales in order, remembering the last Default seen;
// bind immediately to the first Area scale whose bounding box contains geom;
// otherwise bind to the last Default seen. Ties between multiple containing
// Area scales are broken by this iteration order — the first one wins. The
// caller is responsible for passing scales in stable (e.g. insertion) order.
func Resolve(scales []Scale, geom []geometry.Point2D) (Scale, bool) {
	var lastDefault Scale
	haveDefault := false
	for _, s := range scales {
		if s.Kind == KindArea {
			if s.IsInBoundingBox(geom) {
				return s, true
			}
			continue
		}
		lastDefault = s
		haveDefault = true
	}
	if haveDefault {
		return lastDefault, true
	}
	return Scale{}, false
}

// ResolveIndexed is Resolve accelerated by an Index: instead of running the
// exact bounding-box containment test against every Area scale on the page,
// it only tests the candidates the R-tree returns as bbox-intersecting,
// still in insertion order so the first-containing-Area tie-break holds.
// The last-Default fallback still requires one pass over order, since a
// page-wide Default carries no spatial extent to index.
func ResolveIndexed(ix *Index, scales map[string]Scale, order []string, geom []geometry.Point2D) (Scale, bool) {
	var lastDefault Scale
	haveDefault := false
	for _, id := range order {
		if s, ok := scales[id]; ok && s.Kind == KindDefault {
			lastDefault = s
			haveDefault = true
		}
	}
	for _, id := range ix.CandidateIDs(geom) {
		if s, ok := scales[id]; ok && s.IsInBoundingBox(geom) {
			return s, true
		}
	}
	if haveDefault {
		return lastDefault, true
	}
	return Scale{}, false
}
