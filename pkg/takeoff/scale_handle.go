package takeoff

import (
	"github.com/arx-os/takeoff/pkg/scale"
)

// ScaleHandle is an opaque reference to a scale registered with State. The
// scale's own data lives in the page registry; the handle just carries the
// lookup key so callers don't need to thread pageID/id separately.
type ScaleHandle struct {
	state  *State
	pageID string
	id     string
}

// ID returns the scale's identifier.
func (h *ScaleHandle) ID() string { return h.id }

// PageID returns the page this scale applies to.
func (h *ScaleHandle) PageID() string { return h.pageID }

// Get returns the current scale definition.
func (h *ScaleHandle) Get() (scale.Scale, bool, error) {
	p, ok, err := h.state.existingPage(h.pageID)
	if err != nil || !ok {
		return scale.Scale{}, false, err
	}
	var sc scale.Scale
	var found bool
	err = p.guard.withRead(func() error {
		sc, found = p.scales[h.id]
		return nil
	})
	return sc, found, err
}
