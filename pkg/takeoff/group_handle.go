package takeoff

import "github.com/arx-os/takeoff/pkg/group"

// GroupHandle is the stateful wrapper around a Group: it caches the
// aggregated totals State.ComputeGroup last produced.
type GroupHandle struct {
	guard *guardedMutex

	id     string
	totals group.Totals
}

// ID returns the group's identifier.
func (h *GroupHandle) ID() string { return h.id }

// Totals returns the most recently computed aggregates.
func (h *GroupHandle) Totals() group.Totals {
	var t group.Totals
	_ = h.guard.withRead(func() error { t = h.totals; return nil })
	return t
}

func (h *GroupHandle) setTotals(t group.Totals) {
	_ = h.guard.withWrite(func() error { h.totals = t; return nil })
}
