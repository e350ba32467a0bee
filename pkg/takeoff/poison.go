package takeoff

import (
	"sync"

	takeofferrors "github.com/arx-os/takeoff/pkg/errors"
)

// guardedMutex is a sync.RWMutex that poisons itself if a writer panics
// while holding the lock: a panic mid-mutation can leave cached derived
// state half-written, so every subsequent access fails closed with
// MutexPoisoned rather than silently reading partial state. Go's
// sync.Mutex has no native poisoning, so this tracks it explicitly.
type guardedMutex struct {
	mu       sync.RWMutex
	which    string
	poisoned bool
	pmu      sync.Mutex
}

func newGuardedMutex(which string) *guardedMutex {
	return &guardedMutex{which: which}
}

func (g *guardedMutex) isPoisoned() bool {
	g.pmu.Lock()
	defer g.pmu.Unlock()
	return g.poisoned
}

func (g *guardedMutex) poison() {
	g.pmu.Lock()
	g.poisoned = true
	g.pmu.Unlock()
}

// withWrite runs fn under an exclusive lock, poisoning the mutex if fn
// panics and re-raising. Returns MutexPoisoned if already poisoned.
func (g *guardedMutex) withWrite(fn func() error) error {
	if g.isPoisoned() {
		return takeofferrors.NewMutexPoisoned(g.which)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	done := false
	defer func() {
		if !done {
			g.poison()
		}
	}()
	err := fn()
	done = true
	return err
}

// withRead runs fn under a shared lock. Returns MutexPoisoned if the
// mutex was poisoned by a prior writer panic.
func (g *guardedMutex) withRead(fn func() error) error {
	if g.isPoisoned() {
		return takeofferrors.NewMutexPoisoned(g.which)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn()
}
