// internal/view/sync.go
package view

import (
	"errors"
	"log"
	"sync"
	"time"

	"storefront/internal/platform/bus"
	"storefront/internal/storage"
)

// DefaultRetrySchedule matches the badge's historical behavior: an
// immediate attempt plus a few short retries while the header fragment
// finishes loading. Bounded on purpose, never open-ended polling.
var DefaultRetrySchedule = []time.Duration{
	0,
	100 * time.Millisecond,
	300 * time.Millisecond,
	500 * time.Millisecond,
}

// Sync keeps every registered surface in agreement with the persisted
// cart. It refreshes on local mutations (bus broadcast), on cross-handle
// storage events, and on demand. One surface failing to render never
// stops the others.
type Sync struct {
	mu       sync.Mutex
	surfaces []Surface
	schedule []time.Duration
}

func NewSync() *Sync {
	return &Sync{schedule: DefaultRetrySchedule}
}

// NewSyncWithRetrySchedule is useful for tests and for embedders with
// different header-load timing. An empty schedule means a single attempt.
func NewSyncWithRetrySchedule(schedule []time.Duration) *Sync {
	if len(schedule) == 0 {
		schedule = []time.Duration{0}
	}
	return &Sync{schedule: append([]time.Duration(nil), schedule...)}
}

func (s *Sync) Register(surface Surface) {
	if surface == nil {
		return
	}
	s.mu.Lock()
	s.surfaces = append(s.surfaces, surface)
	s.mu.Unlock()
}

// RefreshAll re-renders every registered surface independently. Render
// errors are logged and skipped; an unmounted surface is normal while its
// page fragment is still loading.
func (s *Sync) RefreshAll() {
	s.mu.Lock()
	surfaces := append([]Surface(nil), s.surfaces...)
	s.mu.Unlock()

	for _, surface := range surfaces {
		if err := surface.Render(); err != nil {
			if errors.Is(err, ErrNotMounted) {
				continue
			}
			log.Printf("[view_sync] render %s: %v", surface.Name(), err)
		}
	}
}

// EnsureRendered renders a surface whose mount point may not exist yet,
// retrying on the configured schedule and giving up after the last slot.
// Used for the header badge right after page load.
func (s *Sync) EnsureRendered(surface Surface) {
	s.mu.Lock()
	schedule := append([]time.Duration(nil), s.schedule...)
	s.mu.Unlock()

	go func() {
		for _, delay := range schedule {
			if delay > 0 {
				time.Sleep(delay)
			}
			err := surface.Render()
			if err == nil || !errors.Is(err, ErrNotMounted) {
				return
			}
		}
		log.Printf("[view_sync] %s never mounted, giving up after %d attempts",
			surface.Name(), len(schedule))
	}()
}

// BindBus subscribes the synchronizer to the same-tab change broadcast.
func (s *Sync) BindBus(b *bus.Bus) {
	b.Subscribe(bus.CartUpdated, s.RefreshAll)
}

// WatchStore consumes the cross-handle storage events for the cart key.
// The goroutine exits when the store closes its event channel.
func (s *Sync) WatchStore(store storage.Store) {
	go func() {
		for ev := range store.Watch() {
			if ev.Key == storage.CartKey {
				s.RefreshAll()
			}
		}
	}()
}
