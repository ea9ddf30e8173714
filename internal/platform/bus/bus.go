// internal/platform/bus/bus.go
package bus

import "sync"

// CartUpdated is the same-tab change broadcast. The cross-tab channel is
// the storage watcher; this one exists because a storage notification is
// never delivered to the handle that made the write, yet views in the
// same process still have to hear about it.
const CartUpdated = "cartUpdated"

type Handler func()

// Bus is a minimal in-process event broadcast: named topics, synchronous
// dispatch in subscription order. Handlers run on the publisher's
// goroutine, matching the single-threaded event dispatch the views assume.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

func (b *Bus) Subscribe(topic string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], h)
	b.mu.Unlock()
}

func (b *Bus) Publish(topic string) {
	b.mu.Lock()
	hs := append([]Handler(nil), b.handlers[topic]...)
	b.mu.Unlock()

	for _, h := range hs {
		h()
	}
}
