// internal/storage/memory.go
package storage

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store. It backs tests and any run that does
// not need persistence across restarts.
//
// A MemoryStore can be shared between handles via NewMemoryHandle: each
// handle sees the same data but only receives Watch events for writes made
// through *other* handles, mirroring the browser storage event.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	subs   map[int]*memoryHandle
	nextID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: map[string][]byte{},
		subs: map[int]*memoryHandle{},
	}
}

// NewHandle returns a Store view over the shared data.
func (m *MemoryStore) NewHandle() Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := &memoryHandle{
		parent: m,
		id:     m.nextID,
		events: make(chan Event, 16),
	}
	m.subs[h.id] = h
	m.nextID++
	return h
}

func (m *MemoryStore) get(key string, v any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) set(from int, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[key] = raw
	m.notifyLocked(from, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) remove(from int, key string) error {
	m.mu.Lock()
	if _, ok := m.data[key]; ok {
		delete(m.data, key)
		m.notifyLocked(from, key)
	}
	m.mu.Unlock()
	return nil
}

// notifyLocked fans the event out to every handle except the writer.
// Slow subscribers drop events rather than block a mutation.
func (m *MemoryStore) notifyLocked(from int, key string) {
	for id, h := range m.subs {
		if id == from {
			continue
		}
		select {
		case h.events <- Event{Key: key}:
		default:
		}
	}
}

func (m *MemoryStore) closeHandle(id int) {
	m.mu.Lock()
	if h, ok := m.subs[id]; ok {
		delete(m.subs, id)
		close(h.events)
	}
	m.mu.Unlock()
}

type memoryHandle struct {
	parent *MemoryStore
	id     int
	events chan Event

	closeOnce sync.Once
}

func (h *memoryHandle) Get(key string, v any) (bool, error) { return h.parent.get(key, v) }
func (h *memoryHandle) Set(key string, v any) error         { return h.parent.set(h.id, key, v) }
func (h *memoryHandle) Remove(key string) error             { return h.parent.remove(h.id, key) }
func (h *memoryHandle) Watch() <-chan Event                 { return h.events }

func (h *memoryHandle) Close() error {
	h.closeOnce.Do(func() { h.parent.closeHandle(h.id) })
	return nil
}
