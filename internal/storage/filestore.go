// internal/storage/filestore.go
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileStore persists each key as one JSON file under a directory. Every Set
// replaces the whole file via temp-write + rename, so concurrent handles
// (other processes included) resolve last-write-wins at file granularity.
//
// The fsnotify watcher on the directory is the cross-handle change channel.
// Writes made through this handle are suppressed by content fingerprint so
// the handle only hears about foreign mutations, like a browser tab that
// receives storage events only for other tabs' writes.
type FileStore struct {
	dir     string
	watcher *fsnotify.Watcher
	events  chan Event

	mu       sync.Mutex
	lastSelf map[string]uint64 // key -> fingerprint of this handle's latest write
	closed   bool
}

func NewFileStore(dir string) (*FileStore, error) {
	d := strings.TrimSpace(dir)
	if d == "" {
		return nil, errors.New("storage: dir is empty")
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", d, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage: watcher: %w", err)
	}
	if err := w.Add(d); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("storage: watch %s: %w", d, err)
	}

	fs := &FileStore{
		dir:      d,
		watcher:  w,
		events:   make(chan Event, 16),
		lastSelf: map[string]uint64{},
	}
	go fs.watchLoop()
	return fs, nil
}

func (fs *FileStore) Get(key string, v any) (bool, error) {
	raw, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (fs *FileStore) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return ErrClosed
	}

	// Record the fingerprint before the write lands so the watcher cannot
	// observe the rename first and mistake it for a foreign change.
	fs.lastSelf[key] = fingerprint(raw)

	tmp := fs.path(key) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path(key))
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return ErrClosed
	}

	fs.lastSelf[key] = fingerprint(nil)
	if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (fs *FileStore) Watch() <-chan Event { return fs.events }

func (fs *FileStore) Close() error {
	fs.mu.Lock()
	if fs.closed {
		fs.mu.Unlock()
		return nil
	}
	fs.closed = true
	fs.mu.Unlock()
	return fs.watcher.Close()
}

func (fs *FileStore) watchLoop() {
	defer close(fs.events)

	for {
		select {
		case ev, ok := <-fs.watcher.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
				!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
				continue
			}
			key, ok := keyFromPath(ev.Name)
			if !ok {
				continue
			}
			if fs.isSelfWrite(key) {
				continue
			}
			select {
			case fs.events <- Event{Key: key}:
			default:
				// A dropped event is recoverable: the next refresh re-reads
				// the store anyway.
			}
		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[filestore] watch error: %v", err)
		}
	}
}

func (fs *FileStore) isSelfWrite(key string) bool {
	raw, err := os.ReadFile(fs.path(key))
	if err != nil {
		raw = nil
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	last, ok := fs.lastSelf[key]
	return ok && last == fingerprint(raw)
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, url.PathEscape(key)+".json")
}

func keyFromPath(p string) (string, bool) {
	base := filepath.Base(p)
	if !strings.HasSuffix(base, ".json") {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(base, ".json"))
	if err != nil {
		return "", false
	}
	return key, true
}

func fingerprint(raw []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return h.Sum64()
}
