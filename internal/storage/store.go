// internal/storage/store.go
package storage

import "errors"

// Well-known keys. Names are kept verbatim from the persisted format the
// storefront has always used, so existing stored state keeps working.
const (
	CartKey  = "so-cart"
	SortKey  = "product-list-sort"
	TokenKey = "so-token"
)

var (
	ErrClosed = errors.New("storage: store is closed")
)

// Event reports that another handle changed the value under Key.
// A handle never receives events for its own writes (same contract as the
// browser storage event, which fires only in other tabs).
type Event struct {
	Key string
}

// Store is a key/value JSON store. Values are serialized as one JSON
// document per key; every Set replaces the whole value (last write wins).
//
// Get reports found=false for an absent key. A present but undecodable
// value yields (false, err); callers that follow the local-recovery policy
// treat that the same as absent.
type Store interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Remove(key string) error

	// Watch returns the cross-handle change channel. The channel is closed
	// when the store is closed.
	Watch() <-chan Event

	Close() error
}
