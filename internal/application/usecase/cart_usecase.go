// internal/application/usecase/cart_usecase.go
package usecase

import (
	"encoding/json"
	"log"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/platform/bus"
	"storefront/internal/storage"
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartUsecase owns the persisted cart. Every mutation is a full
// read-modify-write of the collection under the cart key: load fresh,
// apply the domain transition, write the whole collection back, then
// broadcast so every rendered surface refreshes. Nothing here caches cart
// state across a mutation boundary.
//
// Concurrent mutations from other handles resolve last-write-wins on the
// whole collection; no merge of diffs is attempted.
type CartUsecase struct {
	store storage.Store
	bus   *bus.Bus
}

func NewCartUsecase(store storage.Store, b *bus.Bus) *CartUsecase {
	return &CartUsecase{store: store, bus: b}
}

// Load reads the persisted cart. Absent or corrupted state is an empty
// cart, never an error. Non-object entries are dropped, and when any were
// dropped the cleaned collection is re-persisted immediately so the bad
// state does not survive the load.
func (uc *CartUsecase) Load() cart.Cart {
	var raw []json.RawMessage
	found, err := uc.store.Get(storage.CartKey, &raw)
	if err != nil {
		log.Printf("[cart_usecase] corrupted cart value, treating as empty: %v", err)
		return cart.Cart{}
	}
	if !found {
		return cart.Cart{}
	}

	c, dropped := cart.Sanitize(raw)
	if dropped > 0 {
		log.Printf("[cart_usecase] dropped %d invalid cart entries, re-persisting cleaned cart", dropped)
		if err := uc.store.Set(storage.CartKey, c); err != nil {
			log.Printf("[cart_usecase] re-persist cleaned cart: %v", err)
		}
	}
	return c
}

// AddOrIncrement merges the item into the cart (quantity +1 when already
// present) and broadcasts the change.
func (uc *CartUsecase) AddOrIncrement(it cart.Item) error {
	return uc.persist(uc.Load().AddOrIncrement(it))
}

// SetQuantity sets the exact quantity for id; n <= 0 removes the entry.
// Callers must have validated numeric input already (the cart view resets
// the field instead of calling through on garbage).
func (uc *CartUsecase) SetQuantity(id string, n int) error {
	return uc.persist(uc.Load().SetQuantity(id, n))
}

// IncrementQuantity applies a +/- delta; a result of zero or below
// removes the entry.
func (uc *CartUsecase) IncrementQuantity(id string, delta int) error {
	return uc.persist(uc.Load().IncrementQuantity(id, delta))
}

// Remove deletes the entry for id regardless of quantity.
func (uc *CartUsecase) Remove(id string) error {
	return uc.persist(uc.Load().Remove(id))
}

// Clear empties the cart (post-checkout).
func (uc *CartUsecase) Clear() error {
	return uc.persist(cart.Cart{})
}

func (uc *CartUsecase) Total() float64 { return uc.Load().Total() }
func (uc *CartUsecase) Count() int     { return uc.Load().Count() }

func (uc *CartUsecase) Contains(id string) bool { return uc.Load().Contains(id) }

func (uc *CartUsecase) persist(c cart.Cart) error {
	if err := uc.store.Set(storage.CartKey, c); err != nil {
		return err
	}
	if uc.bus != nil {
		uc.bus.Publish(bus.CartUpdated)
	}
	return nil
}
