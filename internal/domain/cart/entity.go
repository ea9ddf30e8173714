// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"strings"
)

// Item represents one line item in the cart.
// JSON tags match the persisted shape the storefront has always written
// under the cart key, so previously stored carts load unchanged.
type Item struct {
	ID                   string  `json:"Id"`
	Name                 string  `json:"Name"`
	NameWithoutBrand     string  `json:"NameWithoutBrand,omitempty"`
	Image                string  `json:"Image,omitempty"`
	ColorName            string  `json:"ColorName,omitempty"`
	FinalPrice           float64 `json:"FinalPrice"`
	SuggestedRetailPrice float64 `json:"SuggestedRetailPrice,omitempty"`
	Quantity             int     `json:"quantity"`
}

// Cart is an ordered collection of Items.
// Invariants: at most one Item per ID, Quantity always >= 1. Every
// transition that would leave a quantity at zero or below removes the
// entry instead.
type Cart []Item

// AddOrIncrement merges it into the cart by ID. An existing entry gets its
// quantity bumped by one (a missing quantity counts as 1 first); a new
// entry is appended with quantity 1. Fetch order is preserved.
func (c Cart) AddOrIncrement(it Item) Cart {
	id := strings.TrimSpace(it.ID)
	if id == "" {
		return c
	}

	idx := c.indexOf(id)
	if idx >= 0 {
		if c[idx].Quantity <= 0 {
			c[idx].Quantity = 1
		}
		c[idx].Quantity++
		return c
	}

	it.ID = id
	it.Quantity = 1
	return append(c, it)
}

// SetQuantity sets the quantity for id to exactly n. n <= 0 removes the
// entry. An id not in the cart is left alone (the controls that call this
// only exist for rendered entries).
func (c Cart) SetQuantity(id string, n int) Cart {
	idx := c.indexOf(id)
	if idx < 0 {
		return c
	}
	if n <= 0 {
		return removeIndex(c, idx)
	}
	c[idx].Quantity = n
	return c
}

// IncrementQuantity adjusts the quantity for id by delta (typically +1 or
// -1). A missing quantity defaults to 1 before the delta applies; a result
// of zero or below removes the entry.
func (c Cart) IncrementQuantity(id string, delta int) Cart {
	idx := c.indexOf(id)
	if idx < 0 {
		return c
	}

	q := c[idx].Quantity
	if q <= 0 {
		q = 1
	}
	q += delta
	if q <= 0 {
		return removeIndex(c, idx)
	}
	c[idx].Quantity = q
	return c
}

// Remove deletes the entry for id regardless of quantity. Removing an
// absent id is a no-op.
func (c Cart) Remove(id string) Cart {
	idx := c.indexOf(id)
	if idx < 0 {
		return c
	}
	return removeIndex(c, idx)
}

// Total is the sum of FinalPrice x quantity over all items. Empty cart
// totals zero. A missing quantity counts as 1, same as everywhere else.
func (c Cart) Total() float64 {
	var sum float64
	for _, it := range c {
		q := it.Quantity
		if q <= 0 {
			q = 1
		}
		sum += it.FinalPrice * float64(q)
	}
	return sum
}

// Count is the sum of quantities (not the number of entries); it feeds the
// header badge.
func (c Cart) Count() int {
	var n int
	for _, it := range c {
		q := it.Quantity
		if q <= 0 {
			q = 1
		}
		n += q
	}
	return n
}

// Contains reports whether id has an entry in the cart.
func (c Cart) Contains(id string) bool { return c.indexOf(id) >= 0 }

func (c Cart) indexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

func removeIndex(c Cart, idx int) Cart {
	// preserve order
	return append(c[:idx], c[idx+1:]...)
}

// ----------------------------
// Load-time sanitation
// ----------------------------

// Sanitize decodes a raw persisted cart, dropping entries that are not
// JSON objects. Carts written by older storefront versions occasionally
// carry stray scalars; those are cleaned here rather than surfaced.
// dropped reports how many entries were discarded so the loader knows to
// re-persist the cleaned collection.
func Sanitize(raw []json.RawMessage) (c Cart, dropped int) {
	c = Cart{}
	for _, entry := range raw {
		var it Item
		trimmed := strings.TrimSpace(string(entry))
		if !strings.HasPrefix(trimmed, "{") {
			dropped++
			continue
		}
		if err := json.Unmarshal(entry, &it); err != nil {
			dropped++
			continue
		}
		c = append(c, it)
	}
	return c, dropped
}
