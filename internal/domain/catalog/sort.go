// internal/domain/catalog/sort.go
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the catalog ordering. It is persisted as-is under the
// sort-preference key, so the string values are part of the stored format.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"

	DefaultSort = SortNameAsc
)

// ParseSortKey maps a stored or submitted value to a SortKey, falling back
// to the default for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.TrimSpace(s)) {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return SortKey(strings.TrimSpace(s))
	default:
		return DefaultSort
	}
}

// newNameCollator gives locale-aware name comparison so product names
// with mixed casing or accents order the way users expect. A Collator
// carries mutable iteration state across comparisons, so each Sort call
// builds its own instead of sharing one.
func newNameCollator() *collate.Collator {
	return collate.New(language.AmericanEnglish)
}

// Sort returns a sorted copy of products. The input order is never
// mutated, and ties keep their fetch order (stable sort) since the product
// service's ordering is what users saw before sorting existed.
func Sort(products []Product, key SortKey) []Product {
	sorted := append([]Product(nil), products...)

	var less func(a, b Product) bool
	switch key {
	case SortNameDesc:
		coll := newNameCollator()
		less = func(a, b Product) bool { return coll.CompareString(b.Name, a.Name) < 0 }
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.FinalPrice < b.FinalPrice }
	case SortPriceDesc:
		less = func(a, b Product) bool { return b.FinalPrice < a.FinalPrice }
	default: // SortNameAsc
		coll := newNameCollator()
		less = func(a, b Product) bool { return coll.CompareString(a.Name, b.Name) < 0 }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}
