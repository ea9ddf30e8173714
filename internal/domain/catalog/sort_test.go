// internal/domain/catalog/sort_test.go
package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(id, name string, price float64) Product {
	return Product{ID: id, Name: name, FinalPrice: price}
}

func names(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestSortByName(t *testing.T) {
	in := []Product{named("1", "B", 20), named("2", "A", 10)}

	assert.Equal(t, []string{"A", "B"}, names(Sort(in, SortNameAsc)))
	assert.Equal(t, []string{"B", "A"}, names(Sort(in, SortNameDesc)))
	// input untouched
	assert.Equal(t, []string{"B", "A"}, names(in))
}

func TestSortByPrice(t *testing.T) {
	in := []Product{named("1", "B", 20), named("2", "A", 10)}

	assert.Equal(t, []string{"A", "B"}, names(Sort(in, SortPriceAsc)))
	assert.Equal(t, []string{"B", "A"}, names(Sort(in, SortPriceDesc)))
}

func TestSortIsStableOnTies(t *testing.T) {
	in := []Product{
		named("first", "Same", 10),
		named("second", "Same", 10),
		named("third", "Same", 10),
	}

	for _, key := range []SortKey{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc} {
		out := Sort(in, key)
		require.Len(t, out, 3)
		assert.Equal(t, "first", out[0].ID, "key=%s", key)
		assert.Equal(t, "second", out[1].ID, "key=%s", key)
		assert.Equal(t, "third", out[2].ID, "key=%s", key)
	}
}

func TestSortNameIsLocaleAware(t *testing.T) {
	// Case differences must not split the alphabet the way a raw byte
	// compare would ("apple" < "Banana" even though 'B' < 'a' in ASCII).
	in := []Product{named("1", "apple", 1), named("2", "Banana", 1)}
	out := Sort(in, SortNameAsc)
	assert.Equal(t, []string{"apple", "Banana"}, names(out))
}

func TestSortIsSafeForConcurrentUse(t *testing.T) {
	// Catalog requests are served concurrently, so name sorts must not
	// share collator state. Run under -race.
	in := []Product{
		named("1", "Banana", 3),
		named("2", "apple", 1),
		named("3", "Cherry", 2),
		named("4", "date", 4),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				Sort(in, SortNameAsc)
				Sort(in, SortNameDesc)
			}
		}()
	}
	wg.Wait()
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceDesc, ParseSortKey("price-desc"))
	assert.Equal(t, SortNameAsc, ParseSortKey(""))
	assert.Equal(t, SortNameAsc, ParseSortKey("bogus"))
	assert.Equal(t, SortNameDesc, ParseSortKey(" name-desc "))
}

func TestDiscountPercent(t *testing.T) {
	p := Product{FinalPrice: 75, SuggestedRetailPrice: 100}
	assert.Equal(t, 25, p.DiscountPercent())

	full := Product{FinalPrice: 100, SuggestedRetailPrice: 100}
	assert.Equal(t, 0, full.DiscountPercent())

	noSRP := Product{FinalPrice: 100}
	assert.Equal(t, 0, noSRP.DiscountPercent())

	third := Product{FinalPrice: 66.67, SuggestedRetailPrice: 100}
	assert.Equal(t, 33, third.DiscountPercent())
}
