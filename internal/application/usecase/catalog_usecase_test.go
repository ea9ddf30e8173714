// internal/application/usecase/catalog_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/catalog"
	"storefront/internal/storage"
)

type fakeProductAPI struct {
	products []catalog.Product
	err      error
	category string
}

func (f *fakeProductAPI) ProductsByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	f.category = category
	return f.products, f.err
}

func (f *fakeProductAPI) ProductByID(_ context.Context, id string) (catalog.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, errors.New("not found")
}

func TestListCategorySortsWithStoredPreference(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	require.NoError(t, store.Set(storage.SortKey, "price-desc"))

	api := &fakeProductAPI{products: []catalog.Product{
		{ID: "1", Name: "B", FinalPrice: 20},
		{ID: "2", Name: "A", FinalPrice: 10},
	}}
	uc := NewCatalogUsecase(api, store)

	products, key, err := uc.ListCategory(context.Background(), "tents", "")
	require.NoError(t, err)
	assert.Equal(t, catalog.SortPriceDesc, key)
	assert.Equal(t, "tents", api.category)
	require.Len(t, products, 2)
	assert.Equal(t, "B", products[0].Name)
}

func TestListCategoryRequestedSortBecomesPreference(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	api := &fakeProductAPI{products: []catalog.Product{
		{ID: "1", Name: "B", FinalPrice: 20},
		{ID: "2", Name: "A", FinalPrice: 10},
	}}
	uc := NewCatalogUsecase(api, store)

	products, key, err := uc.ListCategory(context.Background(), "tents", "name-desc")
	require.NoError(t, err)
	assert.Equal(t, catalog.SortNameDesc, key)
	assert.Equal(t, "B", products[0].Name)

	// persisted for the next session
	assert.Equal(t, catalog.SortNameDesc, uc.SortPreference())
}

func TestListCategoryDefaultsToNameAsc(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	api := &fakeProductAPI{products: []catalog.Product{
		{ID: "1", Name: "B"},
		{ID: "2", Name: "A"},
	}}

	products, key, err := NewCatalogUsecase(api, store).ListCategory(context.Background(), "tents", "")
	require.NoError(t, err)
	assert.Equal(t, catalog.SortNameAsc, key)
	assert.Equal(t, "A", products[0].Name)
}

func TestListCategoryPropagatesFetchError(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	api := &fakeProductAPI{err: errors.New("boom")}

	_, _, err := NewCatalogUsecase(api, store).ListCategory(context.Background(), "tents", "")
	assert.Error(t, err)
}

func TestListCategoryBlankCategoryRejected(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	_, _, err := NewCatalogUsecase(&fakeProductAPI{}, store).ListCategory(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrCatalogInvalidArgument)
}
