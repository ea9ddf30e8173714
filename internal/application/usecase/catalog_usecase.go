// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"storefront/internal/domain/catalog"
	"storefront/internal/storage"
)

var (
	ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")
)

// ProductAPI is the slice of the collaborator service the catalog needs.
type ProductAPI interface {
	ProductsByCategory(ctx context.Context, category string) ([]catalog.Product, error)
	ProductByID(ctx context.Context, id string) (catalog.Product, error)
}

// CatalogUsecase fetches a category and applies the persisted sort
// preference. The preference only orders the in-memory result of the
// active browsing session; the fetch order itself is never trusted.
type CatalogUsecase struct {
	api   ProductAPI
	store storage.Store
}

func NewCatalogUsecase(api ProductAPI, store storage.Store) *CatalogUsecase {
	return &CatalogUsecase{api: api, store: store}
}

// ListCategory fetches and sorts a category. When requestedSort is
// non-empty it becomes the new persisted preference; otherwise the stored
// preference (default name-asc) applies.
func (uc *CatalogUsecase) ListCategory(ctx context.Context, category, requestedSort string) ([]catalog.Product, catalog.SortKey, error) {
	cat := strings.TrimSpace(category)
	if cat == "" {
		return nil, catalog.DefaultSort, ErrCatalogInvalidArgument
	}

	key := uc.resolveSort(requestedSort)

	products, err := uc.api.ProductsByCategory(ctx, cat)
	if err != nil {
		return nil, key, err
	}
	return catalog.Sort(products, key), key, nil
}

// FindProduct resolves a single product for the detail page and the
// quick-view add path.
func (uc *CatalogUsecase) FindProduct(ctx context.Context, id string) (catalog.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return catalog.Product{}, ErrCatalogInvalidArgument
	}
	return uc.api.ProductByID(ctx, pid)
}

// SortPreference returns the persisted sort key, defaulting on anything
// absent or unreadable.
func (uc *CatalogUsecase) SortPreference() catalog.SortKey {
	var stored string
	found, err := uc.store.Get(storage.SortKey, &stored)
	if err != nil || !found {
		return catalog.DefaultSort
	}
	return catalog.ParseSortKey(stored)
}

func (uc *CatalogUsecase) resolveSort(requested string) catalog.SortKey {
	if strings.TrimSpace(requested) == "" {
		return uc.SortPreference()
	}

	key := catalog.ParseSortKey(requested)
	if err := uc.store.Set(storage.SortKey, string(key)); err != nil {
		log.Printf("[catalog_usecase] persist sort preference: %v", err)
	}
	return key
}
