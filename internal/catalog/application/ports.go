package application

import (
	"context"

	"github.com/tokopasar/storefront/internal/catalog/domain"
)

type CatalogRepository interface {
	// FindActiveStore resolves a non-deleted store by its unique name.
	FindActiveStore(ctx context.Context, name string) (domain.Store, error)
	// ListProducts returns the store's products with their categories.
	ListProducts(ctx context.Context, storeID string) ([]domain.Product, error)
}
