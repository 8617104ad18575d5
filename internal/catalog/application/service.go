package application

import (
	"context"

	"github.com/tokopasar/storefront/internal/catalog/domain"
)

// Service serves the customer-facing storefront page: resolve the store in
// the URL, list what it sells.
type Service struct {
	repo CatalogRepository
}

func NewService(repo CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) BrowseStore(ctx context.Context, storeName string) (domain.Store, []domain.Product, error) {
	store, err := s.repo.FindActiveStore(ctx, storeName)
	if err != nil {
		return domain.Store{}, nil, err
	}
	products, err := s.repo.ListProducts(ctx, store.ID)
	if err != nil {
		return domain.Store{}, nil, err
	}
	return store, products, nil
}
