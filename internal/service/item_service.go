package service

import (
	"context"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// ItemService exposes the catalog.
type ItemService struct {
	items repository.ItemRepository
}

// NewItemService builds the service.
func NewItemService(items repository.ItemRepository) *ItemService {
	return &ItemService{items: items}
}

func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

func (s *ItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

// ListByName returns every item with exactly that name, or domain.ErrItemNotFound.
func (s *ItemService) ListByName(ctx context.Context, name string) ([]domain.Item, error) {
	items, err := s.items.ListByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrItemNotFound
	}
	return items, nil
}
