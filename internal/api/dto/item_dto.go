package dto

import "github.com/spec-kit/storefront-service/internal/domain"

// ItemResponse is the public view of a catalog item.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// NewItemResponse maps a domain item.
func NewItemResponse(it domain.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price.StringFixed(2),
	}
}

// NewItemResponses maps a slice of items preserving order.
func NewItemResponses(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewItemResponse(it))
	}
	return out
}
