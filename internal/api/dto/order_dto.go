package dto

import (
	"time"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// OrderResponse is the public view of a submitted order.
type OrderResponse struct {
	ID        int64          `json:"id"`
	User      string         `json:"user"`
	Items     []ItemResponse `json:"items"`
	Total     string         `json:"total"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		User:      o.Username,
		Items:     NewItemResponses(o.Items),
		Total:     o.Total.StringFixed(2),
		CreatedAt: o.CreatedAt,
	}
}

// NewOrderResponses maps a slice of orders preserving order.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
