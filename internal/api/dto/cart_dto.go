package dto

import "github.com/spec-kit/storefront-service/internal/domain"

// ModifyCartRequest is the body of addToCart and removeFromCart.
type ModifyCartRequest struct {
	Username string `json:"username" validate:"required"`
	ItemID   int64  `json:"itemId" validate:"gt=0"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000"`
}

// CartResponse is the public view of a cart.
type CartResponse struct {
	ID    int64          `json:"id"`
	Items []ItemResponse `json:"items"`
	Total string         `json:"total"`
	User  string         `json:"user"`
}

// NewCartResponse maps a domain cart.
func NewCartResponse(c *domain.Cart) CartResponse {
	return CartResponse{
		ID:    c.ID,
		Items: NewItemResponses(c.Items),
		Total: c.Total.StringFixed(2),
		User:  c.Username,
	}
}
