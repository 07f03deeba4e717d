package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a frozen copy of a cart taken at submission time.
type Order struct {
	ID        int64
	UserID    int64
	Username  string
	Items     []Item
	Total     decimal.Decimal
	CreatedAt time.Time
}

// NewOrderFromCart copies the cart's sequence and total into a new order.
// Later cart mutations never reach the order.
func NewOrderFromCart(cart *Cart) *Order {
	items := make([]Item, len(cart.Items))
	copy(items, cart.Items)
	return &Order{
		UserID:   cart.UserID,
		Username: cart.Username,
		Items:    items,
		Total:    cart.Total,
	}
}
