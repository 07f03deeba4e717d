package domain

import "github.com/shopspring/decimal"

// Item is a catalog entry. Carts and orders reference items, they never own them.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
}
