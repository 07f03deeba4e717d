package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds an ordered sequence of item references for one user.
// Quantity is expressed by repeating the same item in Items.
type Cart struct {
	ID        int64
	UserID    int64
	Username  string
	Items     []Item
	Total     decimal.Decimal
	UpdatedAt time.Time
}

// NewCart returns an empty cart owned by the given user.
func NewCart(userID int64, username string) *Cart {
	return &Cart{UserID: userID, Username: username, Items: []Item{}, Total: decimal.Zero}
}

// AddItem appends quantity references to item and recomputes the total.
func (c *Cart) AddItem(item Item, quantity int) {
	for i := 0; i < quantity; i++ {
		c.Items = append(c.Items, item)
	}
	c.recalculate()
}

// RemoveItem drops up to quantity references to the item with the given id,
// earliest first, and returns how many were actually removed.
func (c *Cart) RemoveItem(itemID int64, quantity int) int {
	if quantity <= 0 {
		return 0
	}
	kept := make([]Item, 0, len(c.Items))
	removed := 0
	for _, it := range c.Items {
		if it.ID == itemID && removed < quantity {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	c.recalculate()
	return removed
}

// Count returns how many references to itemID the cart holds.
func (c *Cart) Count(itemID int64) int {
	n := 0
	for _, it := range c.Items {
		if it.ID == itemID {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy so callers can hold cart state without aliasing Items.
func (c *Cart) Snapshot() Cart {
	cp := *c
	cp.Items = append(make([]Item, 0, len(c.Items)), c.Items...)
	return cp
}

// recalculate keeps Total equal to the sum of the current sequence.
func (c *Cart) recalculate() {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price)
	}
	c.Total = total
}
