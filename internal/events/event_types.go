package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated    EventType = "user_created"
	EventCartUpdated    EventType = "cart_updated"
	EventOrderSubmitted EventType = "order_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID int64 `json:"user_id"`
	CartID int64 `json:"cart_id"`
}

// CartUpdatedPayload payload. Delta is positive for additions and negative for removals.
type CartUpdatedPayload struct {
	CartID    int64  `json:"cart_id"`
	ItemID    int64  `json:"item_id"`
	Delta     int    `json:"delta"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

// OrderSubmittedPayload payload.
type OrderSubmittedPayload struct {
	OrderID   int64   `json:"order_id"`
	ItemIDs   []int64 `json:"item_ids"`
	ItemCount int     `json:"item_count"`
	Total     string  `json:"total"`
}
