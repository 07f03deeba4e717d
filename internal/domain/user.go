package domain

import "time"

// User is the identity that owns exactly one cart.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CartID       int64
	CreatedAt    time.Time
}
