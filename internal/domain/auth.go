package domain

import "time"

// Token describes a signed bearer token after it has been issued or verified.
// Nothing about it is persisted.
type Token struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the token is inside its lifetime at the given instant.
func (t Token) Valid(at time.Time) bool {
	return t.ExpiresAt.After(t.IssuedAt) && at.Before(t.ExpiresAt)
}
