package lock

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a key stays held for longer than the wait budget.
var ErrLockTimeout = errors.New("lock wait timed out")

// Unlock releases a previously acquired lock.
type Unlock func()

// Locker serializes work per key.
type Locker interface {
	Acquire(ctx context.Context, key string) (Unlock, error)
}
