package lock

import (
	"context"
	"sync"
	"time"
)

// KeyedMutex is an in-process Locker. Entries are reference counted and
// dropped once no goroutine holds or waits on them.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
	wait    time.Duration
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex returns a KeyedMutex that gives up after wait. A non-positive
// wait blocks until the context ends.
func NewKeyedMutex(wait time.Duration) *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry), wait: wait}
}

func (k *KeyedMutex) Acquire(ctx context.Context, key string) (Unlock, error) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &keyedEntry{ch: make(chan struct{}, 1)}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	var timeout <-chan time.Time
	if k.wait > 0 {
		timer := time.NewTimer(k.wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case entry.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-entry.ch
				k.release(key, entry)
			})
		}, nil
	case <-ctx.Done():
		k.release(key, entry)
		return nil, ctx.Err()
	case <-timeout:
		k.release(key, entry)
		return nil, ErrLockTimeout
	}
}

func (k *KeyedMutex) release(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(k.entries, key)
	}
}

// Len reports how many keys are currently tracked.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
