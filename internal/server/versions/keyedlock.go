package versions

import (
	"context"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

type keyEntry struct {
	sem chan struct{}
	// refs counts holders and waiters; only touched inside Compute.
	refs int
}

// KeyedLock is a set of mutexes addressed by key. Locking one key never
// waits on another. Entries are dropped once nobody holds or waits on them.
type KeyedLock struct {
	locks *xsync.MapOf[string, *keyEntry]
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{locks: xsync.NewMapOf[string, *keyEntry]()}
}

// Lock blocks until key is free or ctx is done. The returned unlock func is
// safe to call more than once.
func (l *KeyedLock) Lock(ctx context.Context, key string) (func(), error) {
	e, _ := l.locks.Compute(key, func(old *keyEntry, loaded bool) (*keyEntry, bool) {
		if !loaded {
			old = &keyEntry{sem: make(chan struct{}, 1)}
		}
		old.refs++
		return old, false
	})

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.release(key)
			})
		}, nil
	case <-ctx.Done():
		l.release(key)
		return nil, ctx.Err()
	}
}

func (l *KeyedLock) release(key string) {
	l.locks.Compute(key, func(old *keyEntry, loaded bool) (*keyEntry, bool) {
		if !loaded {
			return nil, true
		}
		old.refs--
		return old, old.refs == 0
	})
}

// Len returns the number of keys currently held or waited on.
func (l *KeyedLock) Len() int {
	return l.locks.Size()
}
