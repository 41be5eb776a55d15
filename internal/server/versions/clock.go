// Package versions hands out library versions. A Clock grants one writer
// per library at a time; the version itself always comes from storage.
package versions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/server/models"
)

// VersionReader reads the persisted version of a library and keeps it
// locked for the rest of the transaction.
type VersionReader interface {
	LockVersion(ctx context.Context, id models.LibraryID) (int64, error)
}

// Clock serializes mutations per library and bounds how long a writer waits.
type Clock struct {
	locks   *KeyedLock
	timeout time.Duration
}

// NewClock returns a Clock whose Acquire gives up after timeout. A zero
// timeout waits as long as ctx allows.
func NewClock(timeout time.Duration) *Clock {
	return &Clock{locks: NewKeyedLock(), timeout: timeout}
}

// Acquire takes the mutation rights for lib. It fails with
// common.ErrLockTimeout when the lock is not free within the timeout.
func (c *Clock) Acquire(ctx context.Context, lib models.LibraryID) (*Lease, error) {
	lctx, cancel := ctx, context.CancelFunc(func() {})
	if c.timeout > 0 {
		lctx, cancel = context.WithTimeoutCause(ctx, c.timeout, common.ErrLockTimeout)
	}
	defer cancel()

	unlock, err := c.locks.Lock(lctx, lib.String())
	if err != nil {
		if errors.Is(context.Cause(lctx), common.ErrLockTimeout) {
			return nil, fmt.Errorf("%w: library %s not free after %s", common.ErrLockTimeout, lib, c.timeout)
		}
		return nil, err
	}
	return &Lease{lib: lib, unlock: unlock}, nil
}

// Lease is the exclusive right to advance one library's version. It is not
// safe for concurrent use.
type Lease struct {
	lib    models.LibraryID
	unlock func()
	last   int64
}

// Library is the library the lease was granted for.
func (l *Lease) Library() models.LibraryID { return l.lib }

// Next returns the version the current mutation must commit at: one past
// the persisted version, and past anything this lease returned before.
func (l *Lease) Next(ctx context.Context, r VersionReader) (int64, error) {
	current, err := r.LockVersion(ctx, l.lib)
	if err != nil {
		return 0, err
	}
	next := current + 1
	if next <= l.last {
		next = l.last + 1
	}
	l.last = next
	return next, nil
}

// Release gives up the lease. Calling it again is a no-op.
func (l *Lease) Release() {
	l.unlock()
}
