// Package memory provides an in-process Store used when no database is
// configured and in tests.
//
// State is split into one shard per library and published as an immutable
// snapshot. A View reads the snapshot it loaded and never waits. An Update
// copies only the shards it writes and publishes them on commit, so
// transactions on different libraries run side by side and a failed Update
// leaves no trace.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync/atomic"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/entities"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/groups"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/items"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/libraries"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/visibility"
)

type entityRow struct {
	version int64
	deleted bool
}

type itemRow struct {
	itemType string
	deleted  bool
}

// shard is everything stored under one library. A published shard is never
// modified; writers work on a clone.
type shard struct {
	hasLibrary bool
	library    models.Library

	entities map[models.EntityRef]entityRow
	items    map[string]itemRow

	// group libraries only
	hasGroup  bool
	group     models.Group
	members   map[int64]models.Role
	hasSearch bool
	search    models.SearchEntry
}

// empty stands in for a missing shard on reads.
var empty = &shard{}

func (sh *shard) clone() *shard {
	c := &shard{}
	if sh != nil {
		*c = *sh
	}
	c.entities = cloneMap(c.entities)
	c.items = cloneMap(c.items)
	c.members = cloneMap(c.members)
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return maps.Clone(m)
}

type snapshot struct {
	shards map[models.LibraryID]*shard
}

// Store is an in-memory repomanager.Store.
type Store struct {
	snap atomic.Pointer[snapshot]
	// commit is held only while a transaction publishes its shards.
	commit chan struct{}
	closed atomic.Bool
	// lastGroupID is outside transactions, like a database sequence.
	lastGroupID atomic.Int64
}

var _ repomanager.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{commit: make(chan struct{}, 1)}
	s.snap.Store(&snapshot{shards: make(map[models.LibraryID]*shard)})
	return s
}

func (s *Store) unavailable() error {
	return fmt.Errorf("%w: store is closed", common.ErrStorageUnavailable)
}

// Update runs fn against the latest snapshot and publishes its writes if fn
// succeeds and ctx is still live. A shard that another transaction
// committed after this one copied it fails the commit with
// common.ErrStaleVersion.
func (s *Store) Update(ctx context.Context, fn func(ctx context.Context, r repomanager.Repos) error) error {
	if s.closed.Load() {
		return s.unavailable()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t := &tx{
		store:  s,
		base:   s.snap.Load(),
		dirty:  make(map[models.LibraryID]*shard),
		origin: make(map[models.LibraryID]*shard),
	}
	if err := fn(ctx, t); err != nil {
		return err
	}
	// a cancelled caller must not observe a commit it gave up on
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(t.dirty) == 0 {
		return nil
	}
	return s.publish(ctx, t)
}

func (s *Store) publish(ctx context.Context, t *tx) error {
	select {
	case s.commit <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.commit }()

	if s.closed.Load() {
		return s.unavailable()
	}

	cur := s.snap.Load()
	for id := range t.dirty {
		if cur.shards[id] != t.origin[id] {
			return fmt.Errorf("%w: library %s changed in a concurrent transaction", common.ErrStaleVersion, id)
		}
	}

	next := &snapshot{shards: maps.Clone(cur.shards)}
	for id, sh := range t.dirty {
		next.shards[id] = sh
	}
	s.snap.Store(next)
	return nil
}

// View runs fn against the latest committed snapshot.
func (s *Store) View(ctx context.Context, fn func(ctx context.Context, r repomanager.Repos) error) error {
	if s.closed.Load() {
		return s.unavailable()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &tx{store: s, base: s.snap.Load(), readOnly: true})
}

// Close makes every later transaction fail with ErrStorageUnavailable.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

// tx reads through its own written shards to the snapshot it started from.
type tx struct {
	store    *Store
	base     *snapshot
	readOnly bool
	dirty    map[models.LibraryID]*shard
	// origin is the published shard each dirty shard was copied from.
	origin map[models.LibraryID]*shard
}

func (t *tx) Libraries() libraries.Repository   { return &libraryRepo{t} }
func (t *tx) Entities() entities.Repository     { return &entityRepo{t} }
func (t *tx) Groups() groups.Repository         { return &groupRepo{t} }
func (t *tx) Items() items.Repository           { return &itemRepo{t} }
func (t *tx) Visibility() visibility.Repository { return &visibilityRepo{t} }

func (t *tx) writable() error {
	if t.readOnly {
		return fmt.Errorf("%w: write in a read-only transaction", common.ErrorInternal)
	}
	return nil
}

func (t *tx) read(id models.LibraryID) *shard {
	if sh, ok := t.dirty[id]; ok {
		return sh
	}
	if sh, ok := t.base.shards[id]; ok {
		return sh
	}
	return empty
}

// write returns the transaction's private copy of the shard.
func (t *tx) write(id models.LibraryID) (*shard, error) {
	if err := t.writable(); err != nil {
		return nil, err
	}
	if sh, ok := t.dirty[id]; ok {
		return sh, nil
	}
	orig := t.base.shards[id]
	sh := orig.clone()
	t.origin[id] = orig
	t.dirty[id] = sh
	return sh, nil
}

// each visits every shard as the transaction sees it.
func (t *tx) each(fn func(id models.LibraryID, sh *shard)) {
	for id, sh := range t.base.shards {
		if d, ok := t.dirty[id]; ok {
			sh = d
		}
		fn(id, sh)
	}
	for id, sh := range t.dirty {
		if _, ok := t.base.shards[id]; !ok {
			fn(id, sh)
		}
	}
}
