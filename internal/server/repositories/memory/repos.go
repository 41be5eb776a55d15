package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/server/models"
)

type libraryRepo struct{ t *tx }

func (r *libraryRepo) Create(ctx context.Context, lib *models.Library) error {
	if r.t.read(lib.ID).hasLibrary {
		return fmt.Errorf("%w: library %s already exists", common.ErrorValidation, lib.ID)
	}
	sh, err := r.t.write(lib.ID)
	if err != nil {
		return err
	}
	lib.Version = 0
	lib.Deleted = false
	sh.hasLibrary = true
	sh.library = *lib
	return nil
}

func (r *libraryRepo) Get(ctx context.Context, id models.LibraryID) (*models.Library, error) {
	sh := r.t.read(id)
	if !sh.hasLibrary || sh.library.Deleted {
		return nil, fmt.Errorf("library %s: %w", id, common.ErrorNotFound)
	}
	lib := sh.library
	return &lib, nil
}

func (r *libraryRepo) CurrentVersion(ctx context.Context, id models.LibraryID) (int64, error) {
	sh := r.t.read(id)
	if !sh.hasLibrary {
		return 0, fmt.Errorf("library %s: %w", id, common.ErrorNotFound)
	}
	return sh.library.Version, nil
}

// LockVersion holds no lock: a concurrent commit of the same library makes
// this transaction's commit fail instead.
func (r *libraryRepo) LockVersion(ctx context.Context, id models.LibraryID) (int64, error) {
	return r.CurrentVersion(ctx, id)
}

func (r *libraryRepo) SetVersion(ctx context.Context, id models.LibraryID, version int64) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	cur := r.t.read(id)
	if !cur.hasLibrary || cur.library.Version >= version {
		return fmt.Errorf("%w: library %s is already at or past version %d", common.ErrStaleVersion, id, version)
	}
	sh, err := r.t.write(id)
	if err != nil {
		return err
	}
	sh.library.Version = version
	return nil
}

func (r *libraryRepo) MarkDeleted(ctx context.Context, id models.LibraryID) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	cur := r.t.read(id)
	if !cur.hasLibrary || cur.library.Deleted {
		return fmt.Errorf("library %s: %w", id, common.ErrorNotFound)
	}
	sh, err := r.t.write(id)
	if err != nil {
		return err
	}
	sh.library.Deleted = true
	return nil
}

type entityRepo struct{ t *tx }

func (r *entityRepo) SetVersion(ctx context.Context, lib models.LibraryID, ref models.EntityRef, version int64) error {
	return r.stamp(lib, ref, version, false)
}

func (r *entityRepo) Tombstone(ctx context.Context, lib models.LibraryID, ref models.EntityRef, version int64) error {
	return r.stamp(lib, ref, version, true)
}

func (r *entityRepo) stamp(lib models.LibraryID, ref models.EntityRef, version int64, deleted bool) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	cur := r.t.read(lib)
	if !cur.hasLibrary || cur.library.Version != version {
		return fmt.Errorf("%w: %s in library %s: version %d is not the library version", common.ErrStaleVersion, ref, lib, version)
	}
	sh, err := r.t.write(lib)
	if err != nil {
		return err
	}
	sh.entities[ref] = entityRow{version: version, deleted: deleted}
	return nil
}

func (r *entityRepo) Get(ctx context.Context, lib models.LibraryID, ref models.EntityRef) (int64, error) {
	row, ok := r.t.read(lib).entities[ref]
	if !ok || row.deleted {
		return 0, fmt.Errorf("%s in library %s: %w", ref, lib, common.ErrorNotFound)
	}
	return row.version, nil
}

func (r *entityRepo) List(ctx context.Context, lib models.LibraryID) (map[string]int64, error) {
	return r.ListSince(ctx, lib, 0)
}

func (r *entityRepo) ListSince(ctx context.Context, lib models.LibraryID, since int64) (map[string]int64, error) {
	result := make(map[string]int64)
	for ref, row := range r.t.read(lib).entities {
		if !row.deleted && row.version > since {
			result[ref.String()] = row.version
		}
	}
	return result, nil
}

func (r *entityRepo) ListDeletedSince(ctx context.Context, lib models.LibraryID, since int64) ([]models.EntityRef, error) {
	type tomb struct {
		ref     models.EntityRef
		version int64
	}
	var tombs []tomb
	for ref, row := range r.t.read(lib).entities {
		if row.deleted && row.version > since {
			tombs = append(tombs, tomb{ref: ref, version: row.version})
		}
	}
	sort.Slice(tombs, func(i, j int) bool {
		a, b := tombs[i], tombs[j]
		if a.version != b.version {
			return a.version < b.version
		}
		if a.ref.Kind != b.ref.Kind {
			return a.ref.Kind < b.ref.Kind
		}
		return a.ref.Key < b.ref.Key
	})
	var result []models.EntityRef
	for _, tb := range tombs {
		result = append(result, tb.ref)
	}
	return result, nil
}

type groupRepo struct{ t *tx }

// NextID is not undone on rollback, the same as a sequence.
func (r *groupRepo) NextID(ctx context.Context) (int64, error) {
	if err := r.t.writable(); err != nil {
		return 0, err
	}
	return r.t.store.lastGroupID.Add(1), nil
}

func (r *groupRepo) Create(ctx context.Context, g *models.Group) error {
	lib := models.GroupLibrary(g.ID)
	if r.t.read(lib).hasGroup {
		return fmt.Errorf("%w: group %d already exists", common.ErrorValidation, g.ID)
	}
	sh, err := r.t.write(lib)
	if err != nil {
		return err
	}
	row := *g
	row.Members = nil
	row.Deleted = false
	row.Version = 0
	sh.hasGroup = true
	sh.group = row
	return nil
}

func (r *groupRepo) live(id int64) (*shard, error) {
	sh := r.t.read(models.GroupLibrary(id))
	if !sh.hasGroup || sh.group.Deleted {
		return nil, fmt.Errorf("group %d: %w", id, common.ErrorNotFound)
	}
	return sh, nil
}

func (r *groupRepo) Get(ctx context.Context, id int64) (*models.Group, error) {
	sh, err := r.live(id)
	if err != nil {
		return nil, err
	}
	if !sh.hasLibrary {
		return nil, fmt.Errorf("group %d: %w", id, common.ErrorNotFound)
	}
	g := sh.group
	g.Version = sh.library.Version
	for userID, role := range sh.members {
		g.Members = append(g.Members, models.Member{UserID: userID, Role: role})
	}
	sort.Slice(g.Members, func(i, j int) bool { return g.Members[i].UserID < g.Members[j].UserID })
	return &g, nil
}

func (r *groupRepo) Update(ctx context.Context, g *models.Group) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, err := r.live(g.ID); err != nil {
		return err
	}
	sh, err := r.t.write(models.GroupLibrary(g.ID))
	if err != nil {
		return err
	}
	sh.group.Type = g.Type
	sh.group.Name = g.Name
	sh.group.Description = g.Description
	sh.group.URL = g.URL
	sh.group.LibraryReading = g.LibraryReading
	sh.group.LibraryEditing = g.LibraryEditing
	sh.group.FileEditing = g.FileEditing
	return nil
}

func (r *groupRepo) MarkDeleted(ctx context.Context, id int64) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if _, err := r.live(id); err != nil {
		return err
	}
	sh, err := r.t.write(models.GroupLibrary(id))
	if err != nil {
		return err
	}
	sh.group.Deleted = true
	return nil
}

func (r *groupRepo) AddMember(ctx context.Context, groupID int64, m models.Member) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	lib := models.GroupLibrary(groupID)
	if !r.t.read(lib).hasGroup {
		return fmt.Errorf("group %d: %w", groupID, common.ErrorNotFound)
	}
	sh, err := r.t.write(lib)
	if err != nil {
		return err
	}
	sh.members[m.UserID] = m.Role
	return nil
}

func (r *groupRepo) RemoveMember(ctx context.Context, groupID, userID int64) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	lib := models.GroupLibrary(groupID)
	if _, ok := r.t.read(lib).members[userID]; !ok {
		return fmt.Errorf("member %d of group %d: %w", userID, groupID, common.ErrorNotFound)
	}
	sh, err := r.t.write(lib)
	if err != nil {
		return err
	}
	delete(sh.members, userID)
	return nil
}

func (r *groupRepo) ListForUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	r.t.each(func(_ models.LibraryID, sh *shard) {
		if !sh.hasGroup || sh.group.Deleted {
			return
		}
		if _, ok := sh.members[userID]; ok {
			ids = append(ids, sh.group.ID)
		}
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *groupRepo) VersionsForUser(ctx context.Context, userID int64) (map[int64]int64, error) {
	ids, err := r.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make(map[int64]int64, len(ids))
	for _, id := range ids {
		row, ok := r.t.read(models.GroupLibrary(id)).entities[models.GroupEntity(id)]
		if ok && !row.deleted {
			result[id] = row.version
		}
	}
	return result, nil
}

type itemRepo struct{ t *tx }

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	if row, ok := r.t.read(item.Library).items[item.Key]; ok && !row.deleted {
		return fmt.Errorf("%w: item %s already exists in library %s", common.ErrorValidation, item.Key, item.Library)
	}
	sh, err := r.t.write(item.Library)
	if err != nil {
		return err
	}
	sh.items[item.Key] = itemRow{itemType: item.ItemType}
	item.Deleted = false
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, lib models.LibraryID, key string) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	row, ok := r.t.read(lib).items[key]
	if !ok || row.deleted {
		return fmt.Errorf("item %s in library %s: %w", key, lib, common.ErrorNotFound)
	}
	sh, err := r.t.write(lib)
	if err != nil {
		return err
	}
	row.deleted = true
	sh.items[key] = row
	return nil
}

func (r *itemRepo) Count(ctx context.Context, lib models.LibraryID) (int64, error) {
	var n int64
	for _, row := range r.t.read(lib).items {
		if !row.deleted {
			n++
		}
	}
	return n, nil
}

func (r *itemRepo) DeleteAll(ctx context.Context, lib models.LibraryID) ([]string, error) {
	if err := r.t.writable(); err != nil {
		return nil, err
	}
	var keys []string
	for key, row := range r.t.read(lib).items {
		if !row.deleted {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)
	sh, err := r.t.write(lib)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		row := sh.items[key]
		row.deleted = true
		sh.items[key] = row
	}
	return keys, nil
}

type visibilityRepo struct{ t *tx }

func (r *visibilityRepo) Upsert(ctx context.Context, e models.SearchEntry) error {
	sh, err := r.t.write(models.GroupLibrary(e.GroupID))
	if err != nil {
		return err
	}
	if sh.hasSearch {
		e.Populated = sh.search.Populated
	}
	sh.hasSearch = true
	sh.search = e
	return nil
}

func (r *visibilityRepo) SetPopulated(ctx context.Context, groupID int64, populated bool) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	lib := models.GroupLibrary(groupID)
	if !r.t.read(lib).hasSearch {
		return fmt.Errorf("search entry %d: %w", groupID, common.ErrorNotFound)
	}
	sh, err := r.t.write(lib)
	if err != nil {
		return err
	}
	sh.search.Populated = populated
	return nil
}

func (r *visibilityRepo) Remove(ctx context.Context, groupID int64) error {
	if err := r.t.writable(); err != nil {
		return err
	}
	lib := models.GroupLibrary(groupID)
	if !r.t.read(lib).hasSearch {
		return nil
	}
	sh, err := r.t.write(lib)
	if err != nil {
		return err
	}
	sh.hasSearch = false
	sh.search = models.SearchEntry{}
	return nil
}

func (r *visibilityRepo) Get(ctx context.Context, groupID int64) (*models.SearchEntry, error) {
	sh := r.t.read(models.GroupLibrary(groupID))
	if !sh.hasSearch {
		return nil, fmt.Errorf("search entry %d: %w", groupID, common.ErrorNotFound)
	}
	e := sh.search
	return &e, nil
}

func (r *visibilityRepo) Search(ctx context.Context, query string) ([]models.SearchEntry, error) {
	var result []models.SearchEntry
	r.t.each(func(_ models.LibraryID, sh *shard) {
		if sh.hasSearch && sh.search.Discoverable() && sh.search.Matches(query) {
			result = append(result, sh.search)
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].GroupID < result[j].GroupID
	})
	return result, nil
}
