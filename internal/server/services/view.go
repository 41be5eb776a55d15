package services

import (
	"context"

	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/repomanager"
)

// View answers version queries. Each method reads from one store snapshot,
// so the values it returns belong to a single committed state.
type View struct {
	store repomanager.Store
}

func NewView(store repomanager.Store) *View {
	return &View{store: store}
}

func (v *View) LibraryVersion(ctx context.Context, lib models.LibraryID) (int64, error) {
	var version int64
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		l, err := r.Libraries().Get(ctx, lib)
		if err != nil {
			return err
		}
		version = l.Version
		return nil
	})
	return version, err
}

// GroupVersion is the version of the group record, which is also the
// version of its library.
func (v *View) GroupVersion(ctx context.Context, groupID int64) (int64, error) {
	return v.EntityVersion(ctx, models.GroupLibrary(groupID), models.GroupEntity(groupID))
}

func (v *View) EntityVersion(ctx context.Context, lib models.LibraryID, ref models.EntityRef) (int64, error) {
	var version int64
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		if _, err := r.Libraries().Get(ctx, lib); err != nil {
			return err
		}
		var err error
		version, err = r.Entities().Get(ctx, lib, ref)
		return err
	})
	return version, err
}

// VersionListing returns entity id -> version for live entities changed
// after since (all of them for since == 0) and the library version.
func (v *View) VersionListing(ctx context.Context, lib models.LibraryID, since int64) (map[string]int64, int64, error) {
	var listing map[string]int64
	var version int64
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		l, err := r.Libraries().Get(ctx, lib)
		if err != nil {
			return err
		}
		version = l.Version
		listing, err = r.Entities().ListSince(ctx, lib, since)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return listing, version, nil
}

// UserGroupVersions maps every live group userID belongs to onto its version.
func (v *View) UserGroupVersions(ctx context.Context, userID int64) (map[int64]int64, error) {
	var versions map[int64]int64
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		var err error
		versions, err = r.Groups().VersionsForUser(ctx, userID)
		return err
	})
	return versions, err
}

// DeletedSince returns entities deleted after since and the library version.
func (v *View) DeletedSince(ctx context.Context, lib models.LibraryID, since int64) ([]models.EntityRef, int64, error) {
	var refs []models.EntityRef
	var version int64
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		l, err := r.Libraries().Get(ctx, lib)
		if err != nil {
			return err
		}
		version = l.Version
		refs, err = r.Entities().ListDeletedSince(ctx, lib, since)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return refs, version, nil
}

func (v *View) IsGroupVisible(ctx context.Context, groupID int64) (bool, error) {
	var visible bool
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		e, err := r.Visibility().Get(ctx, groupID)
		if err != nil {
			return err
		}
		visible = e.Discoverable()
		return nil
	})
	return visible, err
}

func (v *View) SearchGroups(ctx context.Context, query string) ([]models.SearchEntry, error) {
	var result []models.SearchEntry
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		var err error
		result, err = r.Visibility().Search(ctx, query)
		return err
	})
	return result, err
}

// Group returns the group with members, its Version read in the same snapshot.
func (v *View) Group(ctx context.Context, groupID int64) (*models.Group, error) {
	var g *models.Group
	err := v.store.View(ctx, func(ctx context.Context, r repomanager.Repos) error {
		var err error
		g, err = r.Groups().Get(ctx, groupID)
		return err
	})
	return g, err
}
