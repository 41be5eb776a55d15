package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/logging"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// GroupParams are the settings of a new group. Empty settings get the
// defaults.
type GroupParams struct {
	Name           string
	Type           models.GroupType
	Description    string
	URL            string
	LibraryReading string
	LibraryEditing string
	FileEditing    string
}

// LibraryService implements the write operations on libraries, groups,
// memberships and items on top of the Coordinator.
type LibraryService struct {
	store       repomanager.Store
	coordinator *Coordinator
	log         logging.Logger
}

func NewLibraryService(store repomanager.Store, coordinator *Coordinator, log logging.Logger) *LibraryService {
	return &LibraryService{
		store:       store,
		coordinator: coordinator,
		log:         log.With("module", "libraries"),
	}
}

// CreateLibrary creates the user library of ownerID, or a new group owned
// by ownerID together with its library. It returns the library id and its
// first version.
func (s *LibraryService) CreateLibrary(ctx context.Context, ownerID int64, typ models.LibraryType, params *GroupParams) (models.LibraryID, int64, error) {
	if ownerID <= 0 {
		return models.LibraryID{}, 0, fmt.Errorf("%w: invalid owner id %d", common.ErrorValidation, ownerID)
	}
	switch typ {
	case models.LibraryUser:
		return s.createUserLibrary(ctx, ownerID)
	case models.LibraryGroup:
		if params == nil {
			return models.LibraryID{}, 0, fmt.Errorf("%w: group settings are required", common.ErrorValidation)
		}
		return s.createGroup(ctx, ownerID, *params)
	default:
		return models.LibraryID{}, 0, fmt.Errorf("%w: invalid library type %q", common.ErrorValidation, typ)
	}
}

func (s *LibraryService) createUserLibrary(ctx context.Context, ownerID int64) (models.LibraryID, int64, error) {
	lib := models.UserLibrary(ownerID)
	version, err := s.coordinator.Apply(ctx, lib, Mutation{
		Op:     "create_library",
		Create: true,
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			return models.ChangeSet{}, r.Libraries().Create(ctx, &models.Library{ID: lib, OwnerID: ownerID})
		},
	})
	if err != nil {
		return models.LibraryID{}, 0, err
	}
	s.log.Info(ctx, "library created", "library", lib.String(), "version", version)
	return lib, version, nil
}

func (s *LibraryService) createGroup(ctx context.Context, ownerID int64, p GroupParams) (models.LibraryID, int64, error) {
	g := &models.Group{
		OwnerID:        ownerID,
		Type:           p.Type,
		Name:           strings.TrimSpace(p.Name),
		Description:    p.Description,
		URL:            p.URL,
		LibraryReading: withDefault(p.LibraryReading, models.DefaultLibraryReading),
		LibraryEditing: withDefault(p.LibraryEditing, models.DefaultLibraryEditing),
		FileEditing:    withDefault(p.FileEditing, models.DefaultFileEditing),
	}
	if g.Type == "" {
		g.Type = models.GroupPrivate
	}
	if err := g.Validate(); err != nil {
		return models.LibraryID{}, 0, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	// ids come from a sequence, so they are taken before the library lock
	err := s.store.Update(ctx, func(ctx context.Context, r repomanager.Repos) error {
		var err error
		g.ID, err = r.Groups().NextID(ctx)
		return err
	})
	if err != nil {
		return models.LibraryID{}, 0, fmt.Errorf("%w: create_library: %w", common.ErrMutationFailed, err)
	}

	lib := models.GroupLibrary(g.ID)
	version, err := s.coordinator.Apply(ctx, lib, Mutation{
		Op:      "create_library",
		Create:  true,
		Changes: models.NewChangeSet(models.GroupEntity(g.ID), models.MemberEntity(ownerID)),
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			if err := r.Libraries().Create(ctx, &models.Library{ID: lib, OwnerID: ownerID}); err != nil {
				return models.ChangeSet{}, err
			}
			if err := r.Groups().Create(ctx, g); err != nil {
				return models.ChangeSet{}, err
			}
			if err := r.Groups().AddMember(ctx, g.ID, models.Member{UserID: ownerID, Role: models.RoleOwner}); err != nil {
				return models.ChangeSet{}, err
			}
			return models.ChangeSet{}, r.Visibility().Upsert(ctx, models.SearchEntry{GroupID: g.ID, Name: g.Name, Type: g.Type})
		},
	})
	if err != nil {
		return models.LibraryID{}, 0, err
	}
	s.log.Info(ctx, "group created", "library", lib.String(), "owner", ownerID, "version", version)
	return lib, version, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// DeleteLibrary tombstones the library and every live entity in it. For a
// group it also deletes the group record and drops it from search.
func (s *LibraryService) DeleteLibrary(ctx context.Context, lib models.LibraryID) (int64, error) {
	version, err := s.coordinator.Apply(ctx, lib, Mutation{
		Op: "delete_library",
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			var cs models.ChangeSet

			live, err := r.Entities().List(ctx, lib)
			if err != nil {
				return cs, err
			}
			ids := make([]string, 0, len(live))
			for id := range live {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				ref, err := models.ParseEntityRef(id)
				if err != nil {
					return cs, fmt.Errorf("%w: %w", common.ErrorInternal, err)
				}
				cs.Delete(ref)
			}

			if _, err := r.Items().DeleteAll(ctx, lib); err != nil {
				return cs, err
			}
			if lib.Type == models.LibraryGroup {
				if err := r.Groups().MarkDeleted(ctx, lib.ID); err != nil {
					return cs, err
				}
				if err := r.Visibility().Remove(ctx, lib.ID); err != nil {
					return cs, err
				}
				cs.Delete(models.GroupEntity(lib.ID))
			}
			return cs, r.Libraries().MarkDeleted(ctx, lib)
		},
	})
	if err != nil {
		return 0, err
	}
	s.log.Info(ctx, "library deleted", "library", lib.String(), "version", version)
	return version, nil
}

// UpdateGroup applies patch to the group's metadata.
func (s *LibraryService) UpdateGroup(ctx context.Context, groupID int64, patch models.GroupPatch, ifUnmodifiedSince int64) (int64, error) {
	if patch.Empty() {
		return 0, fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}
	return s.coordinator.Apply(ctx, models.GroupLibrary(groupID), Mutation{
		Op:                "update_group",
		IfUnmodifiedSince: ifUnmodifiedSince,
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			g, err := r.Groups().Get(ctx, groupID)
			if err != nil {
				return models.ChangeSet{}, err
			}
			patch.ApplyTo(g)
			g.Name = strings.TrimSpace(g.Name)
			if err := g.Validate(); err != nil {
				return models.ChangeSet{}, fmt.Errorf("%w: %w", common.ErrorValidation, err)
			}
			if err := r.Groups().Update(ctx, g); err != nil {
				return models.ChangeSet{}, err
			}
			if err := r.Visibility().Upsert(ctx, models.SearchEntry{GroupID: g.ID, Name: g.Name, Type: g.Type}); err != nil {
				return models.ChangeSet{}, err
			}
			return models.NewChangeSet(models.GroupEntity(groupID)), nil
		},
	})
}

// AddMember adds userID to the group or changes the role of an existing
// member. The owner cannot be added or changed this way.
func (s *LibraryService) AddMember(ctx context.Context, groupID, userID int64, role models.Role) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("%w: invalid user id %d", common.ErrorValidation, userID)
	}
	if role != models.RoleAdmin && role != models.RoleMember {
		return 0, fmt.Errorf("%w: invalid member role %q", common.ErrorValidation, role)
	}
	return s.coordinator.Apply(ctx, models.GroupLibrary(groupID), Mutation{
		Op: "add_member",
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			g, err := r.Groups().Get(ctx, groupID)
			if err != nil {
				return models.ChangeSet{}, err
			}
			if g.MemberRole(userID) == models.RoleOwner {
				return models.ChangeSet{}, fmt.Errorf("%w: user %d owns group %d", common.ErrorValidation, userID, groupID)
			}
			if err := r.Groups().AddMember(ctx, groupID, models.Member{UserID: userID, Role: role}); err != nil {
				return models.ChangeSet{}, err
			}
			return models.NewChangeSet(models.GroupEntity(groupID), models.MemberEntity(userID)), nil
		},
	})
}

func (s *LibraryService) RemoveMember(ctx context.Context, groupID, userID int64) (int64, error) {
	return s.coordinator.Apply(ctx, models.GroupLibrary(groupID), Mutation{
		Op: "remove_member",
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			g, err := r.Groups().Get(ctx, groupID)
			if err != nil {
				return models.ChangeSet{}, err
			}
			if g.MemberRole(userID) == models.RoleOwner {
				return models.ChangeSet{}, fmt.Errorf("%w: the owner of group %d cannot be removed", common.ErrorValidation, groupID)
			}
			if err := r.Groups().RemoveMember(ctx, groupID, userID); err != nil {
				return models.ChangeSet{}, err
			}
			cs := models.NewChangeSet(models.GroupEntity(groupID))
			cs.Delete(models.MemberEntity(userID))
			return cs, nil
		},
	})
}

const itemKeyAlphabet = "23456789ABCDEFGHIJKLMNPQRSTUVWXYZ"

// newItemKey is a seam for tests.
var newItemKey = func() string {
	u := uuid.New()
	key := make([]byte, 8)
	for i := range key {
		key[i] = itemKeyAlphabet[int(u[i])%len(itemKeyAlphabet)]
	}
	return string(key)
}

// CreateItem adds an item to lib. An empty key gets a generated one. It
// returns the key and the new library version.
func (s *LibraryService) CreateItem(ctx context.Context, lib models.LibraryID, itemType, key string) (string, int64, error) {
	if itemType == "" {
		return "", 0, fmt.Errorf("%w: item type is required", common.ErrorValidation)
	}
	if key == "" {
		key = newItemKey()
	}
	ref := models.ItemEntity(key)
	if !ref.Valid() {
		return "", 0, fmt.Errorf("%w: invalid item key %q", common.ErrorValidation, key)
	}

	version, err := s.coordinator.Apply(ctx, lib, Mutation{
		Op: "create_item",
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			before, err := r.Items().Count(ctx, lib)
			if err != nil {
				return models.ChangeSet{}, err
			}
			if err := r.Items().Create(ctx, &models.Item{Library: lib, Key: key, ItemType: itemType}); err != nil {
				return models.ChangeSet{}, err
			}
			cs := models.NewChangeSet(ref)
			if lib.Type == models.LibraryGroup {
				cs.ItemCountChanged(lib.ID, before, before+1)
			}
			return cs, nil
		},
	})
	if err != nil {
		return "", 0, err
	}
	return key, version, nil
}

func (s *LibraryService) DeleteItem(ctx context.Context, lib models.LibraryID, key string) (int64, error) {
	return s.coordinator.Apply(ctx, lib, Mutation{
		Op: "delete_item",
		Apply: func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error) {
			before, err := r.Items().Count(ctx, lib)
			if err != nil {
				return models.ChangeSet{}, err
			}
			if err := r.Items().Delete(ctx, lib, key); err != nil {
				return models.ChangeSet{}, err
			}
			var cs models.ChangeSet
			cs.Delete(models.ItemEntity(key))
			if lib.Type == models.LibraryGroup {
				cs.ItemCountChanged(lib.ID, before, before-1)
			}
			return cs, nil
		},
	})
}

// ApplyMutation stamps an explicit change set on lib. The group record is
// managed by the group operations and cannot be part of it.
func (s *LibraryService) ApplyMutation(ctx context.Context, lib models.LibraryID, cs models.ChangeSet, ifUnmodifiedSince int64) (int64, error) {
	if cs.Len() == 0 {
		return 0, fmt.Errorf("%w: empty change set", common.ErrorValidation)
	}
	for _, ch := range cs.Changes() {
		if !ch.Entity.Valid() || ch.Entity.Kind == models.EntityGroup {
			return 0, fmt.Errorf("%w: invalid entity %q", common.ErrorValidation, ch.Entity)
		}
	}
	return s.coordinator.Apply(ctx, lib, Mutation{
		Op:                "apply_mutation",
		Changes:           cs,
		IfUnmodifiedSince: ifUnmodifiedSince,
	})
}
