package models

import (
	"fmt"
	"strconv"
	"strings"
)

type EntityKind string

const (
	EntityGroup  EntityKind = "group"
	EntityMember EntityKind = "member"
	EntityItem   EntityKind = "item"
)

// EntityRef names one individually versioned record within a library.
type EntityRef struct {
	Kind EntityKind
	Key  string
}

func GroupEntity(groupID int64) EntityRef {
	return EntityRef{Kind: EntityGroup, Key: strconv.FormatInt(groupID, 10)}
}

func MemberEntity(userID int64) EntityRef {
	return EntityRef{Kind: EntityMember, Key: strconv.FormatInt(userID, 10)}
}

func ItemEntity(key string) EntityRef {
	return EntityRef{Kind: EntityItem, Key: key}
}

// String is the id used in version listings. The group entity is listed
// under its bare group id, everything else as "<kind>:<key>".
func (e EntityRef) String() string {
	if e.Kind == EntityGroup {
		return e.Key
	}
	return string(e.Kind) + ":" + e.Key
}

func (e EntityRef) Valid() bool {
	switch e.Kind {
	case EntityGroup, EntityMember, EntityItem:
		return e.Key != "" && !strings.Contains(e.Key, ":")
	default:
		return false
	}
}

// ParseEntityRef is the inverse of EntityRef.String.
func ParseEntityRef(s string) (EntityRef, error) {
	kind, key, ok := strings.Cut(s, ":")
	if !ok {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return EntityRef{}, fmt.Errorf("invalid entity id %q", s)
		}
		return EntityRef{Kind: EntityGroup, Key: s}, nil
	}
	ref := EntityRef{Kind: EntityKind(kind), Key: key}
	if ref.Kind == EntityGroup || !ref.Valid() {
		return EntityRef{}, fmt.Errorf("invalid entity id %q", s)
	}
	return ref, nil
}

// EntityVersion is the version stamp of one entity.
type EntityVersion struct {
	Library LibraryID
	Entity  EntityRef
	Version int64
	Deleted bool
}
