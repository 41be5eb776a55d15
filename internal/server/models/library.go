// Package models defines server-side data models persisted by the stores.
package models

import (
	"fmt"
	"strconv"
)

// LibraryType tells who owns a library.
type LibraryType string

const (
	LibraryUser  LibraryType = "user"
	LibraryGroup LibraryType = "group"
)

// LibraryID identifies a library. For user libraries ID is the user id,
// for group libraries it is the group id.
type LibraryID struct {
	Type LibraryType
	ID   int64
}

func UserLibrary(userID int64) LibraryID   { return LibraryID{Type: LibraryUser, ID: userID} }
func GroupLibrary(groupID int64) LibraryID { return LibraryID{Type: LibraryGroup, ID: groupID} }

// String renders the storage key: "u<id>" or "g<id>".
func (l LibraryID) String() string {
	switch l.Type {
	case LibraryUser:
		return "u" + strconv.FormatInt(l.ID, 10)
	case LibraryGroup:
		return "g" + strconv.FormatInt(l.ID, 10)
	default:
		return string(l.Type) + strconv.FormatInt(l.ID, 10)
	}
}

func (l LibraryID) Valid() bool {
	return (l.Type == LibraryUser || l.Type == LibraryGroup) && l.ID > 0
}

// ParseLibraryID is the inverse of LibraryID.String.
func ParseLibraryID(s string) (LibraryID, error) {
	if len(s) < 2 {
		return LibraryID{}, fmt.Errorf("invalid library id %q", s)
	}
	var t LibraryType
	switch s[0] {
	case 'u':
		t = LibraryUser
	case 'g':
		t = LibraryGroup
	default:
		return LibraryID{}, fmt.Errorf("invalid library id %q", s)
	}
	id, err := strconv.ParseInt(s[1:], 10, 64)
	if err != nil || id <= 0 {
		return LibraryID{}, fmt.Errorf("invalid library id %q", s)
	}
	return LibraryID{Type: t, ID: id}, nil
}

// Library is the versioned container row.
type Library struct {
	ID      LibraryID
	OwnerID int64
	// Version is the library's current version. It only grows.
	Version int64
	Deleted bool
}

// BaseVersion is the version a library gets when it is created.
const BaseVersion int64 = 1
