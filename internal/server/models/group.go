package models

import "fmt"

type GroupType string

const (
	GroupPrivate      GroupType = "Private"
	GroupPublicClosed GroupType = "PublicClosed"
	GroupPublicOpen   GroupType = "PublicOpen"
)

func (t GroupType) Valid() bool {
	return t == GroupPrivate || t == GroupPublicClosed || t == GroupPublicOpen
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

type Member struct {
	UserID int64
	Role   Role
}

// Group is the metadata record of a group library.
type Group struct {
	ID          int64
	OwnerID     int64
	Type        GroupType
	Name        string
	Description string
	URL         string

	LibraryReading string
	LibraryEditing string
	FileEditing    string

	Members []Member
	Deleted bool
	// Version is the group library version the record was read at.
	Version int64
}

// Default group settings, as a freshly created group gets them.
const (
	DefaultLibraryReading = "all"
	DefaultLibraryEditing = "members"
	DefaultFileEditing    = "none"
)

var (
	libraryReadingValues = map[string]bool{"all": true, "members": true}
	libraryEditingValues = map[string]bool{"members": true, "admins": true}
	fileEditingValues    = map[string]bool{"none": true, "members": true, "admins": true}
)

// Validate checks enumerated settings and required fields.
func (g *Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if !g.Type.Valid() {
		return fmt.Errorf("invalid group type %q", g.Type)
	}
	if !libraryReadingValues[g.LibraryReading] {
		return fmt.Errorf("invalid libraryReading %q", g.LibraryReading)
	}
	if !libraryEditingValues[g.LibraryEditing] {
		return fmt.Errorf("invalid libraryEditing %q", g.LibraryEditing)
	}
	if !fileEditingValues[g.FileEditing] {
		return fmt.Errorf("invalid fileEditing %q", g.FileEditing)
	}
	// Public groups are always readable by everyone.
	if g.Type != GroupPrivate && g.LibraryReading != "all" {
		return fmt.Errorf("public groups must have libraryReading=all")
	}
	return nil
}

// MemberRole returns the role of userID, or "" if not a member.
func (g *Group) MemberRole(userID int64) Role {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return ""
}

// GroupPatch carries optional metadata changes. Nil fields are untouched.
type GroupPatch struct {
	Name           *string
	Type           *GroupType
	Description    *string
	URL            *string
	LibraryReading *string
	LibraryEditing *string
	FileEditing    *string
}

func (p GroupPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Description == nil && p.URL == nil &&
		p.LibraryReading == nil && p.LibraryEditing == nil && p.FileEditing == nil
}

// ApplyTo writes the set fields into g.
func (p GroupPatch) ApplyTo(g *Group) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Type != nil {
		g.Type = *p.Type
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.URL != nil {
		g.URL = *p.URL
	}
	if p.LibraryReading != nil {
		g.LibraryReading = *p.LibraryReading
	}
	if p.LibraryEditing != nil {
		g.LibraryEditing = *p.LibraryEditing
	}
	if p.FileEditing != nil {
		g.FileEditing = *p.FileEditing
	}
}
