package models

import "strings"

// SearchEntry is one row of the group visibility index.
type SearchEntry struct {
	GroupID int64
	Name    string
	Type    GroupType
	// Populated is true once the group library holds at least one item.
	Populated bool
}

// Discoverable reports whether the group may show up in search results.
func (e SearchEntry) Discoverable() bool {
	return e.Populated && e.Type != GroupPrivate
}

// Matches does a case-insensitive substring match on the name.
func (e SearchEntry) Matches(query string) bool {
	return strings.Contains(strings.ToLower(e.Name), strings.ToLower(query))
}
