package models

// Item is the minimal bibliographic record the versioning core needs: it
// only tracks existence per library.
type Item struct {
	Library  LibraryID
	Key      string
	ItemType string
	Deleted  bool
	Version  int64
}
