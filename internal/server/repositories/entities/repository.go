package entities

import (
	"context"

	"github.com/dmitrijs2005/libsync/internal/server/models"
)

type Repository interface {
	// SetVersion stamps ref as live at version, which must equal the current
	// library version (common.ErrStaleVersion otherwise).
	SetVersion(ctx context.Context, lib models.LibraryID, ref models.EntityRef, version int64) error
	// Tombstone is SetVersion that marks ref as deleted.
	Tombstone(ctx context.Context, lib models.LibraryID, ref models.EntityRef, version int64) error
	// Get returns the version of a live entity.
	Get(ctx context.Context, lib models.LibraryID, ref models.EntityRef) (int64, error)
	// List returns entity id -> version for all live entities.
	List(ctx context.Context, lib models.LibraryID) (map[string]int64, error)
	// ListSince is List restricted to versions greater than since.
	ListSince(ctx context.Context, lib models.LibraryID, since int64) (map[string]int64, error)
	// ListDeletedSince returns tombstones with versions greater than since.
	ListDeletedSince(ctx context.Context, lib models.LibraryID, since int64) ([]models.EntityRef, error)
}
