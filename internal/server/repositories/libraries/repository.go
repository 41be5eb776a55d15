package libraries

import (
	"context"

	"github.com/dmitrijs2005/libsync/internal/server/models"
)

type Repository interface {
	// Create inserts a library row at version 0. The creating mutation moves
	// it to models.BaseVersion.
	Create(ctx context.Context, lib *models.Library) error
	// Get returns a live library; deleted or missing ones are not found.
	Get(ctx context.Context, id models.LibraryID) (*models.Library, error)
	// CurrentVersion returns the stored version, deleted or not.
	CurrentVersion(ctx context.Context, id models.LibraryID) (int64, error)
	// LockVersion is CurrentVersion that also holds the row until commit.
	LockVersion(ctx context.Context, id models.LibraryID) (int64, error)
	// SetVersion stores version if it is strictly greater than the current
	// one, otherwise it fails with common.ErrStaleVersion.
	SetVersion(ctx context.Context, id models.LibraryID, version int64) error
	MarkDeleted(ctx context.Context, id models.LibraryID) error
}
