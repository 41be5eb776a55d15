package items

import (
	"context"

	"github.com/dmitrijs2005/libsync/internal/server/models"
)

type Repository interface {
	// Create inserts a live item. Re-creating a deleted key revives it;
	// an existing live key is a validation error.
	Create(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, lib models.LibraryID, key string) error
	// Count returns the number of live items in lib.
	Count(ctx context.Context, lib models.LibraryID) (int64, error)
	// DeleteAll deletes every live item of lib and returns their keys.
	DeleteAll(ctx context.Context, lib models.LibraryID) ([]string, error)
}
