package visibility

import (
	"context"

	"github.com/dmitrijs2005/libsync/internal/server/models"
)

// Repository is the materialized group search index.
type Repository interface {
	// Upsert inserts an entry or refreshes its name and type. The populated
	// flag of an existing entry is kept.
	Upsert(ctx context.Context, e models.SearchEntry) error
	SetPopulated(ctx context.Context, groupID int64, populated bool) error
	Remove(ctx context.Context, groupID int64) error
	Get(ctx context.Context, groupID int64) (*models.SearchEntry, error)
	// Search returns discoverable entries whose name contains query,
	// ignoring case, ordered by name.
	Search(ctx context.Context, query string) ([]models.SearchEntry, error)
}
