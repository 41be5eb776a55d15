package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/libsync/internal/dbx"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/entities"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/groups"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/items"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/libraries"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/visibility"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Libraries(db dbx.DBTX) libraries.Repository
	Entities(db dbx.DBTX) entities.Repository
	Groups(db dbx.DBTX) groups.Repository
	Items(db dbx.DBTX) items.Repository
	Visibility(db dbx.DBTX) visibility.Repository
}

// Repos is the set of repositories bound to one store transaction.
type Repos interface {
	Libraries() libraries.Repository
	Entities() entities.Repository
	Groups() groups.Repository
	Items() items.Repository
	Visibility() visibility.Repository
}

// Store runs functions inside store transactions. Update commits when fn
// returns nil and rolls back otherwise; View gets a consistent read-only
// snapshot. Connectivity failures match common.ErrStorageUnavailable.
type Store interface {
	Update(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
	View(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
	Close() error
}
