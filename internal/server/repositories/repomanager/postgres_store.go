package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/dbx"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/entities"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/groups"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/items"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/libraries"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/visibility"
)

// PostgresStore is a Store over a *sql.DB. Updates run in default
// transactions (row locks serialize writers of one library), views run in
// read-only repeatable-read transactions.
type PostgresStore struct {
	db *sql.DB
	m  RepositoryManager
}

func NewPostgresStore(db *sql.DB, m RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, m: m}
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// OpenPostgres connects to dsn with the pgx driver, checks connectivity and
// applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	m := NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return NewPostgresStore(db, m), nil
}

func (s *PostgresStore) Update(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &txRepos{m: s.m, tx: tx})
	})
}

func (s *PostgresStore) View(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return dbx.WithTx(ctx, s.db, dbx.ReadOnlySnapshot, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &txRepos{m: s.m, tx: tx})
	})
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// txRepos binds the manager's repositories to one transaction.
type txRepos struct {
	m  RepositoryManager
	tx dbx.DBTX
}

func (r *txRepos) Libraries() libraries.Repository   { return r.m.Libraries(r.tx) }
func (r *txRepos) Entities() entities.Repository     { return r.m.Entities(r.tx) }
func (r *txRepos) Groups() groups.Repository         { return r.m.Groups(r.tx) }
func (r *txRepos) Items() items.Repository           { return r.m.Items(r.tx) }
func (r *txRepos) Visibility() visibility.Repository { return r.m.Visibility(r.tx) }
