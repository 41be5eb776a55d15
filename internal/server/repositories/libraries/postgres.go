// Package libraries provides the repository of library rows, which own the
// per-library version counter.
package libraries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/dbx"
	"github.com/dmitrijs2005/libsync/internal/server/models"
)

// PostgresRepository implements library storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, lib *models.Library) error {
	query := `
		INSERT INTO libraries (library_key, library_type, library_id, owner_id, version)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (library_key) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, lib.ID.String(), string(lib.ID.Type), lib.ID.ID, lib.OwnerID)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		lib.Version = 0
		lib.Deleted = false
		return nil
	case 0:
		return fmt.Errorf("%w: library %s already exists", common.ErrorValidation, lib.ID)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Get(ctx context.Context, id models.LibraryID) (*models.Library, error) {
	query := `
		SELECT owner_id, version, deleted FROM libraries
		WHERE library_key = $1
	`
	lib := &models.Library{ID: id}
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&lib.OwnerID, &lib.Version, &lib.Deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("library %s: %w", id, common.ErrorNotFound)
		}
		return nil, dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	if lib.Deleted {
		return nil, fmt.Errorf("library %s: %w", id, common.ErrorNotFound)
	}
	return lib, nil
}

func (r *PostgresRepository) CurrentVersion(ctx context.Context, id models.LibraryID) (int64, error) {
	return r.version(ctx, `SELECT version FROM libraries WHERE library_key = $1`, id)
}

func (r *PostgresRepository) LockVersion(ctx context.Context, id models.LibraryID) (int64, error) {
	return r.version(ctx, `SELECT version FROM libraries WHERE library_key = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) version(ctx context.Context, query string, id models.LibraryID) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("library %s: %w", id, common.ErrorNotFound)
		}
		return 0, dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return version, nil
}

func (r *PostgresRepository) SetVersion(ctx context.Context, id models.LibraryID, version int64) error {
	query := `
		UPDATE libraries SET version = $2, updated_at = now()
		WHERE library_key = $1 AND version < $2
	`
	res, err := r.db.ExecContext(ctx, query, id.String(), version)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%w: library %s is already at or past version %d", common.ErrStaleVersion, id, version)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) MarkDeleted(ctx context.Context, id models.LibraryID) error {
	query := `
		UPDATE libraries SET deleted = TRUE, updated_at = now()
		WHERE library_key = $1 AND NOT deleted
	`
	res, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("library %s: %w", id, common.ErrorNotFound)
	}
	return nil
}
