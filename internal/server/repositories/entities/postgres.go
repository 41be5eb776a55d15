// Package entities provides the repository of per-entity version stamps
// used for individual lookups and bulk version listings.
package entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/dbx"
	"github.com/dmitrijs2005/libsync/internal/server/models"
)

// PostgresRepository implements entity version storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SetVersion(ctx context.Context, lib models.LibraryID, ref models.EntityRef, version int64) error {
	return r.stamp(ctx, lib, ref, version, false)
}

func (r *PostgresRepository) Tombstone(ctx context.Context, lib models.LibraryID, ref models.EntityRef, version int64) error {
	return r.stamp(ctx, lib, ref, version, true)
}

// stamp upserts the entity row only when version is the library's current
// version, so a row can never carry a version from another commit.
func (r *PostgresRepository) stamp(ctx context.Context, lib models.LibraryID, ref models.EntityRef, version int64, deleted bool) error {
	query := `
		INSERT INTO entity_versions (library_key, entity_kind, entity_key, version, deleted)
		SELECT l.library_key, $2, $3, $4, $5 FROM libraries l
		WHERE l.library_key = $1 AND l.version = $4
		ON CONFLICT (library_key, entity_kind, entity_key)
		DO UPDATE SET version = EXCLUDED.version, deleted = EXCLUDED.deleted
	`
	res, err := r.db.ExecContext(ctx, query, lib.String(), string(ref.Kind), ref.Key, version, deleted)
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
		return fmt.Errorf("%w: %s in library %s: version %d is not the library version", common.ErrStaleVersion, ref, lib, version)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Get(ctx context.Context, lib models.LibraryID, ref models.EntityRef) (int64, error) {
	query := `
		SELECT version FROM entity_versions
		WHERE library_key = $1 AND entity_kind = $2 AND entity_key = $3 AND NOT deleted
	`
	var version int64
	err := r.db.QueryRowContext(ctx, query, lib.String(), string(ref.Kind), ref.Key).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s in library %s: %w", ref, lib, common.ErrorNotFound)
		}
		return 0, dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return version, nil
}

func (r *PostgresRepository) List(ctx context.Context, lib models.LibraryID) (map[string]int64, error) {
	return r.ListSince(ctx, lib, 0)
}

func (r *PostgresRepository) ListSince(ctx context.Context, lib models.LibraryID, since int64) (map[string]int64, error) {
	query := `
		SELECT entity_kind, entity_key, version FROM entity_versions
		WHERE library_key = $1 AND NOT deleted AND version > $2
	`
	rows, err := r.db.QueryContext(ctx, query, lib.String(), since)
	if err != nil {
		return nil, dbx.Classify(fmt.Errorf("failed to select entity versions: %w", err))
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var kind, key string
		var version int64
		if err := rows.Scan(&kind, &key, &version); err != nil {
			return nil, err
		}
		result[models.EntityRef{Kind: models.EntityKind(kind), Key: key}.String()] = version
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListDeletedSince(ctx context.Context, lib models.LibraryID, since int64) ([]models.EntityRef, error) {
	query := `
		SELECT entity_kind, entity_key FROM entity_versions
		WHERE library_key = $1 AND deleted AND version > $2
		ORDER BY version, entity_kind, entity_key
	`
	rows, err := r.db.QueryContext(ctx, query, lib.String(), since)
	if err != nil {
		return nil, dbx.Classify(fmt.Errorf("failed to select tombstones: %w", err))
	}
	defer rows.Close()

	var result []models.EntityRef
	for rows.Next() {
		var kind, key string
		if err := rows.Scan(&kind, &key); err != nil {
			return nil, err
		}
		result = append(result, models.EntityRef{Kind: models.EntityKind(kind), Key: key})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
