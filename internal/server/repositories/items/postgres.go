// Package items provides the minimal item store: existence per library.
package items

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/dbx"
	"github.com/dmitrijs2005/libsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (library_key, item_key, item_type) VALUES ($1, $2, $3)
		ON CONFLICT (library_key, item_key)
		DO UPDATE SET item_type = EXCLUDED.item_type, deleted = FALSE
		WHERE items.deleted
	`
	res, err := r.db.ExecContext(ctx, query, item.Library.String(), item.Key, item.ItemType)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		item.Deleted = false
		return nil
	case 0:
		return fmt.Errorf("%w: item %s already exists in library %s", common.ErrorValidation, item.Key, item.Library)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Delete(ctx context.Context, lib models.LibraryID, key string) error {
	query := `UPDATE items SET deleted = TRUE WHERE library_key = $1 AND item_key = $2 AND NOT deleted`
	res, err := r.db.ExecContext(ctx, query, lib.String(), key)
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
		return fmt.Errorf("item %s in library %s: %w", key, lib, common.ErrorNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Count(ctx context.Context, lib models.LibraryID) (int64, error) {
	var n int64
	query := `SELECT count(*) FROM items WHERE library_key = $1 AND NOT deleted`
	if err := r.db.QueryRowContext(ctx, query, lib.String()).Scan(&n); err != nil {
		return 0, dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return n, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, lib models.LibraryID) ([]string, error) {
	query := `
		UPDATE items SET deleted = TRUE
		WHERE library_key = $1 AND NOT deleted
		RETURNING item_key
	`
	rows, err := r.db.QueryContext(ctx, query, lib.String())
	if err != nil {
		return nil, dbx.Classify(fmt.Errorf("failed to delete items: %w", err))
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
