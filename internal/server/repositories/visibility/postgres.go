// Package visibility provides the group search index kept in step with
// group library item counts.
package visibility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func (r *PostgresRepository) Upsert(ctx context.Context, e models.SearchEntry) error {
	query := `
		INSERT INTO group_search (group_id, name, type, populated) VALUES ($1, $2, $3, $4)
		ON CONFLICT (group_id) DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type
	`
	if _, err := r.db.ExecContext(ctx, query, e.GroupID, e.Name, string(e.Type), e.Populated); err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return nil
}

func (r *PostgresRepository) SetPopulated(ctx context.Context, groupID int64, populated bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE group_search SET populated = $2 WHERE group_id = $1`, groupID, populated)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("search entry %d: %w", groupID, common.ErrorNotFound)
	}
	return nil
}

// Remove is idempotent.
func (r *PostgresRepository) Remove(ctx context.Context, groupID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM group_search WHERE group_id = $1`, groupID); err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, groupID int64) (*models.SearchEntry, error) {
	query := `SELECT name, type, populated FROM group_search WHERE group_id = $1`
	e := &models.SearchEntry{GroupID: groupID}
	var groupType string
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(&e.Name, &groupType, &e.Populated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("search entry %d: %w", groupID, common.ErrorNotFound)
		}
		return nil, dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	e.Type = models.GroupType(groupType)
	return e, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PostgresRepository) Search(ctx context.Context, query string) ([]models.SearchEntry, error) {
	q := `
		SELECT group_id, name, type FROM group_search
		WHERE populated AND type <> 'Private' AND name ILIKE $1 ESCAPE '\'
		ORDER BY name, group_id
	`
	rows, err := r.db.QueryContext(ctx, q, "%"+likeEscaper.Replace(query)+"%")
	if err != nil {
		return nil, dbx.Classify(fmt.Errorf("failed to search groups: %w", err))
	}
	defer rows.Close()

	var result []models.SearchEntry
	for rows.Next() {
		e := models.SearchEntry{Populated: true}
		var groupType string
		if err := rows.Scan(&e.GroupID, &e.Name, &groupType); err != nil {
			return nil, err
		}
		e.Type = models.GroupType(groupType)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
