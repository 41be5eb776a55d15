// Package groups provides the repository of group metadata and membership.
package groups

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT nextval(pg_get_serial_sequence('groups', 'id'))`).Scan(&id)
	if err != nil {
		return 0, dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return id, nil
}

func (r *PostgresRepository) Create(ctx context.Context, g *models.Group) error {
	query := `
		INSERT INTO groups (id, owner_id, type, name, description, url,
			library_reading, library_editing, file_editing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query, g.ID, g.OwnerID, string(g.Type), g.Name, g.Description, g.URL,
		g.LibraryReading, g.LibraryEditing, g.FileEditing)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Group, error) {
	query := `
		SELECT g.owner_id, g.type, g.name, g.description, g.url,
			g.library_reading, g.library_editing, g.file_editing, l.version
		FROM groups g
		JOIN libraries l ON l.library_key = 'g' || g.id::text
		WHERE g.id = $1 AND NOT g.deleted
	`
	g := &models.Group{ID: id}
	var groupType string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.OwnerID, &groupType, &g.Name, &g.Description, &g.URL,
		&g.LibraryReading, &g.LibraryEditing, &g.FileEditing, &g.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group %d: %w", id, common.ErrorNotFound)
		}
		return nil, dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	g.Type = models.GroupType(groupType)

	members, err := r.members(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Members = members
	return g, nil
}

func (r *PostgresRepository) members(ctx context.Context, groupID int64) ([]models.Member, error) {
	query := `SELECT user_id, role FROM group_members WHERE group_id = $1 ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, dbx.Classify(fmt.Errorf("failed to select members: %w", err))
	}
	defer rows.Close()

	var result []models.Member
	for rows.Next() {
		var m models.Member
		var role string
		if err := rows.Scan(&m.UserID, &role); err != nil {
			return nil, err
		}
		m.Role = models.Role(role)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, g *models.Group) error {
	query := `
		UPDATE groups SET type = $2, name = $3, description = $4, url = $5,
			library_reading = $6, library_editing = $7, file_editing = $8
		WHERE id = $1 AND NOT deleted
	`
	res, err := r.db.ExecContext(ctx, query, g.ID, string(g.Type), g.Name, g.Description, g.URL,
		g.LibraryReading, g.LibraryEditing, g.FileEditing)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return expectOne(res, fmt.Sprintf("group %d", g.ID))
}

func (r *PostgresRepository) MarkDeleted(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE groups SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return expectOne(res, fmt.Sprintf("group %d", id))
}

func (r *PostgresRepository) AddMember(ctx context.Context, groupID int64, m models.Member) error {
	query := `
		INSERT INTO group_members (group_id, user_id, role) VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`
	if _, err := r.db.ExecContext(ctx, query, groupID, m.UserID, string(m.Role)); err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return nil
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return dbx.Classify(fmt.Errorf("db error: %w", err))
	}
	return expectOne(res, fmt.Sprintf("member %d of group %d", userID, groupID))
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT g.id FROM group_members m
		JOIN groups g ON g.id = m.group_id
		WHERE m.user_id = $1 AND NOT g.deleted
		ORDER BY g.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dbx.Classify(fmt.Errorf("failed to select groups: %w", err))
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// VersionsForUser reads the group entity stamps, which every mutation of a
// group library refreshes, so the result agrees with the library listing.
func (r *PostgresRepository) VersionsForUser(ctx context.Context, userID int64) (map[int64]int64, error) {
	query := `
		SELECT g.id, e.version FROM group_members m
		JOIN groups g ON g.id = m.group_id
		JOIN entity_versions e ON e.library_key = 'g' || g.id::text
			AND e.entity_kind = 'group' AND e.entity_key = g.id::text
		WHERE m.user_id = $1 AND NOT g.deleted AND NOT e.deleted
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dbx.Classify(fmt.Errorf("failed to select group versions: %w", err))
	}
	defer rows.Close()

	result := make(map[int64]int64)
	for rows.Next() {
		var id, version int64
		if err := rows.Scan(&id, &version); err != nil {
			return nil, err
		}
		result[id] = version
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%s: %w", what, common.ErrorNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
