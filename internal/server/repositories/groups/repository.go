package groups

import (
	"context"

	"github.com/dmitrijs2005/libsync/internal/server/models"
)

type Repository interface {
	// NextID reserves a fresh group id. Reserved ids are never reused, even
	// if the group is never created.
	NextID(ctx context.Context) (int64, error)
	// Create inserts g with its preassigned id. Members are added separately.
	Create(ctx context.Context, g *models.Group) error
	// Get returns a live group with members and the version of its library.
	Get(ctx context.Context, id int64) (*models.Group, error)
	// Update stores the metadata fields of g.
	Update(ctx context.Context, g *models.Group) error
	MarkDeleted(ctx context.Context, id int64) error
	// AddMember inserts a member or changes the role of an existing one.
	AddMember(ctx context.Context, groupID int64, m models.Member) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	// ListForUser returns ids of live groups userID belongs to, ascending.
	ListForUser(ctx context.Context, userID int64) ([]int64, error)
	// VersionsForUser maps each live group of userID to its version.
	VersionsForUser(ctx context.Context, userID int64) (map[int64]int64, error)
}
