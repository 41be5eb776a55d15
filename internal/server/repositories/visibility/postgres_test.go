package visibility

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/google/go-cmp/cmp"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	upsertQ   = `(?s)INSERT\s+INTO\s+group_search.*ON\s+CONFLICT\s+\(group_id\)\s+DO\s+UPDATE\s+SET\s+name\s*=\s*EXCLUDED\.name,\s*type\s*=\s*EXCLUDED\.type\s*$`
	populateQ = `UPDATE group_search SET populated = \$2 WHERE group_id = \$1`
	removeQ   = `DELETE FROM group_search WHERE group_id = \$1`
	getQ      = `SELECT name, type, populated FROM group_search WHERE group_id = \$1`
	searchQ   = `(?s)SELECT\s+group_id,\s*name,\s*type\s+FROM\s+group_search\s+WHERE\s+populated\s+AND\s+type\s+<>\s+'Private'\s+AND\s+name\s+ILIKE\s+\$1`
)

func TestUpsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertQ).
		WithArgs(int64(7), "Test Group", "PublicOpen", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), models.SearchEntry{GroupID: 7, Name: "Test Group", Type: models.GroupPublicOpen})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetPopulated(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(populateQ).WithArgs(int64(7), true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(populateQ).WithArgs(int64(8), false).WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	if err := repo.SetPopulated(ctx, 7, true); err != nil {
		t.Fatalf("SetPopulated error: %v", err)
	}
	if err := repo.SetPopulated(ctx, 8, false); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(removeQ).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Remove(context.Background(), 7); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "type", "populated"}).AddRow("Test Group", "Private", true))
	mock.ExpectQuery(getQ).WithArgs(int64(8)).WillReturnError(sql.ErrNoRows)

	ctx := context.Background()
	got, err := repo.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	want := &models.SearchEntry{GroupID: 7, Name: "Test Group", Type: models.GroupPrivate, Populated: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
	if _, err := repo.Get(ctx, 8); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestSearch_EscapesWildcards(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(searchQ).WithArgs(`%100\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "name", "type"}).AddRow(int64(3), "100%_off", "PublicClosed"))

	got, err := repo.Search(context.Background(), "100%_off")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	want := []models.SearchEntry{{GroupID: 3, Name: "100%_off", Type: models.GroupPublicClosed, Populated: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}
