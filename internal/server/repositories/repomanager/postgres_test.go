package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/entities"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/groups"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/items"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/libraries"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/visibility"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	var _ libraries.Repository = m.Libraries(db)
	var _ entities.Repository = m.Entities(db)
	var _ groups.Repository = m.Groups(db)
	var _ items.Repository = m.Items(db)
	var _ visibility.Repository = m.Visibility(db)

	if m.Libraries(db) == nil || m.Entities(db) == nil || m.Groups(db) == nil ||
		m.Items(db) == nil || m.Visibility(db) == nil {
		t.Fatal("factory returned nil")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPostgresStore_UpdateCommits(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE libraries SET version`).
		WithArgs("u1", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewPostgresStore(db, NewPostgresRepositoryManager())
	err := s.Update(context.Background(), func(ctx context.Context, r Repos) error {
		return r.Libraries().SetVersion(ctx, models.UserLibrary(1), 2)
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStore_UpdateRollsBackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE libraries SET version`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	s := NewPostgresStore(db, NewPostgresRepositoryManager())
	err := s.Update(context.Background(), func(ctx context.Context, r Repos) error {
		return r.Libraries().SetVersion(ctx, models.UserLibrary(1), 2)
	})
	if !errors.Is(err, common.ErrStaleVersion) {
		t.Fatalf("want ErrStaleVersion, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStore_ViewReadsInTx(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT version FROM libraries WHERE library_key = \$1$`).
		WithArgs("g7").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(5)))
	mock.ExpectCommit()

	s := NewPostgresStore(db, NewPostgresRepositoryManager())
	var got int64
	err := s.View(context.Background(), func(ctx context.Context, r Repos) error {
		var err error
		got, err = r.Libraries().CurrentVersion(ctx, models.GroupLibrary(7))
		return err
	})
	if err != nil || got != 5 {
		t.Fatalf("View = %d, %v", got, err)
	}
}

func TestPostgresStore_BeginFailureIsUnavailable(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	s := NewPostgresStore(db, NewPostgresRepositoryManager())
	err := s.View(context.Background(), func(ctx context.Context, r Repos) error { return nil })
	if !errors.Is(err, common.ErrStorageUnavailable) {
		t.Fatalf("want ErrStorageUnavailable, got %v", err)
	}
}

func TestOpenPostgres_OpenError(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		if driverName != "pgx" {
			t.Errorf("driver = %q", driverName)
		}
		return nil, errors.New("bad dsn")
	}
	defer func() { sqlOpen = orig }()

	_, err := OpenPostgres(context.Background(), "postgres://nowhere")
	if !errors.Is(err, common.ErrStorageUnavailable) {
		t.Fatalf("want ErrStorageUnavailable, got %v", err)
	}
}
