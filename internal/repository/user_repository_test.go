package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
	repo "github.com/HarshChauhan111/stream-sync-lite/internal/repository"
)

func TestPostgresUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`)).
		WithArgs("Name", "a@b.com", "hash", model.RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	user := &model.User{Name: "Name", Email: "a@b.com", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, r.Create(context.Background(), user))
	require.Equal(t, int64(7), user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(int64(1), "Name", "a@b.com", "hash", model.RoleUser, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`)).
		WithArgs("a@b.com").WillReturnRows(rows)

	u, err := r.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "a@b.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`)).
		WithArgs("missing@b.com").WillReturnError(sql.ErrNoRows)

	// Absence is not an error. Callers decide what a missing user means.
	u, err := r.FindByEmail(context.Background(), "missing@b.com")
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	u, err := r.FindByID(context.Background(), 123)
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}
