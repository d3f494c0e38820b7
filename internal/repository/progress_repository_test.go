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

	repo "github.com/HarshChauhan111/stream-sync-lite/internal/repository"
)

func progressColumns() []string {
	return []string{"id", "user_id", "video_id", "last_played_position", "is_favorite", "created_at", "updated_at"}
}

func TestPostgresProgressRepository_UpsertPosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProgressRepository(sqlxDB)

	now := time.Now()
	rows := sqlmock.NewRows(progressColumns()).
		AddRow(int64(1), int64(10), int64(20), 95, false, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO video_progress (user_id, video_id, last_played_position)`)).
		WithArgs(int64(10), int64(20), 95).
		WillReturnRows(rows)

	progress, err := r.UpsertPosition(context.Background(), 10, 20, 95)
	require.NoError(t, err)
	require.Equal(t, 95, progress.LastPlayedPosition)
	require.Equal(t, int64(10), progress.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProgressRepository_FindByUserAndVideo_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProgressRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM video_progress WHERE user_id = $1 AND video_id = $2`)).
		WithArgs(int64(10), int64(999)).
		WillReturnError(sql.ErrNoRows)

	progress, err := r.FindByUserAndVideo(context.Background(), 10, 999)
	require.NoError(t, err)
	require.Nil(t, progress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProgressRepository_ListByUserAndVideos_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProgressRepository(sqlxDB)

	// No ids means no query at all.
	rows, err := r.ListByUserAndVideos(context.Background(), 10, nil)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProgressRepository_SetFavorite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProgressRepository(sqlxDB)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE video_progress SET is_favorite = $3, updated_at = now() WHERE user_id = $1 AND video_id = $2`)).
		WithArgs(int64(10), int64(20), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.SetFavorite(context.Background(), 10, 20, true))
	require.NoError(t, mock.ExpectationsWereMet())
}
