package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
)

// FavoriteVideo is a favorite's video row joined with the saved position.
type FavoriteVideo struct {
	model.Video
	LastPlayedPosition int `db:"last_played_position"`
}

type ProgressRepository interface {
	FindByUserAndVideo(ctx context.Context, userID, videoID int64) (*model.VideoProgress, error)
	ListByUserAndVideos(ctx context.Context, userID int64, videoIDs []int64) ([]model.VideoProgress, error)
	UpsertPosition(ctx context.Context, userID, videoID int64, position int) (*model.VideoProgress, error)
	Create(ctx context.Context, progress *model.VideoProgress) error
	SetFavorite(ctx context.Context, userID, videoID int64, favorite bool) error
	ListFavorites(ctx context.Context, userID int64) ([]FavoriteVideo, error)
}

type postgresProgressRepository struct {
	db *sqlx.DB
}

func NewPostgresProgressRepository(db *sqlx.DB) ProgressRepository {
	return &postgresProgressRepository{db: db}
}

func (r *postgresProgressRepository) FindByUserAndVideo(ctx context.Context, userID, videoID int64) (*model.VideoProgress, error) {
	var progress model.VideoProgress
	query := `SELECT * FROM video_progress WHERE user_id = $1 AND video_id = $2`
	err := r.db.GetContext(ctx, &progress, query, userID, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &progress, nil
}

func (r *postgresProgressRepository) ListByUserAndVideos(ctx context.Context, userID int64, videoIDs []int64) ([]model.VideoProgress, error) {
	rows := []model.VideoProgress{}
	if len(videoIDs) == 0 {
		return rows, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM video_progress WHERE user_id = ? AND video_id IN (?)`, userID, videoIDs)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...)
	return rows, err
}

// UpsertPosition relies on the (user_id, video_id) unique constraint: the
// second of two racing writers updates instead of failing.
func (r *postgresProgressRepository) UpsertPosition(ctx context.Context, userID, videoID int64, position int) (*model.VideoProgress, error) {
	var progress model.VideoProgress
	query := `
		INSERT INTO video_progress (user_id, video_id, last_played_position)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, video_id) DO UPDATE SET last_played_position = $3, updated_at = now()
		RETURNING *
	`
	err := r.db.GetContext(ctx, &progress, query, userID, videoID, position)
	if err != nil {
		return nil, err
	}

	return &progress, nil
}

func (r *postgresProgressRepository) Create(ctx context.Context, progress *model.VideoProgress) error {
	query := `
		INSERT INTO video_progress (user_id, video_id, last_played_position, is_favorite)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		progress.UserID, progress.VideoID, progress.LastPlayedPosition, progress.IsFavorite,
	).Scan(&progress.ID, &progress.CreatedAt, &progress.UpdatedAt)
}

func (r *postgresProgressRepository) SetFavorite(ctx context.Context, userID, videoID int64, favorite bool) error {
	query := `UPDATE video_progress SET is_favorite = $3, updated_at = now() WHERE user_id = $1 AND video_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, videoID, favorite)
	return err
}

// ListFavorites joins favorites with their video rows, most recently
// touched first.
func (r *postgresProgressRepository) ListFavorites(ctx context.Context, userID int64) ([]FavoriteVideo, error) {
	favorites := []FavoriteVideo{}
	query := `
		SELECT v.*, p.last_played_position
		FROM video_progress p
		JOIN videos v ON v.id = p.video_id
		WHERE p.user_id = $1 AND p.is_favorite = true
		ORDER BY p.updated_at DESC
	`
	err := r.db.SelectContext(ctx, &favorites, query, userID)
	return favorites, err
}
