package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
)

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, id int64) (*model.Video, error)
	List(ctx context.Context, limit, offset int) ([]model.Video, error)
	Count(ctx context.Context) (int, error)
}

type postgresVideoRepository struct {
	db *sqlx.DB
}

func NewPostgresVideoRepository(db *sqlx.DB) VideoRepository {
	return &postgresVideoRepository{db: db}
}

func (r *postgresVideoRepository) Create(ctx context.Context, video *model.Video) error {
	query := `INSERT INTO videos (title, channel_name, thumbnail_url, video_url, duration, published_date, description, view_count, like_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query,
		video.Title, video.ChannelName, video.ThumbnailURL, video.VideoURL,
		video.Duration, video.PublishedDate, video.Description, video.ViewCount, video.LikeCount,
	).Scan(&video.ID, &video.CreatedAt, &video.UpdatedAt)
}

func (r *postgresVideoRepository) FindByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	query := `SELECT * FROM videos WHERE id = $1`
	err := r.db.GetContext(ctx, &video, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &video, nil
}

// List returns the newest videos first, by published date.
func (r *postgresVideoRepository) List(ctx context.Context, limit, offset int) ([]model.Video, error) {
	videos := []model.Video{}
	query := `SELECT * FROM videos ORDER BY published_date DESC LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &videos, query, limit, offset)
	return videos, err
}

func (r *postgresVideoRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM videos`)
	return count, err
}
