package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	FindByIDForUser(ctx context.Context, id, userID int64) (*model.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) error
}

type postgresNotificationRepository struct {
	db *sqlx.DB
}

func NewPostgresNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, body, preview, type, linked_content_id, thumbnail_url, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_read, created_at, updated_at
	`
	data := notification.Data
	if data == nil {
		data = []byte(`{}`)
	}

	return r.db.QueryRowxContext(ctx, query,
		notification.UserID, notification.Title, notification.Body, notification.Preview,
		notification.Type, notification.LinkedContentID, notification.ThumbnailURL, data,
	).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt, &notification.UpdatedAt)
}

func (r *postgresNotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	return notifications, err
}

func (r *postgresNotificationRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID)
	return count, err
}

func (r *postgresNotificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID)
	return count, err
}

// FindByIDForUser scopes the lookup to the owner, so one user can never read
// or mutate another's notifications.
func (r *postgresNotificationRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*model.Notification, error) {
	var notification model.Notification
	query := `SELECT * FROM notifications WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &notification, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &notification, nil
}

func (r *postgresNotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET is_read = true, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *postgresNotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	query := `UPDATE notifications SET is_read = true, updated_at = now() WHERE user_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *postgresNotificationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	return err
}
