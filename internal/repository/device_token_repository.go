package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/HarshChauhan111/stream-sync-lite/internal/model"
)

type DeviceTokenRepository interface {
	Upsert(ctx context.Context, userID int64, deviceToken, platform string) error
	Delete(ctx context.Context, userID int64, deviceToken string) error
	ListByUser(ctx context.Context, userID int64) ([]model.DeviceToken, error)
	DeleteByTokens(ctx context.Context, tokens []string) error
}

type postgresDeviceTokenRepository struct {
	db *sqlx.DB
}

func NewPostgresDeviceTokenRepository(db *sqlx.DB) DeviceTokenRepository {
	return &postgresDeviceTokenRepository{db: db}
}

// Upsert keys on (user_id, token); re-registering an existing token just
// refreshes its platform.
func (r *postgresDeviceTokenRepository) Upsert(ctx context.Context, userID int64, deviceToken, platform string) error {
	query := `
		INSERT INTO device_tokens (user_id, token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, token) DO UPDATE SET platform = $3, updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query, userID, deviceToken, platform)
	return err
}

func (r *postgresDeviceTokenRepository) Delete(ctx context.Context, userID int64, deviceToken string) error {
	query := `DELETE FROM device_tokens WHERE user_id = $1 AND token = $2`
	_, err := r.db.ExecContext(ctx, query, userID, deviceToken)
	return err
}

func (r *postgresDeviceTokenRepository) ListByUser(ctx context.Context, userID int64) ([]model.DeviceToken, error) {
	tokens := []model.DeviceToken{}
	query := `SELECT * FROM device_tokens WHERE user_id = $1`
	err := r.db.SelectContext(ctx, &tokens, query, userID)
	return tokens, err
}

// DeleteByTokens drops tokens the push provider rejected as no longer valid.
func (r *postgresDeviceTokenRepository) DeleteByTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM device_tokens WHERE token IN (?)`, tokens)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	return err
}
