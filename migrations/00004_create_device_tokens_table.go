package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateDeviceTokensTable, downCreateDeviceTokensTable)
}

func upCreateDeviceTokensTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS device_tokens (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token VARCHAR(500) NOT NULL,
			platform TEXT NOT NULL CHECK (platform IN ('android', 'ios', 'web')),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			UNIQUE (user_id, token)
		);

		CREATE INDEX IF NOT EXISTS idx_device_tokens_user_id ON device_tokens(user_id);
	`)
	return err
}

func downCreateDeviceTokensTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS device_tokens;`)
	return err
}
