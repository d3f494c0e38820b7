package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateVideoProgressTable, downCreateVideoProgressTable)
}

func upCreateVideoProgressTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS video_progress (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			video_id BIGINT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			last_played_position INTEGER NOT NULL DEFAULT 0,
			is_favorite BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			UNIQUE (user_id, video_id)
		);

		CREATE INDEX IF NOT EXISTS idx_video_progress_user_id ON video_progress(user_id);
	`)
	return err
}

func downCreateVideoProgressTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS video_progress;`)
	return err
}
