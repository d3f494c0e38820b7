package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateVideosTable, downCreateVideosTable)
}

func upCreateVideosTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS videos (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			channel_name VARCHAR(255) NOT NULL,
			thumbnail_url TEXT NOT NULL,
			video_url TEXT NOT NULL,
			duration VARCHAR(20) NOT NULL DEFAULT '0:00',
			published_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			description TEXT,
			view_count INTEGER NOT NULL DEFAULT 0,
			like_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_videos_published_date ON videos(published_date DESC);
	`)
	return err
}

func downCreateVideosTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS videos;`)
	return err
}
