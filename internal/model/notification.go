package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type Notification struct {
	ID              int64          `db:"id" json:"id"`
	UserID          int64          `db:"user_id" json:"userId"`
	Title           string         `db:"title" json:"title"`
	Body            string         `db:"body" json:"body"`
	Preview         string         `db:"preview" json:"preview"`
	Type            string         `db:"type" json:"type"`
	LinkedContentID *string        `db:"linked_content_id" json:"linkedContentId,omitempty"`
	ThumbnailURL    *string        `db:"thumbnail_url" json:"thumbnailUrl,omitempty"`
	Data            types.JSONText `db:"data" json:"data,omitempty"`
	IsRead          bool           `db:"is_read" json:"isRead"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}
