package model

import "time"

// VideoProgress tracks one user's position and favorite flag for one video.
// The (user_id, video_id) pair is unique at the store level; writes go
// through upserts rather than read-modify-write.
type VideoProgress struct {
	ID                 int64     `db:"id" json:"id"`
	UserID             int64     `db:"user_id" json:"userId"`
	VideoID            int64     `db:"video_id" json:"videoId"`
	LastPlayedPosition int       `db:"last_played_position" json:"lastPlayedPosition"`
	IsFavorite         bool      `db:"is_favorite" json:"isFavorite"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
