package model

import "time"

type Video struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	ChannelName   string    `db:"channel_name" json:"channelName"`
	ThumbnailURL  string    `db:"thumbnail_url" json:"thumbnailUrl"`
	VideoURL      string    `db:"video_url" json:"videoUrl"`
	Duration      string    `db:"duration" json:"duration"`
	PublishedDate time.Time `db:"published_date" json:"publishedDate"`
	Description   *string   `db:"description" json:"description,omitempty"`
	ViewCount     int       `db:"view_count" json:"viewCount"`
	LikeCount     int       `db:"like_count" json:"likeCount"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// VideoWithProgress is a Video enriched with the viewer's own progress row.
// For anonymous callers both extra fields stay at their zero values.
type VideoWithProgress struct {
	Video
	IsFavorite         bool `json:"isFavorite"`
	LastPlayedPosition int  `json:"lastPlayedPosition"`
}
