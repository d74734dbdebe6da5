package models

import "time"

// Post represents a media post. Posts are immutable after creation.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Caption   string    `json:"caption" gorm:"size:2200"`
	MediaType string    `json:"media_type" gorm:"size:10"` // "image" or "video"
	MediaURL  string    `json:"media_url"`
	CreatedAt time.Time `json:"-" gorm:"index"`
}

// PostResponse is the wire representation of a freshly created post.
type PostResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Caption   string `json:"caption"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	CreatedAt int64  `json:"created_at"`
}

// ToResponse returns the wire representation of this post.
func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Caption:   p.Caption,
		MediaType: p.MediaType,
		MediaURL:  p.MediaURL,
		CreatedAt: p.CreatedAt.Unix(),
	}
}

// FeedPost is a post annotated with author identity and aggregate counts.
// Likes carries the full liker-id set and is omitted on the explore feed.
type FeedPost struct {
	PostResponse
	Author        UserCompact `json:"author"`
	LikesCount    int64       `json:"likes_count"`
	CommentsCount int64       `json:"comments_count"`
	Likes         []uint      `json:"likes,omitempty"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Caption   string `json:"caption"`
	File      string `json:"file" validate:"required"` // base64, optionally with data-URL prefix
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type" validate:"omitempty,oneof=image video"`
}
