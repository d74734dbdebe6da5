package models

import "time"

// Story represents an ephemeral media item. A story is visible while
// now < ExpiresAt and is physically removed by the lazy expiry sweep.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	MediaType string    `json:"media_type" gorm:"size:10"`
	MediaURL  string    `json:"media_url"`
	CreatedAt time.Time `json:"-" gorm:"index"`
	ExpiresAt time.Time `json:"-" gorm:"index"`
}

// StoryView records that a user viewed a story. One row per (story, viewer).
type StoryView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"story_id" gorm:"index;uniqueIndex:idx_story_user_view"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_view"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryResponse is the wire representation of a story.
type StoryResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// ToResponse returns the wire representation of this story.
func (s *Story) ToResponse() StoryResponse {
	return StoryResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		MediaType: s.MediaType,
		MediaURL:  s.MediaURL,
		CreatedAt: s.CreatedAt.Unix(),
		ExpiresAt: s.ExpiresAt.Unix(),
	}
}

// StoryItem is one active story inside an author group, with the ids of
// everyone who has viewed it.
type StoryItem struct {
	ID        uint   `json:"id"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	CreatedAt int64  `json:"created_at"`
	Views     []uint `json:"views"`
}

// StoryGroup is all active stories of one followed author, most recent first.
type StoryGroup struct {
	Author  UserCompact `json:"author"`
	Stories []StoryItem `json:"stories"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	File      string `json:"file" validate:"required"` // base64, optionally with data-URL prefix
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type" validate:"omitempty,oneof=image video"`
}
