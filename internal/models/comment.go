package models

import "time"

// Comment represents a comment on a post. Comments are append-only.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Text      string    `json:"text" gorm:"size:500"`
	CreatedAt time.Time `json:"-"`
}

// CommentResponse is the wire representation of a comment, annotated with
// the author's identity on listing.
type CommentResponse struct {
	ID        uint        `json:"id"`
	PostID    uint        `json:"post_id"`
	Text      string      `json:"text"`
	Author    UserCompact `json:"author"`
	CreatedAt int64       `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}
