package models

import "time"

// Notification kinds. A notification row is only ever created as a side
// effect of another mutation and is immutable except for the read flag.
const (
	NotificationPost    = "post"
	NotificationStory   = "story"
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification represents a user notification
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:10;index"`
	PostID      *uint     `json:"post_id,omitempty" gorm:"index"` // set for post/like/comment kinds
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"-" gorm:"index"`
}

// NotificationItem is a notification annotated with the acting user's
// identity and, when a post is referenced, its media URL.
type NotificationItem struct {
	ID           uint        `json:"id"`
	Type         string      `json:"type"`
	Actor        UserCompact `json:"actor"`
	PostID       *uint       `json:"post_id,omitempty"`
	PostMediaURL string      `json:"post_media_url,omitempty"`
	IsRead       bool        `json:"is_read"`
	CreatedAt    int64       `json:"created_at"`
}

// MarkNotificationReadRequest defines the request body for marking
// notifications read. When NotificationID is nil all of the caller's
// notifications are marked.
type MarkNotificationReadRequest struct {
	NotificationID *uint `json:"notification_id"`
}
