package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:30;uniqueIndex:idx_users_username_lower,expression:lower(username)"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Bio       string    `json:"bio" gorm:"size:200"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"-"`
}

// UserCompact is the minimal author/actor identity embedded in feed and
// notification payloads.
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact returns the compact identity for this user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

// UserProfile is the user representation crossing the API boundary.
// Timestamps cross the boundary as unix seconds.
type UserProfile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	CreatedAt int64  `json:"created_at"`
}

// ToProfile returns the wire representation of this user.
func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.Unix(),
	}
}

// SearchResult is a matched user annotated with the follow state of the searcher.
type SearchResult struct {
	UserCompact
	Bio         string `json:"bio"`
	IsFollowing bool   `json:"is_following"`
}

// SignupRequest defines the request body for registering a new account
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for updating the own profile
type UpdateProfileRequest struct {
	Bio string `json:"bio"`
}

// UploadAvatarRequest defines the request body for uploading a profile picture
type UploadAvatarRequest struct {
	File     string `json:"file" validate:"required"` // base64, optionally with data-URL prefix
	FileName string `json:"file_name"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
