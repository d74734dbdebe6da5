package services

import (
	"context"
	"fmt"
	"time"

	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/repositories"
	"github.com/inko-social/backend/internal/storage"
	"gorm.io/gorm"
)

// Captions longer than this are cut server-side.
const maxCaptionLen = 2200

// PostService creates posts: media upload through the storage collaborator,
// then post insert plus follower fan-out in one transaction.
type PostService struct {
	db      *gorm.DB
	storage storage.ObjectStorage
}

// NewPostService creates a new PostService
func NewPostService(db *gorm.DB, store storage.ObjectStorage) *PostService {
	return &PostService{db: db, storage: store}
}

// CreatePost uploads the media and atomically persists the post together
// with one notification per follower existing at this instant. If the
// upload fails no post is created.
func (s *PostService) CreatePost(ctx context.Context, userID uint, req models.CreatePostRequest) (*models.PostResponse, error) {
	data, err := storage.DecodeMedia(req.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "image.jpg"
	}
	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = "image"
	}

	mediaURL, err := s.storage.Upload(ctx, storage.BucketPosts, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("upload post media: %w", err)
	}

	post := &models.Post{
		UserID:    userID,
		Caption:   Truncate(req.Caption, maxCaptionLen),
		MediaType: mediaType,
		MediaURL:  mediaURL,
		CreatedAt: time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresPostRepository(tx).CreatePost(post); err != nil {
			return err
		}
		return fanOutToFollowers(tx, userID, models.NotificationPost, &post.ID)
	})
	if err != nil {
		return nil, err
	}

	resp := post.ToResponse()
	return &resp, nil
}

// Truncate cuts s to at most limit runes. Free-text limits are measured in
// characters, not bytes, so multibyte text keeps its full budget and is
// never cut mid-rune.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
