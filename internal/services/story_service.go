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

// storyTTL is how long a story stays visible after creation.
const storyTTL = 24 * time.Hour

// StoryService manages the ephemeral story lifecycle. Expiry is lazy: every
// story-feed read first sweeps expired rows out of storage, so readers never
// see a story past its TTL even though no timer runs.
type StoryService struct {
	db      *gorm.DB
	storage storage.ObjectStorage
}

// NewStoryService creates a new StoryService
func NewStoryService(db *gorm.DB, store storage.ObjectStorage) *StoryService {
	return &StoryService{db: db, storage: store}
}

// CreateStory uploads the media, persists the story with a 24h expiry and
// fans a notification out to the author's followers at creation time. Story
// insert and fan-out commit atomically; the upload happens first so no story
// row exists if the storage collaborator fails.
func (s *StoryService) CreateStory(ctx context.Context, userID uint, req models.CreateStoryRequest) (*models.StoryResponse, error) {
	data, err := storage.DecodeMedia(req.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "story.jpg"
	}
	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = "image"
	}

	mediaURL, err := s.storage.Upload(ctx, storage.BucketStories, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("upload story media: %w", err)
	}

	now := time.Now()
	story := &models.Story{
		UserID:    userID,
		MediaType: mediaType,
		MediaURL:  mediaURL,
		CreatedAt: now,
		ExpiresAt: now.Add(storyTTL),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresStoryRepository(tx).CreateStory(story); err != nil {
			return err
		}
		return fanOutToFollowers(tx, userID, models.NotificationStory, nil)
	})
	if err != nil {
		return nil, err
	}

	resp := story.ToResponse()
	return &resp, nil
}

// RecordView records that viewerID saw storyID. Duplicate calls are no-ops.
func (s *StoryService) RecordView(viewerID, storyID uint) error {
	stories := repositories.NewPostgresStoryRepository(s.db)
	return stories.CreateView(&models.StoryView{StoryID: storyID, UserID: viewerID})
}

// StoriesForViewer returns the still-active stories of everyone viewerID
// follows, grouped by author with each group's stories most recent first and
// carrying their accumulated viewer ids. Expired stories are swept before
// the read.
func (s *StoryService) StoriesForViewer(viewerID uint) ([]models.StoryGroup, error) {
	now := time.Now()
	stories := repositories.NewPostgresStoryRepository(s.db)
	if err := stories.DeleteExpiredStories(now); err != nil {
		return nil, err
	}

	follows := repositories.NewPostgresFollowRepository(s.db)
	authorIDs, err := follows.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}

	rows, err := stories.GetActiveStoriesByAuthorIDs(authorIDs, now)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []models.StoryGroup{}, nil
	}

	storyIDs := make([]uint, len(rows))
	for i, st := range rows {
		storyIDs[i] = st.ID
	}
	viewsByStory, err := stories.GetViewerIDsByStoryIDs(storyIDs)
	if err != nil {
		return nil, err
	}

	users := repositories.NewPostgresUserRepository(s.db)
	presentAuthorIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]bool)
	for _, st := range rows {
		if !seen[st.UserID] {
			seen[st.UserID] = true
			presentAuthorIDs = append(presentAuthorIDs, st.UserID)
		}
	}
	authors, err := users.GetUsersByIDs(presentAuthorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := make(map[uint]models.UserCompact, len(authors))
	for _, u := range authors {
		authorMap[u.ID] = u.ToCompact()
	}

	// Rows come back most recent first; group order follows each author's
	// newest story, matching the per-group story order.
	groups := make([]models.StoryGroup, 0, len(presentAuthorIDs))
	groupIndex := make(map[uint]int, len(presentAuthorIDs))
	for _, st := range rows {
		views := viewsByStory[st.ID]
		if views == nil {
			views = []uint{}
		}
		item := models.StoryItem{
			ID:        st.ID,
			MediaType: st.MediaType,
			MediaURL:  st.MediaURL,
			CreatedAt: st.CreatedAt.Unix(),
			Views:     views,
		}
		idx, ok := groupIndex[st.UserID]
		if !ok {
			idx = len(groups)
			groupIndex[st.UserID] = idx
			groups = append(groups, models.StoryGroup{Author: authorMap[st.UserID]})
		}
		groups[idx].Stories = append(groups[idx].Stories, item)
	}
	return groups, nil
}
