package repositories

import (
	"time"

	"github.com/inko-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	CreateStory(story *models.Story) error
	GetStoryByID(id uint) (*models.Story, error)
	DeleteExpiredStories(now time.Time) error
	GetActiveStoriesByAuthorIDs(authorIDs []uint, now time.Time) ([]models.Story, error)
	CreateView(view *models.StoryView) error
	GetViewerIDsByStoryIDs(storyIDs []uint) (map[uint][]uint, error)
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db *gorm.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

// CreateStory creates a new story
func (r *PostgresStoryRepository) CreateStory(story *models.Story) error {
	return r.db.Create(story).Error
}

// GetStoryByID retrieves a story by ID
func (r *PostgresStoryRepository) GetStoryByID(id uint) (*models.Story, error) {
	var story models.Story
	if err := r.db.First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// DeleteExpiredStories physically removes every story whose expiry has passed.
func (r *PostgresStoryRepository) DeleteExpiredStories(now time.Time) error {
	return r.db.Where("expires_at <= ?", now).Delete(&models.Story{}).Error
}

// GetActiveStoriesByAuthorIDs retrieves still-active stories authored by any
// of authorIDs, most recent first
func (r *PostgresStoryRepository) GetActiveStoriesByAuthorIDs(authorIDs []uint, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	if len(authorIDs) == 0 {
		return stories, nil
	}
	err := r.db.
		Where("user_id IN ? AND expires_at > ?", authorIDs, now).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

// CreateView inserts a story view. Duplicate (story, viewer) pairs are
// silently ignored, so the operation is idempotent.
func (r *PostgresStoryRepository) CreateView(view *models.StoryView) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(view).Error
}

// GetViewerIDsByStoryIDs retrieves, per story id, the ids of all viewers
func (r *PostgresStoryRepository) GetViewerIDsByStoryIDs(storyIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var views []models.StoryView
	if err := r.db.Where("story_id IN ?", storyIDs).Find(&views).Error; err != nil {
		return nil, err
	}
	for _, v := range views {
		result[v.StoryID] = append(result[v.StoryID], v.UserID)
	}
	return result, nil
}
