package repositories

import (
	"github.com/inko-social/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	GetPostsByAuthorIDs(authorIDs []uint, limit int) ([]models.Post, error)
	GetRecentPosts(limit int) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves one author's posts, most recent first
func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// GetPostsByAuthorIDs retrieves posts authored by any of authorIDs,
// most recent first, truncated to limit
func (r *PostgresPostRepository) GetPostsByAuthorIDs(authorIDs []uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.db.
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetRecentPosts retrieves the globally most recent posts
func (r *PostgresPostRepository) GetRecentPosts(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}
