package repositories

import (
	"github.com/inko-social/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID, userID uint) error
	HasUserLikedPost(postID, userID uint) (bool, error)
	GetLikesCountByPostID(postID uint) (int64, error)
	GetLikerIDs(postID uint) ([]uint, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like
func (r *PostgresLikeRepository) DeleteLike(postID, userID uint) error {
	return r.db.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// GetLikerIDs retrieves the ids of all users who liked a specific post
func (r *PostgresLikeRepository) GetLikerIDs(postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Pluck("user_id", &ids).Error
	return ids, err
}
