package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// maxCommentLen is the server-side truncation limit for comment text.
const maxCommentLen = 500

// CommentService appends comments and notifies the post owner.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateComment appends a comment to postID and, unless the commenter is
// the post's own author, notifies the author. Both writes commit atomically.
func (s *CommentService) CreateComment(userID, postID uint, text string) (*models.CommentResponse, error) {
	comment := &models.Comment{
		PostID:    postID,
		UserID:    userID,
		Text:      Truncate(text, maxCommentLen),
		CreatedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)
		post, err := posts.GetPostByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post %d", ErrNotFound, postID)
			}
			return err
		}

		if err := repositories.NewPostgresCommentRepository(tx).CreateComment(comment); err != nil {
			return err
		}

		if post.UserID != userID {
			return repositories.NewPostgresNotificationRepository(tx).CreateNotification(&models.Notification{
				RecipientID: post.UserID,
				ActorID:     userID,
				Type:        models.NotificationComment,
				PostID:      &postID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Unix(),
	}, nil
}

// CommentsForPost returns a post's comments oldest first, annotated with
// each author's identity.
func (s *CommentService) CommentsForPost(postID uint) ([]models.CommentResponse, error) {
	comments := repositories.NewPostgresCommentRepository(s.db)
	rows, err := comments.GetCommentsByPostID(postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]bool)
	for _, c := range rows {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}
	users := repositories.NewPostgresUserRepository(s.db)
	authors, err := users.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := make(map[uint]models.UserCompact, len(authors))
	for _, u := range authors {
		authorMap[u.ID] = u.ToCompact()
	}

	result := make([]models.CommentResponse, len(rows))
	for i, c := range rows {
		result[i] = models.CommentResponse{
			ID:        c.ID,
			PostID:    c.PostID,
			Text:      c.Text,
			Author:    authorMap[c.UserID],
			CreatedAt: c.CreatedAt.Unix(),
		}
	}
	return result, nil
}
