package services

import (
	"errors"
	"fmt"

	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// ToggleService flips binary relations (follow edges, post likes) and emits
// the side-effect notification on the absent-to-present transition. Each
// toggle runs check-then-act inside a single transaction; the unique pair
// index is the safety net when two identical toggles race.
type ToggleService struct {
	db *gorm.DB
}

// NewToggleService creates a new ToggleService
func NewToggleService(db *gorm.DB) *ToggleService {
	return &ToggleService{db: db}
}

// ToggleFollow flips the follow edge from followerID to followingID and
// returns the resulting state (true = now following). Following yourself is
// rejected; a nonexistent followee is NotFound.
func (s *ToggleService) ToggleFollow(followerID, followingID uint) (bool, error) {
	if followerID == followingID {
		return false, fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	}

	var followed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		if _, err := users.GetUserByID(followingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, followingID)
			}
			return err
		}

		follows := repositories.NewPostgresFollowRepository(tx)
		exists, err := follows.IsFollowing(followerID, followingID)
		if err != nil {
			return err
		}
		if exists {
			followed = false
			return follows.DeleteFollow(followerID, followingID)
		}

		if err := follows.CreateFollow(&models.Follow{
			FollowerID:  followerID,
			FollowingID: followingID,
		}); err != nil {
			return err
		}

		notifications := repositories.NewPostgresNotificationRepository(tx)
		if err := notifications.CreateNotification(&models.Notification{
			RecipientID: followingID,
			ActorID:     followerID,
			Type:        models.NotificationFollow,
		}); err != nil {
			return err
		}

		followed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against an identical toggle; the edge exists.
			return true, nil
		}
		return false, err
	}
	return followed, nil
}

// TogglePostLike flips userID's like on postID and returns the resulting
// state (true = now liked). Liking your own post never notifies.
func (s *ToggleService) TogglePostLike(userID, postID uint) (bool, error) {
	var liked bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)
		post, err := posts.GetPostByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post %d", ErrNotFound, postID)
			}
			return err
		}

		likes := repositories.NewPostgresLikeRepository(tx)
		exists, err := likes.HasUserLikedPost(postID, userID)
		if err != nil {
			return err
		}
		if exists {
			liked = false
			return likes.DeleteLike(postID, userID)
		}

		if err := likes.CreateLike(&models.Like{PostID: postID, UserID: userID}); err != nil {
			return err
		}

		if post.UserID != userID {
			notifications := repositories.NewPostgresNotificationRepository(tx)
			if err := notifications.CreateNotification(&models.Notification{
				RecipientID: post.UserID,
				ActorID:     userID,
				Type:        models.NotificationLike,
				PostID:      &postID,
			}); err != nil {
				return err
			}
		}

		liked = true
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return liked, nil
}
