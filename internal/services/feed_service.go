package services

import (
	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// Fixed page sizes for the two feeds.
const (
	personalFeedLimit = 50
	exploreFeedLimit  = 30
)

// FeedService assembles the personalized and global feeds. Both reads are
// side-effect-free; aggregate counts are computed eagerly per post at read
// time.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a new FeedService
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// PersonalFeed returns the newest posts authored by userID or anyone userID
// follows, annotated with author identity, like/comment counts and the full
// liker-id set.
func (s *FeedService) PersonalFeed(userID uint) ([]models.FeedPost, error) {
	follows := repositories.NewPostgresFollowRepository(s.db)
	authorIDs, err := follows.GetFollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, userID)

	posts := repositories.NewPostgresPostRepository(s.db)
	rows, err := posts.GetPostsByAuthorIDs(authorIDs, personalFeedLimit)
	if err != nil {
		return nil, err
	}
	return s.annotatePosts(rows, true)
}

// ExploreFeed returns the globally most recent posts with count annotations.
// The liker-id set is omitted here.
func (s *FeedService) ExploreFeed() ([]models.FeedPost, error) {
	posts := repositories.NewPostgresPostRepository(s.db)
	rows, err := posts.GetRecentPosts(exploreFeedLimit)
	if err != nil {
		return nil, err
	}
	return s.annotatePosts(rows, false)
}

// UserPosts returns one author's posts with count annotations, most recent
// first. Used by the profile endpoint.
func (s *FeedService) UserPosts(userID uint) ([]models.FeedPost, error) {
	posts := repositories.NewPostgresPostRepository(s.db)
	rows, err := posts.GetPostsByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.annotatePosts(rows, false)
}

func (s *FeedService) annotatePosts(posts []models.Post, includeLikerIDs bool) ([]models.FeedPost, error) {
	users := repositories.NewPostgresUserRepository(s.db)
	likes := repositories.NewPostgresLikeRepository(s.db)
	comments := repositories.NewPostgresCommentRepository(s.db)

	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool)
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			authorIDs = append(authorIDs, p.UserID)
		}
	}
	authors, err := users.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := make(map[uint]models.UserCompact, len(authors))
	for _, u := range authors {
		authorMap[u.ID] = u.ToCompact()
	}

	feed := make([]models.FeedPost, len(posts))
	for i, p := range posts {
		likesCount, err := likes.GetLikesCountByPostID(p.ID)
		if err != nil {
			return nil, err
		}
		commentsCount, err := comments.GetCommentsCountByPostID(p.ID)
		if err != nil {
			return nil, err
		}

		item := models.FeedPost{
			PostResponse:  p.ToResponse(),
			Author:        authorMap[p.UserID],
			LikesCount:    likesCount,
			CommentsCount: commentsCount,
		}
		if includeLikerIDs {
			likerIDs, err := likes.GetLikerIDs(p.ID)
			if err != nil {
				return nil, err
			}
			if likerIDs == nil {
				likerIDs = []uint{}
			}
			item.Likes = likerIDs
		}
		feed[i] = item
	}
	return feed, nil
}
