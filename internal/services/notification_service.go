package services

import (
	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// notificationsLimit is the fixed page size for the notification list.
const notificationsLimit = 50

// fanOutToFollowers inserts one notification per current follower of
// actorID at the instant of the call. It runs inside the creating
// mutation's transaction, so the follower set is a snapshot taken at
// content-creation time: later follows or unfollows never change who was
// notified.
func fanOutToFollowers(tx *gorm.DB, actorID uint, notifType string, postID *uint) error {
	follows := repositories.NewPostgresFollowRepository(tx)
	followerIDs, err := follows.GetFollowerIDs(actorID)
	if err != nil {
		return err
	}

	notifications := make([]models.Notification, 0, len(followerIDs))
	for _, followerID := range followerIDs {
		notifications = append(notifications, models.Notification{
			RecipientID: followerID,
			ActorID:     actorID,
			Type:        notifType,
			PostID:      postID,
		})
	}
	return repositories.NewPostgresNotificationRepository(tx).CreateNotifications(notifications)
}

// NotificationService is the read side of the notification log.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotificationsFor returns the newest notifications for userID, each
// annotated with the acting user's identity and, when a post is referenced,
// its media URL. The unread count accompanies the list.
func (s *NotificationService) NotificationsFor(userID uint) ([]models.NotificationItem, int64, error) {
	notifications := repositories.NewPostgresNotificationRepository(s.db)

	rows, err := notifications.GetByRecipientID(userID, notificationsLimit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := notifications.GetUnreadCount(userID)
	if err != nil {
		return nil, 0, err
	}

	actorIDs := make([]uint, 0, len(rows))
	postIDs := make([]uint, 0, len(rows))
	seenActors := make(map[uint]bool)
	for _, n := range rows {
		if !seenActors[n.ActorID] {
			seenActors[n.ActorID] = true
			actorIDs = append(actorIDs, n.ActorID)
		}
		if n.PostID != nil {
			postIDs = append(postIDs, *n.PostID)
		}
	}

	users := repositories.NewPostgresUserRepository(s.db)
	actors, err := users.GetUsersByIDs(actorIDs)
	if err != nil {
		return nil, 0, err
	}
	actorMap := make(map[uint]models.UserCompact, len(actors))
	for _, u := range actors {
		actorMap[u.ID] = u.ToCompact()
	}

	mediaByPost := make(map[uint]string)
	if len(postIDs) > 0 {
		var posts []models.Post
		if err := s.db.Where("id IN ?", postIDs).Find(&posts).Error; err != nil {
			return nil, 0, err
		}
		for _, p := range posts {
			mediaByPost[p.ID] = p.MediaURL
		}
	}

	items := make([]models.NotificationItem, len(rows))
	for i, n := range rows {
		item := models.NotificationItem{
			ID:        n.ID,
			Type:      n.Type,
			Actor:     actorMap[n.ActorID],
			PostID:    n.PostID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Unix(),
		}
		if n.PostID != nil {
			item.PostMediaURL = mediaByPost[*n.PostID]
		}
		items[i] = item
	}
	return items, unread, nil
}

// UnreadCount returns the number of unread notifications for userID.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return repositories.NewPostgresNotificationRepository(s.db).GetUnreadCount(userID)
}

// MarkRead flips the read flag for one notification owned by userID, or for
// all of userID's notifications when notificationID is nil.
func (s *NotificationService) MarkRead(userID uint, notificationID *uint) error {
	notifications := repositories.NewPostgresNotificationRepository(s.db)
	if notificationID != nil {
		return notifications.MarkAsRead(userID, *notificationID)
	}
	return notifications.MarkAllAsRead(userID)
}
