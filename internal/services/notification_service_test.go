package services

import (
	"context"
	"testing"
	"time"

	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/storage"
	"gorm.io/gorm"
)

func createTestNotification(t *testing.T, db *gorm.DB, recipientID, actorID uint, notifType string, postID *uint, createdAt time.Time) *models.Notification {
	t.Helper()
	notif := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        notifType,
		PostID:      postID,
		CreatedAt:   createdAt,
	}
	if err := db.Create(notif).Error; err != nil {
		t.Fatalf("create notification: %v", err)
	}
	return notif
}

func TestNotificationService_NotificationsFor(t *testing.T) {
	db := newTestDB(t)
	me := createTestUser(t, db, "me")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "hello", time.Now())

	now := time.Now()
	createTestNotification(t, db, me.ID, alice.ID, models.NotificationPost, &post.ID, now.Add(-2*time.Minute))
	createTestNotification(t, db, me.ID, bob.ID, models.NotificationFollow, nil, now.Add(-time.Minute))
	// Someone else's notification must never leak into my list.
	createTestNotification(t, db, alice.ID, bob.ID, models.NotificationFollow, nil, now)

	svc := NewNotificationService(db)
	items, unread, err := svc.NotificationsFor(me.ID)
	if err != nil {
		t.Fatalf("NotificationsFor() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if unread != 2 {
		t.Errorf("unread = %d, want 2", unread)
	}

	// Newest first, actors resolved.
	if items[0].Type != models.NotificationFollow || items[0].Actor.Username != "bob" {
		t.Errorf("first item = %s by %q, want follow by bob", items[0].Type, items[0].Actor.Username)
	}
	if items[1].Type != models.NotificationPost || items[1].Actor.Username != "alice" {
		t.Errorf("second item = %s by %q, want post by alice", items[1].Type, items[1].Actor.Username)
	}

	// Post-linked notifications carry the referenced media URL.
	if items[1].PostMediaURL != post.MediaURL {
		t.Errorf("PostMediaURL = %q, want %q", items[1].PostMediaURL, post.MediaURL)
	}
	if items[0].PostMediaURL != "" {
		t.Errorf("follow PostMediaURL = %q, want empty", items[0].PostMediaURL)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	t.Run("marks a single owned notification", func(t *testing.T) {
		db := newTestDB(t)
		me := createTestUser(t, db, "me")
		alice := createTestUser(t, db, "alice")

		now := time.Now()
		first := createTestNotification(t, db, me.ID, alice.ID, models.NotificationFollow, nil, now.Add(-time.Minute))
		createTestNotification(t, db, me.ID, alice.ID, models.NotificationStory, nil, now)

		svc := NewNotificationService(db)
		if err := svc.MarkRead(me.ID, &first.ID); err != nil {
			t.Fatalf("MarkRead() error = %v", err)
		}

		unread, err := svc.UnreadCount(me.ID)
		if err != nil {
			t.Fatalf("UnreadCount() error = %v", err)
		}
		if unread != 1 {
			t.Errorf("unread = %d, want 1", unread)
		}
	})

	t.Run("cannot mark someone else's notification", func(t *testing.T) {
		db := newTestDB(t)
		me := createTestUser(t, db, "me")
		alice := createTestUser(t, db, "alice")

		notif := createTestNotification(t, db, alice.ID, me.ID, models.NotificationFollow, nil, time.Now())

		svc := NewNotificationService(db)
		if err := svc.MarkRead(me.ID, &notif.ID); err != nil {
			t.Fatalf("MarkRead() error = %v", err)
		}

		unread, err := svc.UnreadCount(alice.ID)
		if err != nil {
			t.Fatalf("UnreadCount() error = %v", err)
		}
		if unread != 1 {
			t.Errorf("alice unread = %d, want 1 (untouched)", unread)
		}
	})

	t.Run("nil id marks everything", func(t *testing.T) {
		db := newTestDB(t)
		me := createTestUser(t, db, "me")
		alice := createTestUser(t, db, "alice")

		now := time.Now()
		for i := 0; i < 3; i++ {
			createTestNotification(t, db, me.ID, alice.ID, models.NotificationStory, nil, now.Add(time.Duration(i)*time.Second))
		}

		svc := NewNotificationService(db)
		if err := svc.MarkRead(me.ID, nil); err != nil {
			t.Fatalf("MarkRead() error = %v", err)
		}

		unread, err := svc.UnreadCount(me.ID)
		if err != nil {
			t.Fatalf("UnreadCount() error = %v", err)
		}
		if unread != 0 {
			t.Errorf("unread = %d, want 0", unread)
		}
	})
}

// TestFollowThenPostDeliversNotification walks the central flow end to end:
// two users, one follows the other, the followed user posts, and the
// follower's feed and notification list both reflect it.
func TestFollowThenPostDeliversNotification(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "usera")
	b := createTestUser(t, db, "userb")

	toggles := NewToggleService(db)
	followed, err := toggles.ToggleFollow(b.ID, a.ID)
	if err != nil {
		t.Fatalf("ToggleFollow() error = %v", err)
	}
	if !followed {
		t.Fatal("ToggleFollow() = false, want true")
	}

	posts := NewPostService(db, storage.NewMemoryStorage())
	resp, err := posts.CreatePost(context.Background(), a.ID, models.CreatePostRequest{
		Caption: "first post",
		File:    testMediaPayload(),
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	notifs := NewNotificationService(db)
	items, unread, err := notifs.NotificationsFor(b.ID)
	if err != nil {
		t.Fatalf("NotificationsFor() error = %v", err)
	}
	if unread != 1 {
		t.Errorf("unread = %d, want 1", unread)
	}
	if len(items) != 1 || items[0].Type != models.NotificationPost {
		t.Fatalf("items = %+v, want one post notification", items)
	}
	if items[0].Actor.Username != "usera" {
		t.Errorf("actor = %q, want usera", items[0].Actor.Username)
	}

	feeds := NewFeedService(db)
	feed, err := feeds.PersonalFeed(b.ID)
	if err != nil {
		t.Fatalf("PersonalFeed() error = %v", err)
	}
	if len(feed) != 1 || feed[0].ID != resp.ID {
		t.Fatalf("feed = %+v, want the new post", feed)
	}
}
