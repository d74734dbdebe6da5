package services

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/inko-social/backend/internal/models"
)

func TestCommentService_CreateComment(t *testing.T) {
	t.Run("notifies the post author", func(t *testing.T) {
		db := newTestDB(t)
		author := createTestUser(t, db, "author")
		commenter := createTestUser(t, db, "commenter")
		post := createTestPost(t, db, author.ID, "hello", time.Now())

		svc := NewCommentService(db)
		resp, err := svc.CreateComment(commenter.ID, post.ID, "great shot")
		if err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
		if resp.Text != "great shot" {
			t.Errorf("Text = %q, want %q", resp.Text, "great shot")
		}

		var notif models.Notification
		if err := db.Where("recipient_id = ? AND type = ?", author.ID, models.NotificationComment).First(&notif).Error; err != nil {
			t.Fatalf("expected comment notification: %v", err)
		}
		if notif.ActorID != commenter.ID {
			t.Errorf("ActorID = %d, want %d", notif.ActorID, commenter.ID)
		}
		if notif.PostID == nil || *notif.PostID != post.ID {
			t.Errorf("PostID = %v, want %d", notif.PostID, post.ID)
		}
	})

	t.Run("commenting on own post stays silent", func(t *testing.T) {
		db := newTestDB(t)
		author := createTestUser(t, db, "author")
		post := createTestPost(t, db, author.ID, "hello", time.Now())

		svc := NewCommentService(db)
		if _, err := svc.CreateComment(author.ID, post.ID, "me again"); err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
		if n := countRows(t, db, &models.Notification{}, "recipient_id = ?", author.ID); n != 0 {
			t.Errorf("notifications = %d, want 0", n)
		}
	})

	t.Run("truncates long text", func(t *testing.T) {
		db := newTestDB(t)
		author := createTestUser(t, db, "author")
		post := createTestPost(t, db, author.ID, "hello", time.Now())

		svc := NewCommentService(db)
		resp, err := svc.CreateComment(author.ID, post.ID, strings.Repeat("y", maxCommentLen+50))
		if err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
		if len(resp.Text) != maxCommentLen {
			t.Errorf("text length = %d, want %d", len(resp.Text), maxCommentLen)
		}
	})

	t.Run("truncates multibyte text by character", func(t *testing.T) {
		db := newTestDB(t)
		author := createTestUser(t, db, "author")
		post := createTestPost(t, db, author.ID, "hello", time.Now())

		svc := NewCommentService(db)
		resp, err := svc.CreateComment(author.ID, post.ID, strings.Repeat("ñ", maxCommentLen+25))
		if err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
		if got := utf8.RuneCountInString(resp.Text); got != maxCommentLen {
			t.Errorf("text runes = %d, want %d", got, maxCommentLen)
		}
		if !utf8.ValidString(resp.Text) {
			t.Error("text is not valid UTF-8")
		}
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		db := newTestDB(t)
		commenter := createTestUser(t, db, "commenter")

		svc := NewCommentService(db)
		_, err := svc.CreateComment(commenter.ID, 31337, "hello?")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("CreateComment() error = %v, want ErrNotFound", err)
		}
		if n := countRows(t, db, &models.Comment{}, "user_id = ?", commenter.ID); n != 0 {
			t.Errorf("comment rows = %d, want 0", n)
		}
	})
}

func TestCommentService_CommentsForPost(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, author.ID, "hello", time.Now())

	now := time.Now()
	comments := []models.Comment{
		{PostID: post.ID, UserID: alice.ID, Text: "first", CreatedAt: now.Add(-2 * time.Minute)},
		{PostID: post.ID, UserID: bob.ID, Text: "second", CreatedAt: now.Add(-time.Minute)},
	}
	for i := range comments {
		if err := db.Create(&comments[i]).Error; err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	svc := NewCommentService(db)
	got, err := svc.CommentsForPost(post.ID)
	if err != nil {
		t.Fatalf("CommentsForPost() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("comments = %d, want 2", len(got))
	}
	// Oldest first, each carrying its author.
	if got[0].Text != "first" || got[0].Author.Username != "alice" {
		t.Errorf("first comment = %q by %q, want first by alice", got[0].Text, got[0].Author.Username)
	}
	if got[1].Text != "second" || got[1].Author.Username != "bob" {
		t.Errorf("second comment = %q by %q, want second by bob", got[1].Text, got[1].Author.Username)
	}
}
