package services

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/inko-social/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB creates a new in-memory database with all models migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A fresh pool connection would see a fresh in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Story{},
		&models.StoryView{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Password: "x", CreatedAt: time.Now()}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, caption string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		UserID:    userID,
		Caption:   caption,
		MediaType: "image",
		MediaURL:  "memory://posts/test.jpg",
		CreatedAt: createdAt,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func createTestFollow(t *testing.T, db *gorm.DB, followerID, followingID uint) {
	t.Helper()

	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := db.Create(follow).Error; err != nil {
		t.Fatalf("failed to create follow %d -> %d: %v", followerID, followingID, err)
	}
}

// testMediaPayload returns a valid base64 request payload.
func testMediaPayload() string {
	return base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
