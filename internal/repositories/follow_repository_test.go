package repositories

import (
	"errors"
	"testing"

	"github.com/inko-social/backend/internal/models"
	"gorm.io/gorm"
)

func TestPostgresFollowRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: carol.ID}); err != nil {
		t.Fatalf("CreateFollow() error = %v", err)
	}
	if err := repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: carol.ID}); err != nil {
		t.Fatalf("CreateFollow() error = %v", err)
	}

	t.Run("duplicate pair hits the unique index", func(t *testing.T) {
		err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: carol.ID})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Errorf("error = %v, want ErrDuplicatedKey", err)
		}
	})

	t.Run("directional queries", func(t *testing.T) {
		following, err := repo.IsFollowing(alice.ID, carol.ID)
		if err != nil || !following {
			t.Errorf("IsFollowing(alice, carol) = %v, %v, want true", following, err)
		}
		// The edge is directional.
		reverse, err := repo.IsFollowing(carol.ID, alice.ID)
		if err != nil || reverse {
			t.Errorf("IsFollowing(carol, alice) = %v, %v, want false", reverse, err)
		}
	})

	t.Run("counts and id lists", func(t *testing.T) {
		followers, err := repo.GetFollowerIDs(carol.ID)
		if err != nil {
			t.Fatalf("GetFollowerIDs() error = %v", err)
		}
		if len(followers) != 2 {
			t.Errorf("followers = %v, want 2 ids", followers)
		}

		count, err := repo.GetFollowersCount(carol.ID)
		if err != nil || count != 2 {
			t.Errorf("GetFollowersCount() = %d, %v, want 2", count, err)
		}
		count, err = repo.GetFollowingCount(alice.ID)
		if err != nil || count != 1 {
			t.Errorf("GetFollowingCount() = %d, %v, want 1", count, err)
		}
	})

	t.Run("delete removes only the named edge", func(t *testing.T) {
		if err := repo.DeleteFollow(alice.ID, carol.ID); err != nil {
			t.Fatalf("DeleteFollow() error = %v", err)
		}
		following, err := repo.IsFollowing(alice.ID, carol.ID)
		if err != nil || following {
			t.Errorf("IsFollowing after delete = %v, %v, want false", following, err)
		}
		remaining, err := repo.GetFollowersCount(carol.ID)
		if err != nil || remaining != 1 {
			t.Errorf("remaining followers = %d, %v, want 1", remaining, err)
		}
	})
}
