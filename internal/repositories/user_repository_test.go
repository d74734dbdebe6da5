package repositories

import (
	"errors"
	"testing"

	"github.com/inko-social/backend/internal/models"
	"gorm.io/gorm"
)

func TestPostgresUserRepository_GetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	seedUser(t, db, "Alice")

	t.Run("matches regardless of case", func(t *testing.T) {
		for _, name := range []string{"Alice", "alice", "ALICE"} {
			user, err := repo.GetUserByUsername(name)
			if err != nil {
				t.Fatalf("GetUserByUsername(%q) error = %v", name, err)
			}
			if user.Username != "Alice" {
				t.Errorf("GetUserByUsername(%q) = %q, want Alice", name, user.Username)
			}
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := repo.GetUserByUsername("nobody")
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("error = %v, want ErrRecordNotFound", err)
		}
	})
}

func TestPostgresUserRepository_CreateUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	seedUser(t, db, "Alice")

	// The functional index holds the case-insensitive invariant even when
	// two signups race past the pre-check.
	err := repo.CreateUser(&models.User{Username: "alice", Password: "hashed"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("error = %v, want ErrDuplicatedKey", err)
	}
	err = repo.CreateUser(&models.User{Username: "ALICE", Password: "hashed"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("error = %v, want ErrDuplicatedKey", err)
	}
	if err := repo.CreateUser(&models.User{Username: "alicia", Password: "hashed"}); err != nil {
		t.Errorf("CreateUser(alicia) error = %v", err)
	}
}

func TestPostgresUserRepository_SearchUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	me := seedUser(t, db, "searcher")
	seedUser(t, db, "sandra")
	seedUser(t, db, "Sander")
	seedUser(t, db, "bob")

	t.Run("case-insensitive substring match", func(t *testing.T) {
		users, err := repo.SearchUsers("SAND", me.ID, 20)
		if err != nil {
			t.Fatalf("SearchUsers() error = %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("results = %d, want 2", len(users))
		}
	})

	t.Run("excludes the searcher", func(t *testing.T) {
		users, err := repo.SearchUsers("search", me.ID, 20)
		if err != nil {
			t.Fatalf("SearchUsers() error = %v", err)
		}
		if len(users) != 0 {
			t.Errorf("results = %d, want 0", len(users))
		}
	})

	t.Run("respects the limit", func(t *testing.T) {
		users, err := repo.SearchUsers("", me.ID, 2)
		if err != nil {
			t.Fatalf("SearchUsers() error = %v", err)
		}
		if len(users) != 2 {
			t.Errorf("results = %d, want 2", len(users))
		}
	})
}

func TestPostgresUserRepository_GetUsersByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	a := seedUser(t, db, "a")
	seedUser(t, db, "b")

	users, err := repo.GetUsersByIDs([]uint{a.ID})
	if err != nil {
		t.Fatalf("GetUsersByIDs() error = %v", err)
	}
	if len(users) != 1 || users[0].ID != a.ID {
		t.Errorf("users = %+v, want only %d", users, a.ID)
	}

	// An empty id set short-circuits instead of emitting IN ().
	users, err = repo.GetUsersByIDs(nil)
	if err != nil {
		t.Fatalf("GetUsersByIDs(nil) error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("users = %d, want 0", len(users))
	}
}
