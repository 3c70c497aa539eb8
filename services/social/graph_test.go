package social

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillshare-backend/models/users"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&users.User{}, &users.Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	u := users.User{Name: name, Email: name + "@example.com"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u.ID
}

func TestFollowedUserIDs(t *testing.T) {
	db := setupTestDB(t)
	graph := NewGraph(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	for _, followed := range []uint{alice, carol} {
		f := users.Follow{FollowerID: bob, FollowedID: followed}
		if err := db.Create(&f).Error; err != nil {
			t.Fatalf("seed follow: %v", err)
		}
	}

	ids, err := graph.FollowedUserIDs(ctx, bob)
	if err != nil {
		t.Fatalf("FollowedUserIDs() failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d followed users, want 2", len(ids))
	}
	got := map[uint]bool{}
	for _, id := range ids {
		got[id] = true
	}
	if !got[alice] || !got[carol] {
		t.Errorf("followed set = %v, want {%d, %d}", ids, alice, carol)
	}
}

func TestFollowedUserIDs_NoFollows(t *testing.T) {
	db := setupTestDB(t)
	graph := NewGraph(db)

	alice := seedUser(t, db, "alice")

	ids, err := graph.FollowedUserIDs(context.Background(), alice)
	if err != nil {
		t.Fatalf("FollowedUserIDs() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("got %d followed users, want 0", len(ids))
	}
}
