package stories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"skillshare-backend/models/story"
)

func countViews(t *testing.T, db *gorm.DB, storyID uint) int64 {
	t.Helper()
	var n int64
	err := db.Model(&story.StoryView{}).Where("story_id = ?", storyID).Count(&n).Error
	if err != nil {
		t.Fatalf("count views: %v", err)
	}
	return n
}

func TestRecordView_Sequential(t *testing.T) {
	store, media, db := newTestStore(t)
	tracker := NewViewTracker(store)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	t0 := time.Now().UTC()
	st := seedStory(t, db, media, alice, t0, t0.Add(24*time.Hour))

	for i := 0; i < 3; i++ {
		if err := tracker.RecordView(ctx, st.ID, bob); err != nil {
			t.Fatalf("RecordView() call %d failed: %v", i+1, err)
		}
	}

	if n := countViews(t, db, st.ID); n != 1 {
		t.Errorf("viewer rows = %d, want exactly 1", n)
	}
}

func TestRecordView_Concurrent(t *testing.T) {
	store, media, db := newTestStore(t)
	tracker := NewViewTracker(store)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	t0 := time.Now().UTC()
	st := seedStory(t, db, media, alice, t0, t0.Add(24*time.Hour))

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- tracker.RecordView(ctx, st.ID, bob)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent RecordView() failed: %v", err)
		}
	}
	if n := countViews(t, db, st.ID); n != 1 {
		t.Errorf("viewer rows after %d concurrent views = %d, want exactly 1", callers, n)
	}
}

func TestRecordView_DistinctViewers(t *testing.T) {
	store, media, db := newTestStore(t)
	tracker := NewViewTracker(store)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	t0 := time.Now().UTC()
	st := seedStory(t, db, media, alice, t0, t0.Add(24*time.Hour))

	if err := tracker.RecordView(ctx, st.ID, bob); err != nil {
		t.Fatalf("RecordView(bob) failed: %v", err)
	}
	if err := tracker.RecordView(ctx, st.ID, carol); err != nil {
		t.Fatalf("RecordView(carol) failed: %v", err)
	}

	if n := countViews(t, db, st.ID); n != 2 {
		t.Errorf("viewer rows = %d, want 2", n)
	}
}

func TestRecordView_StoryNotFound(t *testing.T) {
	store, _, db := newTestStore(t)
	tracker := NewViewTracker(store)
	bob := seedUser(t, db, "bob")

	err := tracker.RecordView(context.Background(), 9999, bob)
	if !errors.Is(err, ErrStoryNotFound) {
		t.Fatalf("RecordView() error = %v, want ErrStoryNotFound", err)
	}
}

func TestRecordView_ViewerNotFound(t *testing.T) {
	store, media, db := newTestStore(t)
	tracker := NewViewTracker(store)

	alice := seedUser(t, db, "alice")
	t0 := time.Now().UTC()
	st := seedStory(t, db, media, alice, t0, t0.Add(24*time.Hour))

	err := tracker.RecordView(context.Background(), st.ID, 9999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("RecordView() error = %v, want ErrUserNotFound", err)
	}
	if n := countViews(t, db, st.ID); n != 0 {
		t.Errorf("viewer rows = %d, want 0", n)
	}
}

func TestHasViewed(t *testing.T) {
	store, media, db := newTestStore(t)
	tracker := NewViewTracker(store)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	t0 := time.Now().UTC()
	st := seedStory(t, db, media, alice, t0, t0.Add(24*time.Hour))

	if err := tracker.RecordView(ctx, st.ID, bob); err != nil {
		t.Fatalf("RecordView() failed: %v", err)
	}

	loaded, err := store.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !tracker.HasViewed(loaded, bob) {
		t.Error("HasViewed(bob) = false, want true")
	}
	if tracker.HasViewed(loaded, alice) {
		t.Error("HasViewed(alice) = true, want false")
	}
}
