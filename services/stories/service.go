package stories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillshare-backend/models/story"
	"skillshare-backend/storage"
)

// Service bundles the story store, view tracker and feed assembler into
// the surface the presentation layer consumes.
type Service struct {
	store   *Store
	tracker *ViewTracker
	feed    *FeedAssembler
}

// NewService wires the subsystem together.
func NewService(db *gorm.DB, media storage.MediaStore, graph SocialGraph, ttl time.Duration) *Service {
	store := NewStore(db, media, ttl)
	return &Service{
		store:   store,
		tracker: NewViewTracker(store),
		feed:    NewFeedAssembler(store, graph),
	}
}

// Store exposes the underlying story store, e.g. for wiring the sweeper.
func (s *Service) Store() *Store {
	return s.store
}

// CreateStory posts a new story for ownerID.
func (s *Service) CreateStory(ctx context.Context, ownerID uint, content string, media []byte, contentType string) (*story.Story, error) {
	return s.store.Create(ctx, ownerID, content, media, contentType)
}

// GetStory returns a single story with its viewer set.
func (s *Service) GetStory(ctx context.Context, id uint) (*story.Story, error) {
	return s.store.Get(ctx, id)
}

// ListOwnStories returns the caller's own visible stories, newest first.
func (s *Service) ListOwnStories(ctx context.Context, ownerID uint, now time.Time) ([]story.Story, error) {
	return s.store.ListActiveByOwner(ctx, ownerID, now)
}

// ListUserStories returns ownerID's visible stories annotated with
// whether requesterID has viewed each.
func (s *Service) ListUserStories(ctx context.Context, ownerID, requesterID uint, now time.Time) ([]FeedItem, error) {
	active, err := s.store.ListActiveByOwner(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	return s.feed.annotate(ctx, requesterID, active)
}

// Feed returns the stories of everyone userID follows.
func (s *Service) Feed(ctx context.Context, userID uint, now time.Time) ([]FeedItem, error) {
	return s.feed.AssembleFeed(ctx, userID, now)
}

// ViewStory records that viewerID has seen the story. Idempotent.
func (s *Service) ViewStory(ctx context.Context, storyID, viewerID uint) error {
	return s.tracker.RecordView(ctx, storyID, viewerID)
}

// DeleteStory removes a story on behalf of requesterID.
func (s *Service) DeleteStory(ctx context.Context, storyID, requesterID uint) error {
	return s.store.Delete(ctx, storyID, requesterID)
}

// HasActiveStories reports whether ownerID currently has any visible
// story.
func (s *Service) HasActiveStories(ctx context.Context, ownerID uint, now time.Time) (bool, error) {
	return s.store.HasActiveStories(ctx, ownerID, now)
}
