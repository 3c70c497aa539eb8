package stories

import (
	"context"

	"skillshare-backend/models/story"
)

// ViewTracker records per-story viewer membership through the story
// store's compare-and-append primitive.
type ViewTracker struct {
	store *Store
}

// NewViewTracker creates a view tracker on top of the given store.
func NewViewTracker(store *Store) *ViewTracker {
	return &ViewTracker{store: store}
}

// RecordView marks the story as viewed by viewerID. Viewing a story twice
// is a no-op, sequentially or concurrently: the viewer ends up in the set
// exactly once.
func (t *ViewTracker) RecordView(ctx context.Context, storyID, viewerID uint) error {
	if err := t.store.storyExists(ctx, storyID); err != nil {
		return err
	}
	if err := t.store.userExists(ctx, viewerID); err != nil {
		return err
	}
	return t.store.appendViewer(ctx, storyID, viewerID)
}

// HasViewed reports whether viewerID is in the story's loaded viewer set.
// Pure read; nothing is mutated.
func (t *ViewTracker) HasViewed(st *story.Story, viewerID uint) bool {
	return st.ViewedBy(viewerID)
}
