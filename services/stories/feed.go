package stories

import (
	"context"
	"fmt"
	"time"

	"skillshare-backend/models/story"
)

// SocialGraph is the read-only follow-relationship collaborator. The
// subsystem never defines or mutates the graph itself.
type SocialGraph interface {
	FollowedUserIDs(ctx context.Context, userID uint) ([]uint, error)
}

// FeedItem is one feed entry: a story plus whether the requesting user
// has already viewed it.
type FeedItem struct {
	Story  story.Story `json:"story"`
	Viewed bool        `json:"viewed"`
}

// FeedAssembler composes a user's feed from followed users' visible
// stories.
type FeedAssembler struct {
	store *Store
	graph SocialGraph
}

// NewFeedAssembler creates a feed assembler over the store and graph.
func NewFeedAssembler(store *Store, graph SocialGraph) *FeedAssembler {
	return &FeedAssembler{store: store, graph: graph}
}

// AssembleFeed returns the stories of everyone userID follows that are
// still visible at now, newest first, each annotated with the viewed
// flag of the requester. Expiry filtering happens in the query itself,
// so the result is consistent relative to now. An empty follow set is
// an empty feed, not an error.
func (f *FeedAssembler) AssembleFeed(ctx context.Context, userID uint, now time.Time) ([]FeedItem, error) {
	followed, err := f.graph.FollowedUserIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve followed users of %d: %w", userID, err)
	}
	if len(followed) == 0 {
		return []FeedItem{}, nil
	}

	active, err := f.store.ListActiveByOwners(ctx, followed, now)
	if err != nil {
		return nil, err
	}
	return f.annotate(ctx, userID, active)
}

// annotate resolves viewed flags for the requester with one bulk query.
func (f *FeedAssembler) annotate(ctx context.Context, requesterID uint, active []story.Story) ([]FeedItem, error) {
	ids := make([]uint, 0, len(active))
	for _, st := range active {
		ids = append(ids, st.ID)
	}
	viewed, err := f.store.viewedStoryIDs(ctx, requesterID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(active))
	for _, st := range active {
		items = append(items, FeedItem{Story: st, Viewed: viewed[st.ID]})
	}
	return items, nil
}
