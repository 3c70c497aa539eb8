package stories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillshare-backend/models/story"
	"skillshare-backend/models/users"
	"skillshare-backend/storage"
)

// Store owns story records and their viewer sets. All mutations go through
// single database statements so that concurrent requests and the sweeper
// never need application-level locking.
type Store struct {
	db    *gorm.DB
	media storage.MediaStore
	ttl   time.Duration
}

// NewStore creates a story store. ttl is the lifetime given to new
// stories; non-positive values fall back to 24 hours.
func NewStore(db *gorm.DB, media storage.MediaStore, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{db: db, media: media, ttl: ttl}
}

// TTL returns the lifetime applied to newly created stories.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create uploads the media first and only then persists the record, so a
// rejected upload leaves nothing behind. The story expires TTL after
// creation.
func (s *Store) Create(ctx context.Context, ownerID uint, content string, media []byte, contentType string) (*story.Story, error) {
	if err := s.userExists(ctx, ownerID); err != nil {
		return nil, err
	}

	ref, err := s.media.Store(ctx, media, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}

	now := time.Now().UTC()
	st := &story.Story{
		UserID:    ownerID,
		Content:   content,
		MediaRef:  ref,
		MediaType: story.MediaTypeFromContentType(contentType),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.db.WithContext(ctx).Create(st).Error; err != nil {
		// The blob is already uploaded; try not to leak it. A failure
		// here only leaves an unreferenced blob, which is recoverable.
		if delErr := s.media.Delete(ctx, ref); delErr != nil {
			logrus.WithFields(logrus.Fields{"media_ref": ref}).
				WithError(delErr).Warn("Failed to clean up media after aborted story creation")
		}
		return nil, fmt.Errorf("save story: %w", err)
	}
	return st, nil
}

// Get returns a story with its viewer set loaded.
func (s *Store) Get(ctx context.Context, id uint) (*story.Story, error) {
	var st story.Story
	err := s.db.WithContext(ctx).Preload("Viewers").First(&st, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load story %d: %w", id, err)
	}
	return &st, nil
}

// ListActiveByOwner returns the owner's stories that are still visible at
// now, newest first.
func (s *Store) ListActiveByOwner(ctx context.Context, ownerID uint, now time.Time) ([]story.Story, error) {
	var result []story.Story
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", ownerID, now).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, fmt.Errorf("list stories of user %d: %w", ownerID, err)
	}
	return result, nil
}

// ListActiveByOwners returns visible stories across all given owners,
// newest first. An empty owner set short-circuits to an empty result.
func (s *Store) ListActiveByOwners(ctx context.Context, ownerIDs []uint, now time.Time) ([]story.Story, error) {
	if len(ownerIDs) == 0 {
		return []story.Story{}, nil
	}
	var result []story.Story
	err := s.db.WithContext(ctx).
		Where("user_id IN ? AND expires_at > ?", ownerIDs, now).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, fmt.Errorf("list stories of followed users: %w", err)
	}
	return result, nil
}

// HasActiveStories reports whether the owner has at least one story still
// visible at now. Existence is not access-controlled.
func (s *Store) HasActiveStories(ctx context.Context, ownerID uint, now time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&story.Story{}).
		Where("user_id = ? AND expires_at > ?", ownerID, now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count stories of user %d: %w", ownerID, err)
	}
	return count > 0, nil
}

// Delete removes a story on behalf of requesterID. Only the owner may
// delete; media cleanup is best effort and never blocks record removal.
func (s *Store) Delete(ctx context.Context, id, requesterID uint) error {
	var st story.Story
	err := s.db.WithContext(ctx).First(&st, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStoryNotFound
	}
	if err != nil {
		return fmt.Errorf("load story %d: %w", id, err)
	}
	if st.UserID != requesterID {
		return ErrNotOwner
	}

	if err := s.media.Delete(ctx, st.MediaRef); err != nil {
		logrus.WithFields(logrus.Fields{"story_id": st.ID, "media_ref": st.MediaRef}).
			WithError(err).Warn("Failed to delete story media, removing record anyway")
	}
	return s.Remove(ctx, id)
}

// ListExpired returns every story whose lifetime has elapsed at now,
// including ones expiring exactly at now.
func (s *Store) ListExpired(ctx context.Context, now time.Time) ([]story.Story, error) {
	var result []story.Story
	err := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Find(&result).Error
	if err != nil {
		return nil, fmt.Errorf("list expired stories: %w", err)
	}
	return result, nil
}

// Remove deletes the story record and its viewer rows. Removing an
// already-gone story is treated as satisfied, so the sweeper and a
// concurrent owner delete can race without either failing.
func (s *Store) Remove(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Where("story_id = ?", id).Delete(&story.StoryView{}).Error; err != nil {
		return fmt.Errorf("delete views of story %d: %w", id, err)
	}
	if err := s.db.WithContext(ctx).Delete(&story.Story{}, id).Error; err != nil {
		return fmt.Errorf("delete story %d: %w", id, err)
	}
	return nil
}

// appendViewer adds viewerID to the story's viewer set. The conflict
// clause makes the insert a compare-and-append: concurrent calls for the
// same pair converge to exactly one membership row.
func (s *Store) appendViewer(ctx context.Context, storyID, viewerID uint) error {
	view := story.StoryView{
		StoryID:  storyID,
		UserID:   viewerID,
		ViewedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "story_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&view).Error
	if err != nil {
		return fmt.Errorf("record view of story %d: %w", storyID, err)
	}
	return nil
}

// viewedStoryIDs returns which of the given stories the user has viewed,
// resolved with a single query.
func (s *Store) viewedStoryIDs(ctx context.Context, userID uint, storyIDs []uint) (map[uint]bool, error) {
	viewed := make(map[uint]bool, len(storyIDs))
	if len(storyIDs) == 0 {
		return viewed, nil
	}
	var ids []uint
	err := s.db.WithContext(ctx).Model(&story.StoryView{}).
		Where("user_id = ? AND story_id IN ?", userID, storyIDs).
		Pluck("story_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load views of user %d: %w", userID, err)
	}
	for _, id := range ids {
		viewed[id] = true
	}
	return viewed, nil
}

func (s *Store) storyExists(ctx context.Context, id uint) error {
	var st story.Story
	err := s.db.WithContext(ctx).Select("id").First(&st, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStoryNotFound
	}
	if err != nil {
		return fmt.Errorf("look up story %d: %w", id, err)
	}
	return nil
}

func (s *Store) userExists(ctx context.Context, id uint) error {
	var u users.User
	err := s.db.WithContext(ctx).Select("id").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return fmt.Errorf("look up user %d: %w", id, err)
	}
	return nil
}
