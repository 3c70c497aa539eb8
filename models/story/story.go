package story

import (
	"strings"
	"time"
)

// MediaType classifies the stored media of a story.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaTypeFromContentType maps a declared content type to a MediaType.
// Anything unrecognized (or empty) falls back to image.
func MediaTypeFromContentType(contentType string) MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return MediaTypeVideo
	default:
		return MediaTypeImage
	}
}

// Story is an ephemeral media post. Everything except the viewer set is
// immutable after creation; visibility is always derived from ExpiresAt,
// never stored as a flag.
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"` // Optional caption
	MediaRef  string    `gorm:"type:text;not null" json:"media_ref"`
	MediaType MediaType `gorm:"type:varchar(10);not null;default:'image'" json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`

	Viewers []StoryView `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"viewers,omitempty"`
}

// Active reports whether the story is still visible at the given instant.
func (s *Story) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// ViewedBy reports whether the given user is in the loaded viewer set.
func (s *Story) ViewedBy(userID uint) bool {
	for _, v := range s.Viewers {
		if v.UserID == userID {
			return true
		}
	}
	return false
}

// StoryView is one entry of a story's viewer set. The composite unique
// index makes viewer membership a set: inserting an existing pair is a
// conflict, not a duplicate.
type StoryView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	StoryID  uint      `gorm:"not null;uniqueIndex:idx_story_viewer" json:"story_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_story_viewer" json:"user_id"`
	ViewedAt time.Time `gorm:"autoCreateTime" json:"viewed_at"`
}
