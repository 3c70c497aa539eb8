package social

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skillshare-backend/models/users"
)

// Graph reads the follow table. It is the production implementation of
// the stories subsystem's SocialGraph collaborator; the stories code
// itself never touches follow rows.
type Graph struct {
	db *gorm.DB
}

// NewGraph creates a follow-graph reader over db.
func NewGraph(db *gorm.DB) *Graph {
	return &Graph{db: db}
}

// FollowedUserIDs returns the ids of every user that userID follows. A
// user with no follows gets an empty slice, not an error.
func (g *Graph) FollowedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := g.db.WithContext(ctx).Model(&users.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load follows of user %d: %w", userID, err)
	}
	return ids, nil
}
