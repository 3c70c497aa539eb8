package users

import "time"

// Follow is one edge of the follow graph: follower watches followed.
// The stories subsystem only ever reads this table.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
