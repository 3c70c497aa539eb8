package users

import (
	"time"
)

// User carries the minimum the stories subsystem needs: a stable identity
// for ownership, viewing and follow relations. Account management lives
// elsewhere.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
