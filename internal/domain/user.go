package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record behind an identity. The identity string used
// throughout the ownership checks is the user's ID in string form.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity returns the string form used as the ownership key on workouts.
func (u *User) Identity() string {
	return u.ID.String()
}
