package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores registered accounts.
// Password normally holds a bcrypt hash, but rows imported from the legacy
// system may still contain plaintext — the auth service migrates those
// transparently on first successful login.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	Name      string    `gorm:"not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'staff'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
