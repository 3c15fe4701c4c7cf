package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated principal. IsStaff grants visibility into
// inactive catalog entries.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
}
