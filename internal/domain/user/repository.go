package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines principal persistence operations.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
