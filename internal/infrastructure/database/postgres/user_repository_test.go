package postgres

import (
	"context"
	"errors"
	"testing"

	"delivery-tracker/internal/domain/user"

	"github.com/google/uuid"
)

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Username: "dispatcher", Email: "dispatcher@example.com", PasswordHash: "hash", IsStaff: true}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatal("Create() did not assign an id")
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "dispatcher" || !got.IsStaff {
		t.Fatalf("GetByID() = %+v, want the seeded staff user", got)
	}

	got, err = repo.GetByUsername(ctx, "dispatcher")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("GetByUsername() id = %v, want %v", got.ID, u.ID)
	}

	dup := &user.User{Username: "dispatcher", Email: "other@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, dup); !errors.Is(err, user.ErrUserAlreadyExists) {
		t.Fatalf("Create() with duplicate username error = %v, want ErrUserAlreadyExists", err)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("GetByUsername() of missing user error = %v, want ErrUserNotFound", err)
	}
}
