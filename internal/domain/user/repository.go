package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user data access
// Implementation lives in internal/repository/postgres/user.go
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int, error)
}
