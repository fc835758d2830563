package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botboard/internal/domain/user"
	"botboard/internal/testsupport"
	"botboard/pkg/errors"
)

func TestUserRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	repo := NewUserRepository(testDB.Tx())
	ctx := context.Background()

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        "trader@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("creates and fetches by id and email", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, u))

		byID, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)

		byEmail, err := repo.GetByEmail(ctx, "trader@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("maps unique violation to ErrAlreadyExists", func(t *testing.T) {
		dup := &user.User{
			ID:           uuid.New(),
			Email:        "trader@example.com",
			PasswordHash: "x",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		assert.ErrorIs(t, repo.Create(ctx, dup), errors.ErrAlreadyExists)
	})

	t.Run("returns ErrNotFound for unknown lookups", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errors.ErrNotFound)

		_, err = repo.GetByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("counts users", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, 1)
	})
}
