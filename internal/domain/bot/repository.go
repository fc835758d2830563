package bot

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for trading bot data access
// Implementation lives in internal/repository/postgres/bot.go
type Repository interface {
	Create(ctx context.Context, b *TradingBot) error
	GetByID(ctx context.Context, id uuid.UUID) (*TradingBot, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*TradingBot, error)
	Update(ctx context.Context, b *TradingBot) error

	// SetActive flips only the is_active flag of a record
	SetActive(ctx context.Context, id uuid.UUID, isActive bool) error

	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns the number of bots owned by a user
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
