package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"botboard/internal/domain/bot"
	"botboard/pkg/errors"
)

// Compile-time check
var _ bot.Repository = (*BotRepository)(nil)

// BotRepository implements bot.Repository using sqlx
type BotRepository struct {
	db DBTX
}

// NewBotRepository creates a new trading bot repository
func NewBotRepository(db DBTX) *BotRepository {
	return &BotRepository{db: db}
}

// Create inserts a new trading bot record
func (r *BotRepository) Create(ctx context.Context, b *bot.TradingBot) error {
	query := `
		INSERT INTO trading_bots (
			id, user_id, name, asset_symbol, strategy,
			initial_capital, stop_loss_percentage, take_profit_percentage,
			max_trades_per_day, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.Name, b.AssetSymbol, b.Strategy,
		b.InitialCapital, b.StopLossPercentage, b.TakeProfitPercentage,
		b.MaxTradesPerDay, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)

	return err
}

// GetByID retrieves a trading bot by ID
func (r *BotRepository) GetByID(ctx context.Context, id uuid.UUID) (*bot.TradingBot, error) {
	var b bot.TradingBot

	query := `SELECT * FROM trading_bots WHERE id = $1`

	err := r.db.GetContext(ctx, &b, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// ListByUser retrieves all bots owned by a user, newest first
func (r *BotRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*bot.TradingBot, error) {
	var bots []*bot.TradingBot

	query := `
		SELECT * FROM trading_bots
		WHERE user_id = $1
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &bots, query, userID)
	if err != nil {
		return nil, err
	}

	return bots, nil
}

// Update rewrites the mutable fields of a record. id and user_id are
// never part of the SET clause.
func (r *BotRepository) Update(ctx context.Context, b *bot.TradingBot) error {
	query := `
		UPDATE trading_bots SET
			name = $2,
			asset_symbol = $3,
			strategy = $4,
			initial_capital = $5,
			stop_loss_percentage = $6,
			take_profit_percentage = $7,
			max_trades_per_day = $8,
			is_active = $9,
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.AssetSymbol, b.Strategy,
		b.InitialCapital, b.StopLossPercentage, b.TakeProfitPercentage,
		b.MaxTradesPerDay, b.IsActive,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.ErrNotFound
	}

	return nil
}

// SetActive flips only the is_active flag
func (r *BotRepository) SetActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `
		UPDATE trading_bots SET
			is_active = $2,
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, isActive)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.ErrNotFound
	}

	return nil
}

// Delete removes a trading bot record
func (r *BotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM trading_bots WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trading bot with id %s not found", id)
	}

	return nil
}

// CountByUser returns the number of bots owned by a user
func (r *BotRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM trading_bots WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}

	return count, nil
}
