package bot

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Strategy is the trading strategy label stored with a bot record.
// It carries no executable behavior; bots are configuration rows only.
type Strategy string

const (
	StrategyScalping Strategy = "scalping"
	StrategyDayTrade Strategy = "day_trade"
	StrategySwing    Strategy = "swing"
	StrategyGrid     Strategy = "grid"
	StrategyDCA      Strategy = "dca"
)

// DefaultStrategy is applied when a bot is created without an explicit strategy
const DefaultStrategy = StrategyScalping

// Strategies lists all known strategy codes in form display order
func Strategies() []Strategy {
	return []Strategy{StrategyScalping, StrategyDayTrade, StrategySwing, StrategyGrid, StrategyDCA}
}

// Valid reports whether s is a known strategy code
func (s Strategy) Valid() bool {
	switch s {
	case StrategyScalping, StrategyDayTrade, StrategySwing, StrategyGrid, StrategyDCA:
		return true
	}
	return false
}

// Label returns the human-readable strategy name shown in the UI
func (s Strategy) Label() string {
	switch s {
	case StrategyScalping:
		return "Scalping"
	case StrategyDayTrade:
		return "Day Trade"
	case StrategySwing:
		return "Swing Trading"
	case StrategyGrid:
		return "Grid Trading"
	case StrategyDCA:
		return "DCA (Dollar Cost Average)"
	default:
		return string(s)
	}
}

// TradingBot is a persisted bot configuration owned by a single user.
// Optional numeric fields are nil when absent; they are never stored as
// empty strings or NaN.
type TradingBot struct {
	ID                   uuid.UUID        `db:"id"`
	UserID               uuid.UUID        `db:"user_id"`
	Name                 string           `db:"name"`
	AssetSymbol          string           `db:"asset_symbol"`
	Strategy             Strategy         `db:"strategy"`
	InitialCapital       decimal.Decimal  `db:"initial_capital"`
	StopLossPercentage   *decimal.Decimal `db:"stop_loss_percentage"`
	TakeProfitPercentage *decimal.Decimal `db:"take_profit_percentage"`
	MaxTradesPerDay      *int             `db:"max_trades_per_day"`
	IsActive             bool             `db:"is_active"`
	CreatedAt            time.Time        `db:"created_at"`
	UpdatedAt            time.Time        `db:"updated_at"`
}
