package bot

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"botboard/pkg/errors"
	"botboard/pkg/logger"
)

// Service coordinates trading bot CRUD operations and enforces ownership
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a bot service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		log:  logger.Get().With("component", "bot_service"),
	}
}

// Create validates and persists a new bot for its owner.
// The asset symbol is normalized to uppercase before storage and the
// strategy defaults to scalping when empty.
func (s *Service) Create(ctx context.Context, b *TradingBot) error {
	if b == nil {
		return errors.ErrInvalidInput
	}
	if b.UserID == uuid.Nil {
		return errors.ErrUnauthorized
	}
	if err := normalize(b); err != nil {
		return err
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.repo.Create(ctx, b); err != nil {
		return errors.Wrap(err, "create bot")
	}

	s.log.Infow("Bot created",
		"bot_id", b.ID,
		"user_id", b.UserID,
		"asset_symbol", b.AssetSymbol,
		"strategy", b.Strategy,
	)

	return nil
}

// GetForUser fetches a bot by id and verifies it belongs to the caller
func (s *Service) GetForUser(ctx context.Context, id, userID uuid.UUID) (*TradingBot, error) {
	if id == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, errors.ErrNotOwner
	}

	return b, nil
}

// ListByUser returns all bots owned by a user, newest first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*TradingBot, error) {
	if userID == uuid.Nil {
		return nil, errors.ErrUnauthorized
	}

	bots, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list bots")
	}
	return bots, nil
}

// Update validates and persists changes to an existing bot.
// ID and UserID are immutable; the stored owner always wins.
func (s *Service) Update(ctx context.Context, b *TradingBot, userID uuid.UUID) error {
	if b == nil || b.ID == uuid.Nil {
		return errors.ErrInvalidInput
	}

	existing, err := s.GetForUser(ctx, b.ID, userID)
	if err != nil {
		return err
	}
	if err := normalize(b); err != nil {
		return err
	}

	b.UserID = existing.UserID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, b); err != nil {
		return errors.Wrap(err, "update bot")
	}

	s.log.Infow("Bot updated", "bot_id", b.ID, "user_id", userID)

	return nil
}

// ToggleActive flips the is_active flag of a bot, leaving every other
// field untouched. Returns the bot with its new state, so callers need
// no extra fetch.
func (s *Service) ToggleActive(ctx context.Context, id, userID uuid.UUID) (*TradingBot, error) {
	b, err := s.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	next := !b.IsActive
	if err := s.repo.SetActive(ctx, id, next); err != nil {
		return nil, errors.Wrap(err, "toggle bot")
	}
	b.IsActive = next

	s.log.Infow("Bot toggled", "bot_id", id, "user_id", userID, "is_active", next)

	return b, nil
}

// Delete removes a bot after verifying ownership
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetForUser(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete bot")
	}

	s.log.Infow("Bot deleted", "bot_id", id, "user_id", userID)

	return nil
}

// normalize applies storage-boundary invariants: required fields present,
// uppercase symbol, known strategy.
func normalize(b *TradingBot) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return errors.NewValidationError("name", "name is required", b.Name)
	}

	b.AssetSymbol = strings.ToUpper(strings.TrimSpace(b.AssetSymbol))
	if b.AssetSymbol == "" {
		return errors.NewValidationError("asset_symbol", "asset symbol is required", b.AssetSymbol)
	}

	if b.Strategy == "" {
		b.Strategy = DefaultStrategy
	}
	if !b.Strategy.Valid() {
		return errors.ErrInvalidStrategy
	}

	if b.InitialCapital.IsNegative() {
		return errors.NewValidationError("initial_capital", "initial capital must not be negative", b.InitialCapital.String())
	}

	return nil
}
