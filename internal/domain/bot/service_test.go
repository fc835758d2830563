package bot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"botboard/pkg/errors"
)

// MockRepository is a mock implementation of bot.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *TradingBot) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*TradingBot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TradingBot), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*TradingBot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*TradingBot), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, b *TradingBot) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) SetActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func validBot(userID uuid.UUID) *TradingBot {
	return &TradingBot{
		UserID:         userID,
		Name:           "Bot BTC Scalping",
		AssetSymbol:    "btcusdt",
		Strategy:       StrategyScalping,
		InitialCapital: decimal.NewFromInt(1000),
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates bot and uppercases the symbol", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		b := validBot(userID)
		repo.On("Create", ctx, b).Return(nil)

		err := svc.Create(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, "BTCUSDT", b.AssetSymbol)
		assert.NotEqual(t, uuid.Nil, b.ID)
		assert.False(t, b.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("defaults strategy to scalping", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		b := validBot(userID)
		b.Strategy = ""
		repo.On("Create", ctx, b).Return(nil)

		err := svc.Create(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, StrategyScalping, b.Strategy)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		b := validBot(userID)
		b.Name = "   "

		err := svc.Create(ctx, b)
		var vErr *errors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("fails with empty symbol", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		b := validBot(userID)
		b.AssetSymbol = ""

		err := svc.Create(ctx, b)
		var vErr *errors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "asset_symbol", vErr.Field)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("fails with unknown strategy", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		b := validBot(userID)
		b.Strategy = Strategy("martingale")

		err := svc.Create(ctx, b)
		assert.ErrorIs(t, err, errors.ErrInvalidStrategy)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("fails with negative capital", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		b := validBot(userID)
		b.InitialCapital = decimal.NewFromInt(-50)

		err := svc.Create(ctx, b)
		var vErr *errors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "initial_capital", vErr.Field)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("fails without owner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		b := validBot(uuid.Nil)

		err := svc.Create(ctx, b)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestService_GetForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	botID := uuid.New()

	t.Run("returns bot owned by the caller", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(userID)
		stored.ID = botID
		repo.On("GetByID", ctx, botID).Return(stored, nil)

		got, err := svc.GetForUser(ctx, botID, userID)
		require.NoError(t, err)
		assert.Equal(t, botID, got.ID)
	})

	t.Run("refuses another user's bot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(uuid.New())
		stored.ID = botID
		repo.On("GetByID", ctx, botID).Return(stored, nil)

		_, err := svc.GetForUser(ctx, botID, userID)
		assert.ErrorIs(t, err, errors.ErrNotOwner)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", ctx, botID).Return(nil, errors.ErrNotFound)

		_, err := svc.GetForUser(ctx, botID, userID)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	botID := uuid.New()

	t.Run("keeps owner and creation time immutable", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(userID)
		stored.ID = botID
		repo.On("GetByID", ctx, botID).Return(stored, nil)

		updated := validBot(uuid.New()) // attacker-supplied owner
		updated.ID = botID
		updated.Name = "Renamed"
		repo.On("Update", ctx, updated).Return(nil)

		err := svc.Update(ctx, updated, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, updated.UserID)
		assert.Equal(t, stored.CreatedAt, updated.CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("rejects update of another user's bot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(uuid.New())
		stored.ID = botID
		repo.On("GetByID", ctx, botID).Return(stored, nil)

		updated := validBot(userID)
		updated.ID = botID

		err := svc.Update(ctx, updated, userID)
		assert.ErrorIs(t, err, errors.ErrNotOwner)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestService_ToggleActive(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	botID := uuid.New()

	t.Run("flips inactive to active", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(userID)
		stored.ID = botID
		stored.IsActive = false
		repo.On("GetByID", ctx, botID).Return(stored, nil)
		repo.On("SetActive", ctx, botID, true).Return(nil)

		toggled, err := svc.ToggleActive(ctx, botID, userID)
		require.NoError(t, err)
		assert.True(t, toggled.IsActive)
		assert.Equal(t, stored.Name, toggled.Name, "returned bot carries its fields")
		repo.AssertExpectations(t)
	})

	t.Run("flips active to inactive", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(userID)
		stored.ID = botID
		stored.IsActive = true
		repo.On("GetByID", ctx, botID).Return(stored, nil)
		repo.On("SetActive", ctx, botID, false).Return(nil)

		toggled, err := svc.ToggleActive(ctx, botID, userID)
		require.NoError(t, err)
		assert.False(t, toggled.IsActive)
	})

	t.Run("refuses toggling another user's bot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(uuid.New())
		stored.ID = botID
		repo.On("GetByID", ctx, botID).Return(stored, nil)

		_, err := svc.ToggleActive(ctx, botID, userID)
		assert.ErrorIs(t, err, errors.ErrNotOwner)
		repo.AssertNotCalled(t, "SetActive")
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	botID := uuid.New()

	t.Run("deletes owned bot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(userID)
		stored.ID = botID
		repo.On("GetByID", ctx, botID).Return(stored, nil)
		repo.On("Delete", ctx, botID).Return(nil)

		err := svc.Delete(ctx, botID, userID)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("refuses deleting another user's bot", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := validBot(uuid.New())
		stored.ID = botID
		repo.On("GetByID", ctx, botID).Return(stored, nil)

		err := svc.Delete(ctx, botID, userID)
		assert.ErrorIs(t, err, errors.ErrNotOwner)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestStrategy_Valid(t *testing.T) {
	for _, s := range Strategies() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Strategy("hodl").Valid())
	assert.False(t, Strategy("").Valid())
}
