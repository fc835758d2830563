package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botboard/internal/adapters/config"
	"botboard/internal/api/middleware"
	"botboard/internal/domain/bot"
	"botboard/internal/domain/marketdata"
	"botboard/internal/domain/user"
	authsvc "botboard/internal/services/auth"
	pkgauth "botboard/pkg/auth"
	"botboard/pkg/errors"
	"botboard/pkg/logger"
)

// listBotRepo serves a canned ListByUser result; every other operation
// is unreachable from the dashboard render path
type listBotRepo struct {
	bots []*bot.TradingBot
	err  error
}

func (r *listBotRepo) Create(context.Context, *bot.TradingBot) error { return errors.ErrInternal }
func (r *listBotRepo) GetByID(context.Context, uuid.UUID) (*bot.TradingBot, error) {
	return nil, errors.ErrNotFound
}
func (r *listBotRepo) ListByUser(context.Context, uuid.UUID) ([]*bot.TradingBot, error) {
	return r.bots, r.err
}
func (r *listBotRepo) Update(context.Context, *bot.TradingBot) error    { return errors.ErrInternal }
func (r *listBotRepo) SetActive(context.Context, uuid.UUID, bool) error { return errors.ErrInternal }
func (r *listBotRepo) Delete(context.Context, uuid.UUID) error          { return errors.ErrInternal }
func (r *listBotRepo) CountByUser(context.Context, uuid.UUID) (int, error) {
	return 0, errors.ErrInternal
}

type stubUserRepo struct{}

func (stubUserRepo) Create(context.Context, *user.User) error { return errors.ErrInternal }
func (stubUserRepo) GetByID(context.Context, uuid.UUID) (*user.User, error) {
	return nil, errors.ErrNotFound
}
func (stubUserRepo) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, errors.ErrNotFound
}
func (stubUserRepo) Count(context.Context) (int, error) { return 0, nil }

func newTestHandlers(t *testing.T, repo bot.Repository) *Handlers {
	t.Helper()

	jwtService := pkgauth.NewJWTService("test-secret", "botboard-test", time.Hour)
	h, err := NewHandlers(
		bot.NewService(repo),
		marketdata.NewService(marketdata.NewSimulatedProvider(0), nil, 0),
		authsvc.NewService(stubUserRepo{}, jwtService),
		nil,
		config.AuthConfig{TokenDuration: time.Hour},
		logger.Get(),
	)
	require.NoError(t, err)
	return h
}

func dashboardRequest() *http.Request {
	usr := &user.User{ID: uuid.New(), Email: "trader@example.com"}
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	return req.WithContext(middleware.WithUser(req.Context(), usr))
}

func TestHandleDashboard_ListFailure(t *testing.T) {
	h := newTestHandlers(t, &listBotRepo{err: errors.ErrInternal})

	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, dashboardRequest())

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Failed to load bots", "error notice must be on the rendered page")
	assert.Contains(t, body, "Could not load your bots")
	assert.NotContains(t, body, "No bots created yet", "a failed fetch must not look like an empty account")
	assert.NotContains(t, body, "Create first bot")
}

func TestHandleDashboard_EmptyList(t *testing.T) {
	h := newTestHandlers(t, &listBotRepo{})

	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, dashboardRequest())

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "No bots created yet")
	assert.Contains(t, body, "Create first bot")
	assert.NotContains(t, body, "Could not load your bots")
}

func TestHandleDashboard_ListsBots(t *testing.T) {
	h := newTestHandlers(t, &listBotRepo{bots: []*bot.TradingBot{
		{
			ID:          uuid.New(),
			Name:        "Bot BTC Scalping",
			AssetSymbol: "BTCUSDT",
			Strategy:    bot.StrategyScalping,
		},
	}})

	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, dashboardRequest())

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Bot BTC Scalping")
	assert.True(t, strings.Contains(body, "BTCUSDT"))
	assert.NotContains(t, body, "No bots created yet")
}
