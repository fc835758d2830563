package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botboard/internal/domain/user"
	"botboard/pkg/errors"
	"botboard/pkg/logger"
)

type stubValidator struct {
	user *user.User
	err  error
}

func (s *stubValidator) ValidateToken(_ context.Context, _ string) (*user.User, error) {
	return s.user, s.err
}

func echoUser(t *testing.T, want *user.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := UserFromContext(r.Context())
		if want == nil {
			assert.Nil(t, got)
		} else {
			require.NotNil(t, got)
			assert.Equal(t, want.ID, got.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Handler(t *testing.T) {
	log := logger.Get()

	t.Run("resolves a valid session cookie", func(t *testing.T) {
		usr := &user.User{ID: uuid.New(), Email: "trader@example.com"}
		mw := NewAuthMiddleware(&stubValidator{user: usr}, log)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "token"})
		rec := httptest.NewRecorder()

		mw.Handler(echoUser(t, usr)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("continues anonymously without a cookie", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubValidator{}, log)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()

		mw.Handler(echoUser(t, nil)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("clears an invalid session cookie", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubValidator{err: errors.ErrUnauthorized}, log)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
		rec := httptest.NewRecorder()

		mw.Handler(echoUser(t, nil)).ServeHTTP(rec, req)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestRequireUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("redirects anonymous requests to the auth screen", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()

		RequireUser(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth", rec.Header().Get("Location"))
	})

	t.Run("passes authenticated requests through", func(t *testing.T) {
		usr := &user.User{ID: uuid.New()}
		ctx := context.WithValue(context.Background(), userContextKey, usr)
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		RequireUser(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
