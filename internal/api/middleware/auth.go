package middleware

import (
	"context"
	"net/http"
	"time"

	"botboard/internal/domain/user"
	"botboard/internal/services/auth"
	"botboard/pkg/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionCookieName is the name of the JWT session cookie
	SessionCookieName = "botboard_session"
	// userContextKey is the context key for the authenticated user
	userContextKey contextKey = "authenticated_user"
)

// TokenValidator defines the interface for resolving session tokens.
// This allows mocking in tests.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*user.User, error)
}

// Ensure auth.Service implements TokenValidator
var _ TokenValidator = (*auth.Service)(nil)

// AuthMiddleware resolves the session cookie into a user on the request
// context. Requests without a valid session continue anonymously; route
// guards decide whether to redirect.
type AuthMiddleware struct {
	authService TokenValidator
	log         *logger.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService TokenValidator, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         log.With("middleware", "auth"),
	}
}

// Handler wraps an HTTP handler with session resolution
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		usr, err := m.authService.ValidateToken(r.Context(), cookie.Value)
		if err != nil {
			m.log.Debugw("Invalid session token", "error", err, "path", r.URL.Path)
			ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), usr)))
	})
}

// WithUser attaches an authenticated user to the context
func WithUser(ctx context.Context, usr *user.User) context.Context {
	return context.WithValue(ctx, userContextKey, usr)
}

// RequireUser guards a handler: unauthenticated requests are redirected
// to the auth entry point before any data access happens.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext extracts the authenticated user from context
func UserFromContext(ctx context.Context) *user.User {
	usr, ok := ctx.Value(userContextKey).(*user.User)
	if !ok {
		return nil
	}
	return usr
}

// SetSessionCookie sets the HTTP-only session cookie
func SetSessionCookie(w http.ResponseWriter, token string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(lifetime.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
