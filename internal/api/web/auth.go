package web

import (
	"net/http"

	"botboard/internal/api/middleware"
	"botboard/internal/metrics"
	authsvc "botboard/internal/services/auth"
	"botboard/pkg/errors"
)

type authPageData struct {
	Title string
	Flash *Flash
}

// HandleAuthPage renders the sign-in / registration screen.
// Already-authenticated users are sent straight to the dashboard.
func (h *Handlers) HandleAuthPage(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.render(w, "auth.html", authPageData{
		Title: "Sign in",
		Flash: PopFlash(w, r),
	})
}

// HandleLogin verifies credentials and opens a session
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.allow(r) {
		metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
		SetFlash(w, "error", "Too many attempts, please try again shortly")
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	session, err := h.auth.Login(r.Context(), authsvc.Credentials{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		SetFlash(w, "error", "Sign-in failed: "+err.Error())
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	middleware.SetSessionCookie(w, session.Token, h.sessionTTL)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleRegister creates an account and opens a session
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	session, err := h.auth.Register(r.Context(), authsvc.Credentials{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		msg := "Registration failed: " + err.Error()
		if errors.Is(err, authsvc.ErrEmailAlreadyExists) {
			msg = "An account with this email already exists"
		}
		SetFlash(w, "error", msg)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	middleware.SetSessionCookie(w, session.Token, h.sessionTTL)
	SetFlash(w, "success", "Account created")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleLogout clears the session and returns to the auth screen
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}
