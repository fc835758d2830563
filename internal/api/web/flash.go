package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// flashCookieName carries one transient notification across a redirect
const flashCookieName = "botboard_flash"

// Flash is a transient notification rendered once on the next page view,
// the server-side analog of a toast message
type Flash struct {
	Kind    string `json:"kind"` // "success", "error", "info"
	Message string `json:"message"`
}

// SetFlash queues a notification for the next rendered page
func SetFlash(w http.ResponseWriter, kind, message string) {
	data, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// PopFlash returns the pending notification, if any, and clears it
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flash Flash
	if err := json.Unmarshal(data, &flash); err != nil {
		return nil
	}

	return &flash
}
