package web

import (
	"net/http"

	"github.com/google/uuid"

	"botboard/internal/api/middleware"
	"botboard/internal/domain/bot"
	"botboard/internal/metrics"
)

type dashboardData struct {
	Title      string
	Flash      *Flash
	Bots       []*bot.TradingBot
	LoadFailed bool
}

// HandleDashboard lists the current user's bots, newest first.
// The list is always re-derived from a fresh fetch; mutations redirect
// back here rather than patching any cached state. A failed fetch
// renders an error notice instead of the empty state, so an outage is
// never mistaken for an empty account.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	usr := middleware.UserFromContext(r.Context())

	data := dashboardData{Title: "Dashboard"}

	bots, err := h.bots.ListByUser(r.Context(), usr.ID)
	if err != nil {
		h.log.Errorw("Failed to list bots", "user_id", usr.ID, "error", err)
		data.Flash = &Flash{Kind: "error", Message: "Failed to load bots: " + err.Error()}
		data.LoadFailed = true
	} else {
		data.Bots = bots
	}

	if data.Flash == nil {
		data.Flash = PopFlash(w, r)
	}

	h.render(w, "dashboard.html", data)
}

// HandleToggleBot flips a bot's active flag and returns to the dashboard
func (h *Handlers) HandleToggleBot(w http.ResponseWriter, r *http.Request) {
	usr := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SetFlash(w, "error", "Unknown bot")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	b, err := h.bots.ToggleActive(r.Context(), id, usr.ID)
	if err != nil {
		metrics.BotOperations.WithLabelValues("toggle", "error").Inc()
		SetFlash(w, "error", "Failed to update bot: "+err.Error())
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	metrics.BotOperations.WithLabelValues("toggle", "success").Inc()
	h.ops.BotToggled(b.Name, b.IsActive)
	if b.IsActive {
		SetFlash(w, "success", "Bot activated")
	} else {
		SetFlash(w, "success", "Bot deactivated")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleDeleteBot removes a bot and returns to the dashboard
func (h *Handlers) HandleDeleteBot(w http.ResponseWriter, r *http.Request) {
	usr := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SetFlash(w, "error", "Unknown bot")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	// Fetch first so the notification can name what was deleted
	b, err := h.bots.GetForUser(r.Context(), id, usr.ID)
	if err != nil {
		metrics.BotOperations.WithLabelValues("delete", "error").Inc()
		SetFlash(w, "error", "Failed to delete bot: "+err.Error())
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if err := h.bots.Delete(r.Context(), id, usr.ID); err != nil {
		metrics.BotOperations.WithLabelValues("delete", "error").Inc()
		SetFlash(w, "error", "Failed to delete bot: "+err.Error())
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	metrics.BotOperations.WithLabelValues("delete", "success").Inc()
	h.ops.BotDeleted(b.Name, b.AssetSymbol)
	SetFlash(w, "success", "Bot deleted")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
