package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"botboard/internal/api/middleware"
	"botboard/internal/domain/bot"
	"botboard/internal/metrics"
)

// botFormValues holds the raw text inputs of the bot form, so that a
// failed submission can re-render exactly what the user typed
type botFormValues struct {
	Name           string
	AssetSymbol    string
	Strategy       string
	InitialCapital string
	StopLoss       string
	TakeProfit     string
	MaxTrades      string
	IsActive       bool
}

type botFormData struct {
	Title      string
	Flash      *Flash
	IsEdit     bool
	Action     string
	Values     botFormValues
	Strategies []bot.Strategy
}

// HandleNewBotForm renders the empty create form. A symbol query
// parameter pre-orients the form toward a searched asset.
func (h *Handlers) HandleNewBotForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "botform.html", botFormData{
		Title:  "New bot",
		Flash:  PopFlash(w, r),
		Action: "/bot/new",
		Values: botFormValues{
			AssetSymbol: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol"))),
			Strategy:    string(bot.DefaultStrategy),
		},
		Strategies: bot.Strategies(),
	})
}

// HandleEditBotForm fetches the record and pre-populates every field
// exactly as stored. Fetch failures notify and force navigation back
// to the dashboard.
func (h *Handlers) HandleEditBotForm(w http.ResponseWriter, r *http.Request) {
	usr := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SetFlash(w, "error", "Unknown bot")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	b, err := h.bots.GetForUser(r.Context(), id, usr.ID)
	if err != nil {
		SetFlash(w, "error", "Failed to load bot: "+err.Error())
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.render(w, "botform.html", botFormData{
		Title:      "Edit bot",
		Flash:      PopFlash(w, r),
		IsEdit:     true,
		Action:     "/bot/edit/" + b.ID.String(),
		Values:     valuesFromBot(b),
		Strategies: bot.Strategies(),
	})
}

// HandleCreateBot validates and inserts a new bot for the current user
func (h *Handlers) HandleCreateBot(w http.ResponseWriter, r *http.Request) {
	usr := middleware.UserFromContext(r.Context())
	values := formValues(r)

	b, ok := h.buildBot(w, values, botFormData{
		Title:      "New bot",
		Action:     "/bot/new",
		Values:     values,
		Strategies: bot.Strategies(),
	})
	if !ok {
		return
	}

	b.UserID = usr.ID
	if err := h.bots.Create(r.Context(), b); err != nil {
		metrics.BotOperations.WithLabelValues("create", "error").Inc()
		h.renderFormError(w, "Failed to save bot: "+err.Error(), botFormData{
			Title:      "New bot",
			Action:     "/bot/new",
			Values:     values,
			Strategies: bot.Strategies(),
		})
		return
	}

	metrics.BotOperations.WithLabelValues("create", "success").Inc()
	h.ops.BotCreated(b.Name, b.AssetSymbol, string(b.Strategy))
	SetFlash(w, "success", "Bot created")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleUpdateBot validates and updates an existing bot
func (h *Handlers) HandleUpdateBot(w http.ResponseWriter, r *http.Request) {
	usr := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SetFlash(w, "error", "Unknown bot")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	values := formValues(r)
	form := botFormData{
		Title:      "Edit bot",
		IsEdit:     true,
		Action:     "/bot/edit/" + id.String(),
		Values:     values,
		Strategies: bot.Strategies(),
	}

	b, ok := h.buildBot(w, values, form)
	if !ok {
		return
	}

	b.ID = id
	if err := h.bots.Update(r.Context(), b, usr.ID); err != nil {
		metrics.BotOperations.WithLabelValues("update", "error").Inc()
		h.renderFormError(w, "Failed to save bot: "+err.Error(), form)
		return
	}

	metrics.BotOperations.WithLabelValues("update", "success").Inc()
	SetFlash(w, "success", "Bot updated")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// buildBot turns raw form input into a TradingBot. Required-field and
// number-format validation happens here, before any storage call; on
// failure the form is re-rendered with the entered values and ok=false.
func (h *Handlers) buildBot(w http.ResponseWriter, values botFormValues, form botFormData) (*bot.TradingBot, bool) {
	if values.Name == "" || values.AssetSymbol == "" || values.InitialCapital == "" {
		h.renderFormError(w, "Please fill in all required fields", form)
		return nil, false
	}

	capital, err := decimal.NewFromString(values.InitialCapital)
	if err != nil {
		h.renderFormError(w, "Initial capital must be a number", form)
		return nil, false
	}

	stopLoss, err := optionalDecimal(values.StopLoss)
	if err != nil {
		h.renderFormError(w, "Stop loss must be a number", form)
		return nil, false
	}

	takeProfit, err := optionalDecimal(values.TakeProfit)
	if err != nil {
		h.renderFormError(w, "Take profit must be a number", form)
		return nil, false
	}

	maxTrades, err := optionalInt(values.MaxTrades)
	if err != nil {
		h.renderFormError(w, "Max trades per day must be a whole number", form)
		return nil, false
	}

	return &bot.TradingBot{
		Name:                 values.Name,
		AssetSymbol:          values.AssetSymbol,
		Strategy:             bot.Strategy(values.Strategy),
		InitialCapital:       capital,
		StopLossPercentage:   stopLoss,
		TakeProfitPercentage: takeProfit,
		MaxTradesPerDay:      maxTrades,
		IsActive:             values.IsActive,
	}, true
}

func (h *Handlers) renderFormError(w http.ResponseWriter, message string, form botFormData) {
	form.Flash = &Flash{Kind: "error", Message: message}
	h.render(w, "botform.html", form)
}

func formValues(r *http.Request) botFormValues {
	return botFormValues{
		Name:           strings.TrimSpace(r.FormValue("name")),
		AssetSymbol:    strings.TrimSpace(r.FormValue("asset_symbol")),
		Strategy:       r.FormValue("strategy"),
		InitialCapital: strings.TrimSpace(r.FormValue("initial_capital")),
		StopLoss:       strings.TrimSpace(r.FormValue("stop_loss_percentage")),
		TakeProfit:     strings.TrimSpace(r.FormValue("take_profit_percentage")),
		MaxTrades:      strings.TrimSpace(r.FormValue("max_trades_per_day")),
		IsActive:       r.FormValue("is_active") == "true",
	}
}

// valuesFromBot converts stored fields back to their text representation
// for display, with blanks for absent optionals
func valuesFromBot(b *bot.TradingBot) botFormValues {
	values := botFormValues{
		Name:           b.Name,
		AssetSymbol:    b.AssetSymbol,
		Strategy:       string(b.Strategy),
		InitialCapital: b.InitialCapital.String(),
		IsActive:       b.IsActive,
	}
	if b.StopLossPercentage != nil {
		values.StopLoss = b.StopLossPercentage.String()
	}
	if b.TakeProfitPercentage != nil {
		values.TakeProfit = b.TakeProfitPercentage.String()
	}
	if b.MaxTradesPerDay != nil {
		values.MaxTrades = strconv.Itoa(*b.MaxTradesPerDay)
	}
	return values
}

// optionalDecimal parses a blank-or-number input; blank means absent
func optionalDecimal(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// optionalInt parses a blank-or-integer input; blank means absent
func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
