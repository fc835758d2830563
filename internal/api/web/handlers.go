package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"botboard/internal/adapters/config"
	"botboard/internal/adapters/telegram"
	"botboard/internal/domain/bot"
	"botboard/internal/domain/marketdata"
	"botboard/internal/services/auth"
	"botboard/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Handlers serves the three dashboard screens plus the auth screen
type Handlers struct {
	bots       *bot.Service
	market     *marketdata.Service
	auth       *auth.Service
	ops        *telegram.Notifier
	templates  *template.Template
	limiter    *loginLimiter
	sessionTTL time.Duration
	log        *logger.Logger
}

// NewHandlers constructs the web handlers. ops may be nil when Telegram
// notifications are not configured.
func NewHandlers(
	bots *bot.Service,
	market *marketdata.Service,
	authService *auth.Service,
	ops *telegram.Notifier,
	authCfg config.AuthConfig,
	log *logger.Logger,
) (*Handlers, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money":   formatMoney,
		"money0":  formatMoney0,
		"money2":  formatMoney2,
		"percent": formatPercent,
		"signed":  formatSigned,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handlers{
		bots:       bots,
		market:     market,
		auth:       authService,
		ops:        ops,
		templates:  tmpl,
		limiter:    newLoginLimiter(authCfg.LoginRatePerMinute, authCfg.LoginRateBurst),
		sessionTTL: authCfg.TokenDuration,
		log:        log.With("component", "web"),
	}, nil
}

// StaticHandler serves embedded stylesheets and assets
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// HandleIndex redirects the root path to the dashboard
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// render executes a page template; render failures are logged and
// answered with a plain 500 since the page is already half-written
func (h *Handlers) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Errorw("Template render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Template helpers

func formatMoney(d decimal.Decimal) string {
	return "$" + humanize.CommafWithDigits(d.InexactFloat64(), 2)
}

func formatMoney0(d decimal.Decimal) string {
	return humanize.CommafWithDigits(d.InexactFloat64(), 0)
}

// formatMoney2 keeps exactly two decimals so placeholder figures like
// 43210.50 render with their trailing zero
func formatMoney2(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// formatPercent renders an optional percentage, with a dash when absent
func formatPercent(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return d.String() + "%"
}

// formatSigned renders a change value with an explicit sign
func formatSigned(d decimal.Decimal) string {
	if d.Sign() > 0 {
		return "+" + d.String()
	}
	return d.String()
}
