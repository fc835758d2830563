package web

import (
	"net/http"
	"time"

	"botboard/internal/domain/marketdata"
	"botboard/internal/metrics"
	"botboard/pkg/errors"
)

type assetSearchData struct {
	Title  string
	Flash  *Flash
	Symbol string
	Quote  *marketdata.Quote
}

// HandleAssetSearch renders the search screen and, when a symbol is
// submitted, resolves it through the configured quote provider. Empty
// input is rejected with a notification and performs no lookup.
func (h *Handlers) HandleAssetSearch(w http.ResponseWriter, r *http.Request) {
	data := assetSearchData{
		Title: "Search assets",
	}

	symbol, submitted := queryLookup(r)
	data.Symbol = symbol

	if submitted {
		start := time.Now()
		quote, err := h.market.Lookup(r.Context(), symbol)
		metrics.ObserveQuote(h.market.ProviderName(), start, err)

		switch {
		case errors.Is(err, errors.ErrInvalidSymbol):
			data.Flash = &Flash{Kind: "error", Message: "Enter an asset symbol"}
		case err != nil:
			h.log.Errorw("Quote lookup failed", "symbol", symbol, "error", err)
			data.Flash = &Flash{Kind: "error", Message: "Failed to load asset data: " + err.Error()}
		default:
			data.Quote = quote
			data.Symbol = quote.Symbol
			data.Flash = &Flash{Kind: "success", Message: "Asset data loaded"}
		}
	}

	if data.Flash == nil {
		data.Flash = PopFlash(w, r)
	}

	h.render(w, "assetsearch.html", data)
}

// queryLookup reports whether the request is a search submission; a bare
// page view has no symbol parameter at all
func queryLookup(r *http.Request) (string, bool) {
	if !r.URL.Query().Has("symbol") {
		return "", false
	}
	return r.URL.Query().Get("symbol"), true
}
