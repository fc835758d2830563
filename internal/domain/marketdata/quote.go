package marketdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a 24h market snapshot for a single symbol
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change_24h"` // percent, signed
	Volume24h decimal.Decimal `json:"volume_24h"`
	High24h   decimal.Decimal `json:"high_24h"`
	Low24h    decimal.Decimal `json:"low_24h"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Positive reports whether the 24h change is positive, which drives
// the up/down styling on the search screen
func (q *Quote) Positive() bool {
	return q.Change24h.Sign() > 0
}
