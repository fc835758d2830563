package binance

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"botboard/internal/domain/marketdata"
	"botboard/pkg/errors"
)

// Compile-time check
var _ marketdata.Provider = (*Provider)(nil)

// Provider serves quotes from the Binance public 24h ticker endpoint.
// Credentials are optional; the endpoint is public.
type Provider struct {
	client *binance.Client
}

// NewProvider creates a Binance-backed quote provider
func NewProvider(apiKey, secretKey string) *Provider {
	return &Provider{client: binance.NewClient(apiKey, secretKey)}
}

// Name identifies the provider
func (p *Provider) Name() string {
	return "binance"
}

// Quote fetches the 24h price change statistics for a symbol
func (p *Provider) Quote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	stats, err := p.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "binance 24h ticker for %s", symbol)
	}
	if len(stats) == 0 {
		return nil, errors.ErrNotFound
	}

	s := stats[0]
	return &marketdata.Quote{
		Symbol:    s.Symbol,
		Price:     parseDecimal(s.LastPrice),
		Change24h: parseDecimal(s.PriceChangePercent),
		Volume24h: parseDecimal(s.QuoteVolume),
		High24h:   parseDecimal(s.HighPrice),
		Low24h:    parseDecimal(s.LowPrice),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func parseDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
