package marketdata

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SimulatedProvider stands in for a real market data integration.
// It answers every symbol with the same fixed snapshot after an
// artificial delay, so the search screen can be exercised without
// exchange connectivity.
type SimulatedProvider struct {
	delay time.Duration
}

// NewSimulatedProvider creates a simulated provider with the given
// artificial latency
func NewSimulatedProvider(delay time.Duration) *SimulatedProvider {
	return &SimulatedProvider{delay: delay}
}

// Name identifies the provider
func (p *SimulatedProvider) Name() string {
	return "simulated"
}

// Quote waits for the configured delay, then returns placeholder
// figures with the requested symbol. The delay is cancellable.
func (p *SimulatedProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return &Quote{
		Symbol:    symbol,
		Price:     decimal.RequireFromString("42567.89"),
		Change24h: decimal.RequireFromString("3.45"),
		Volume24h: decimal.RequireFromString("1234567890"),
		High24h:   decimal.RequireFromString("43210.50"),
		Low24h:    decimal.RequireFromString("41890.20"),
		FetchedAt: time.Now().UTC(),
	}, nil
}
