package marketdata

import (
	"context"
)

// Provider is a pluggable quote source. The production implementation
// talks to an exchange; the simulated one returns placeholder figures
// after a fixed delay and is the documented default.
type Provider interface {
	// Quote returns the 24h snapshot for an uppercase symbol
	Quote(ctx context.Context, symbol string) (*Quote, error)

	// Name identifies the provider in logs and health output
	Name() string
}
