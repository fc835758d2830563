package marketdata

import (
	"context"
	"strings"
	"time"

	"botboard/pkg/errors"
	"botboard/pkg/logger"
)

// QuoteCache stores recent quotes; the Redis adapter satisfies it
type QuoteCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service answers symbol lookups from the cache or the configured provider
type Service struct {
	provider Provider
	cache    QuoteCache
	ttl      time.Duration
	log      *logger.Logger
}

// NewService constructs a market data service. cache may be nil, in which
// case every lookup hits the provider.
func NewService(provider Provider, cache QuoteCache, ttl time.Duration) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      logger.Get().With("component", "marketdata_service"),
	}
}

// ProviderName reports which quote source is active
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// Lookup returns the 24h snapshot for a symbol. The symbol is uppercased
// before the provider call; empty input is rejected without a lookup.
func (s *Service) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.ErrInvalidSymbol
	}

	cacheKey := "quote:" + symbol
	if s.cache != nil {
		var cached Quote
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	quote, err := s.provider.Quote(ctx, symbol)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup %s", symbol)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, quote, s.ttl); err != nil {
			s.log.Warnw("Failed to cache quote", "symbol", symbol, "error", err)
		}
	}

	return quote, nil
}
