package marketdata

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botboard/pkg/errors"
)

// memoryCache is an in-process QuoteCache for tests
type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return errors.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func TestSimulatedProvider_Quote(t *testing.T) {
	ctx := context.Background()
	provider := NewSimulatedProvider(0)

	quote, err := provider.Quote(ctx, "BTCUSDT")
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", quote.Symbol)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("42567.89")))
	assert.True(t, quote.Change24h.Equal(decimal.RequireFromString("3.45")))
	assert.True(t, quote.Volume24h.Equal(decimal.RequireFromString("1234567890")))
	assert.True(t, quote.High24h.Equal(decimal.RequireFromString("43210.50")))
	assert.True(t, quote.Low24h.Equal(decimal.RequireFromString("41890.20")))
	assert.True(t, quote.Positive())
}

func TestSimulatedProvider_QuoteCancellation(t *testing.T) {
	provider := NewSimulatedProvider(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := provider.Quote(ctx, "BTCUSDT")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("uppercases and trims the symbol", func(t *testing.T) {
		svc := NewService(NewSimulatedProvider(0), nil, 0)

		quote, err := svc.Lookup(ctx, "  ethusdt ")
		require.NoError(t, err)
		assert.Equal(t, "ETHUSDT", quote.Symbol)
	})

	t.Run("rejects empty symbol without a provider call", func(t *testing.T) {
		svc := NewService(NewSimulatedProvider(time.Minute), nil, 0)

		_, err := svc.Lookup(ctx, "   ")
		assert.ErrorIs(t, err, errors.ErrInvalidSymbol)
	})

	t.Run("serves repeat lookups from the cache", func(t *testing.T) {
		cache := newMemoryCache()
		svc := NewService(NewSimulatedProvider(0), cache, 30*time.Second)

		first, err := svc.Lookup(ctx, "btcusdt")
		require.NoError(t, err)
		require.Equal(t, 1, cache.sets)

		second, err := svc.Lookup(ctx, "BTCUSDT")
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets, "second lookup must not refill the cache")
		assert.Equal(t, first.Symbol, second.Symbol)
		assert.True(t, first.Price.Equal(second.Price))
	})
}
