package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/currency_converter/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
)

// DefaultCacheTTL is used when a non-positive ttl is passed to NewRateCache.
const DefaultCacheTTL = 30 * time.Second

// RateCache is an in-memory projection of the currency table.
// All reads go through IsStale; a stale set is reloaded from the store
// before it is returned, so no caller sees data older than the ttl.
type RateCache struct {
	BaseService
	reader portsrepo.CurrencyReader
	ttl    time.Duration
	now    func() time.Time

	serveStaleOnError bool

	mu            sync.Mutex
	currencies    []domain.Currency
	loaded        bool
	invalidated   bool
	lastRefreshed time.Time
}

// RateCacheOption configures a RateCache
type RateCacheOption func(*RateCache)

// WithClock overrides the time source used for staleness checks.
func WithClock(now func() time.Time) RateCacheOption {
	return func(c *RateCache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithServeStaleOnError makes a failed refresh return the last loaded set
// instead of the store error. It has no effect before the first successful load.
func WithServeStaleOnError(enabled bool) RateCacheOption {
	return func(c *RateCache) {
		c.serveStaleOnError = enabled
	}
}

// NewRateCache creates an empty cache. Nothing is loaded until the first read.
func NewRateCache(reader portsrepo.CurrencyReader, ttl time.Duration, opts ...RateCacheOption) *RateCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &RateCache{
		reader: reader,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsStale reports whether the held set must be reloaded before use at now.
func (c *RateCache) IsStale(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isStaleLocked(now)
}

func (c *RateCache) isStaleLocked(now time.Time) bool {
	return !c.loaded || c.invalidated || now.Sub(c.lastRefreshed) > c.ttl
}

// ListCurrencies returns a copy of the currency set, refreshing it first when stale.
// The lock is held across the store round trip so concurrent readers share one refresh.
func (c *RateCache) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.isStaleLocked(now) {
		if err := c.refreshLocked(ctx, now); err != nil {
			return nil, err
		}
	}
	return slices.Clone(c.currencies), nil
}

// FindCurrency returns the cached currency for code and whether it was found.
func (c *RateCache) FindCurrency(ctx context.Context, code string) (*domain.Currency, bool, error) {
	currencies, err := c.ListCurrencies(ctx)
	if err != nil {
		return nil, false, err
	}
	code = domain.NormalizeCode(code)
	idx := slices.IndexFunc(currencies, func(cur domain.Currency) bool {
		return cur.Abbreviation == code
	})
	if idx < 0 {
		return nil, false, nil
	}
	found := currencies[idx]
	return &found, true, nil
}

func (c *RateCache) refreshLocked(ctx context.Context, now time.Time) error {
	currencies, err := c.reader.ListCurrencies(ctx)
	if err != nil {
		if c.serveStaleOnError && c.loaded {
			c.LogWarn(ctx, "Serving stale currency set after failed refresh",
				slog.String("error", err.Error()),
				slog.Time("last_refreshed", c.lastRefreshed))
			return nil
		}
		c.LogError(ctx, err, "Failed to refresh currency cache")
		return err
	}

	c.currencies = currencies
	c.loaded = true
	c.invalidated = false
	c.lastRefreshed = now
	c.LogDebug(ctx, "Currency cache refreshed", slog.Int("count", len(currencies)))
	return nil
}

// ApplyRateUpdate patches the cached rate for code after a successful store update.
// An unknown code invalidates the set instead, so the next read reloads it.
func (c *RateCache) ApplyRateUpdate(code string, rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	code = domain.NormalizeCode(code)
	for i := range c.currencies {
		if c.currencies[i].Abbreviation == code {
			c.currencies[i].RateToUSD = rate
			c.lastRefreshed = c.now()
			return
		}
	}
	c.invalidated = true
}

// Invalidate forces the next read to reload from the store.
func (c *RateCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = true
}
