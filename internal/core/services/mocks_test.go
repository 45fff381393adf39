package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/currency_converter/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) CurrencyExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyRepository) InsertCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrencyRate(ctx context.Context, code string, newRate float64) (int64, error) {
	args := m.Called(ctx, code, newRate)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TransactionWriter ---
type MockTransactionWriter struct {
	mock.Mock
}

func (m *MockTransactionWriter) SaveTransaction(ctx context.Context, txn *domain.ConversionTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Mock Closer ---
type MockCloser struct {
	mock.Mock
}

func (m *MockCloser) Close() {
	m.Called()
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// seedCurrencies returns a fresh copy each call since the cache keeps the slice it is given.
func seedCurrencies() []domain.Currency {
	return []domain.Currency{
		{Abbreviation: "EUR", Name: "Euro", RateToUSD: 1.10},
		{Abbreviation: "GBP", Name: "British Pound", RateToUSD: 1.27},
		{Abbreviation: "USD", Name: "US Dollar", RateToUSD: 1.00},
	}
}
