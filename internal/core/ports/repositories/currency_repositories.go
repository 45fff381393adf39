package repositories

import (
	"context"

	"github.com/SscSPs/currency_converter/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// ListCurrencies retrieves all currencies ordered by abbreviation.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// CurrencyExists reports whether a currency with the given code is stored.
	CurrencyExists(ctx context.Context, code string) (bool, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// InsertCurrency persists a new currency. Duplicates are rejected.
	InsertCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrencyRate sets a new rate and returns the number of rows affected.
	UpdateCurrencyRate(ctx context.Context, code string, newRate float64) (int64, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
