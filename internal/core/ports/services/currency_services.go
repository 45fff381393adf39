package services

import (
	"context"

	"github.com/SscSPs/currency_converter/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// ListCurrencies returns the (cached) currency set ordered by abbreviation.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// CurrencyExists reports whether a currency code is stored.
	CurrencyExists(ctx context.Context, code string) (bool, error)

	// GetExchangeRate returns the stored rate to USD for a currency code.
	GetExchangeRate(ctx context.Context, code string) (float64, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// InsertCurrency persists a new currency.
	InsertCurrency(ctx context.Context, code, name string, rateToUSD float64) (*domain.Currency, error)

	// UpdateRate changes the rate of an existing currency.
	UpdateRate(ctx context.Context, code string, rateToUSD float64) error
}

// ConversionSvc converts amounts between currency codes.
type ConversionSvc interface {
	// Convert converts amount of fromCode into toCode and records the conversion when enabled.
	Convert(ctx context.Context, amount float64, fromCode, toCode string) (*domain.ConversionResult, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
	ConversionSvc

	// Close releases the shared store resources.
	Close()
}
