package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/SscSPs/currency_converter/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_converter/internal/core/ports/services"
)

// Closer releases the shared store resources.
type Closer interface {
	Close()
}

// CurrencyService is the caller-facing surface. Reads used for conversion come
// from the rate cache; existence and single-rate lookups go to the store.
type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	cache        *RateCache
	converter    *ConversionService
	closer       Closer
}

// NewCurrencyService wires the cache and conversion engine around the store.
// closer may be nil when the caller owns the store lifecycle.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, cache *RateCache, converter *ConversionService, closer Closer) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		cache:        cache,
		converter:    converter,
		closer:       closer,
	}
}

// Ensure CurrencyService implements the CurrencySvcFacade interface
var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.cache.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *CurrencyService) Convert(ctx context.Context, amount float64, fromCode, toCode string) (*domain.ConversionResult, error) {
	from, err := s.lookup(ctx, fromCode)
	if err != nil {
		return nil, err
	}
	to, err := s.lookup(ctx, toCode)
	if err != nil {
		return nil, err
	}

	converted, err := s.converter.Convert(ctx, amount, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.ConversionResult{
		From:         from.Abbreviation,
		To:           to.Abbreviation,
		SourceAmount: amount,
		TargetAmount: converted,
		Rate:         from.RateToUSD / to.RateToUSD,
	}, nil
}

func (s *CurrencyService) lookup(ctx context.Context, code string) (*domain.Currency, error) {
	code = domain.NormalizeCode(code)
	if code == "" {
		return nil, apperrors.NewValidationError("currency code cannot be empty")
	}
	currency, found, err := s.cache.FindCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency %s not found", code))
	}
	return currency, nil
}

func (s *CurrencyService) InsertCurrency(ctx context.Context, code, name string, rateToUSD float64) (*domain.Currency, error) {
	currency, err := domain.NewCurrency(code, name, rateToUSD)
	if err != nil {
		return nil, err
	}

	if err := s.currencyRepo.InsertCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "Failed to insert currency", slog.String("currency", currency.Abbreviation))
		return nil, err
	}

	s.cache.Invalidate()
	s.LogInfo(ctx, "Currency inserted", slog.String("currency", currency.Abbreviation))
	return currency, nil
}

func (s *CurrencyService) UpdateRate(ctx context.Context, code string, rateToUSD float64) error {
	if rateToUSD <= 0 {
		return apperrors.ErrInvalidRate
	}
	code = domain.NormalizeCode(code)

	if _, err := s.currencyRepo.UpdateCurrencyRate(ctx, code, rateToUSD); err != nil {
		s.LogError(ctx, err, "Failed to update rate", slog.String("currency", code))
		return err
	}

	s.cache.ApplyRateUpdate(code, rateToUSD)
	s.LogInfo(ctx, "Rate updated", slog.String("currency", code), slog.Float64("rate_to_usd", rateToUSD))
	return nil
}

func (s *CurrencyService) CurrencyExists(ctx context.Context, code string) (bool, error) {
	return s.currencyRepo.CurrencyExists(ctx, code)
}

func (s *CurrencyService) GetExchangeRate(ctx context.Context, code string) (float64, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	return currency.RateToUSD, nil
}

func (s *CurrencyService) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
}
