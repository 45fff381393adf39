package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/currency_converter/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
)

// ConversionService applies the conversion formula and optionally appends
// each successful conversion to the ledger. Recording is best effort.
type ConversionService struct {
	BaseService
	ledger portsrepo.TransactionWriter
	record bool
	now    func() time.Time
}

// ConversionOption configures a ConversionService
type ConversionOption func(*ConversionService)

// WithRecording toggles ledger recording. Recording also requires a non-nil ledger.
func WithRecording(enabled bool) ConversionOption {
	return func(s *ConversionService) {
		s.record = enabled
	}
}

// WithConversionClock overrides the timestamp source for ledger rows.
func WithConversionClock(now func() time.Time) ConversionOption {
	return func(s *ConversionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewConversionService creates a conversion engine backed by ledger.
// Recording is enabled by default.
func NewConversionService(ledger portsrepo.TransactionWriter, opts ...ConversionOption) *ConversionService {
	svc := &ConversionService{
		ledger: ledger,
		record: true,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Convert converts amount from one currency into another. A ledger failure
// is logged and never changes the returned result.
func (s *ConversionService) Convert(ctx context.Context, amount float64, from, to *domain.Currency) (float64, error) {
	result, err := domain.Convert(amount, from, to)
	if err != nil {
		return 0, err
	}

	if s.record && s.ledger != nil {
		s.recordConversion(ctx, amount, result, from, to)
	}
	return result, nil
}

func (s *ConversionService) recordConversion(ctx context.Context, amount, result float64, from, to *domain.Currency) {
	txn := domain.NewConversionTransaction(from.Abbreviation, to.Abbreviation, amount, result, s.now())
	if err := s.ledger.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to record conversion",
			slog.String("source_currency", txn.SourceCurrency),
			slog.String("target_currency", txn.TargetCurrency),
			slog.Float64("source_amount", txn.SourceAmount),
			slog.Float64("target_amount", txn.TargetAmount))
		return
	}
	s.LogDebug(ctx, "Conversion recorded", slog.Int64("transaction_id", txn.TransactionID))
}
