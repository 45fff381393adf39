package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/SscSPs/currency_converter/internal/apperrors"
)

// Convert converts amount units of from into to.
//
// Both rates are "USD per one unit", so the result is amount * from.RateToUSD / to.RateToUSD.
func Convert(amount float64, from, to *Currency) (float64, error) {
	if from == nil || to == nil {
		return 0, apperrors.NewValidationError("from and to currencies cannot be nil")
	}
	if !isFinite(amount) {
		return 0, apperrors.NewValidationError("amount must be a finite number")
	}
	if amount < 0 {
		return 0, apperrors.NewValidationError("amount cannot be negative")
	}
	if !isFinite(from.RateToUSD) || !isFinite(to.RateToUSD) || from.RateToUSD <= 0 || to.RateToUSD <= 0 {
		return 0, apperrors.NewValidationError("exchange rates must be positive")
	}
	result := amount * (from.RateToUSD / to.RateToUSD)
	if !isFinite(result) {
		return 0, apperrors.NewValidationError("converted amount is out of range")
	}
	return result, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ConversionTransaction is an immutable ledger record of a completed conversion.
// Currencies are referenced by abbreviation only; the record does not assume
// the referenced currency still exists or is unchanged.
type ConversionTransaction struct {
	TransactionID   int64     `json:"transactionID"` // Assigned by the store
	SourceCurrency  string    `json:"sourceCurrency"`
	TargetCurrency  string    `json:"targetCurrency"`
	SourceAmount    float64   `json:"sourceAmount"`
	TargetAmount    float64   `json:"targetAmount"`
	TransactionDate time.Time `json:"transactionDate"`
}

// NewConversionTransaction builds a ledger record stamped with at.
func NewConversionTransaction(source, target string, sourceAmount, targetAmount float64, at time.Time) *ConversionTransaction {
	return &ConversionTransaction{
		SourceCurrency:  NormalizeCode(source),
		TargetCurrency:  NormalizeCode(target),
		SourceAmount:    sourceAmount,
		TargetAmount:    targetAmount,
		TransactionDate: at,
	}
}

func (t ConversionTransaction) String() string {
	return fmt.Sprintf("Transaction[id=%d, %.2f %s -> %.2f %s, date=%s]",
		t.TransactionID, t.SourceAmount, t.SourceCurrency,
		t.TargetAmount, t.TargetCurrency, t.TransactionDate.Format(time.RFC3339))
}

// ConversionResult is what the caller-facing Convert returns.
type ConversionResult struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	SourceAmount float64 `json:"sourceAmount"`
	TargetAmount float64 `json:"targetAmount"`
	Rate         float64 `json:"rate"` // units of To per one unit of From
}
