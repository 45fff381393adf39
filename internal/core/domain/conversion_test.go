package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/SscSPs/currency_converter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Scenario(t *testing.T) {
	eur := &domain.Currency{Abbreviation: "EUR", Name: "Euro", RateToUSD: 1.10}
	usd := &domain.Currency{Abbreviation: "USD", Name: "US Dollar", RateToUSD: 1.00}

	got, err := domain.Convert(100, eur, usd)
	require.NoError(t, err)
	assert.InDelta(t, 110.00, got, 1e-9)

	got, err = domain.Convert(110, usd, eur)
	require.NoError(t, err)
	assert.InDelta(t, 100.00, got, 1e-9)
}

func TestConvert_Formula(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		rateFrom float64
		rateTo   float64
	}{
		{name: "zero amount", amount: 0, rateFrom: 1.1, rateTo: 0.0067},
		{name: "weak to strong", amount: 1000, rateFrom: 0.0067, rateTo: 1.27},
		{name: "strong to weak", amount: 12.5, rateFrom: 1.27, rateTo: 0.0067},
		{name: "same rate", amount: 42, rateFrom: 0.5, rateTo: 0.5},
		{name: "large amount", amount: 1e9, rateFrom: 3.3, rateTo: 0.09},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := &domain.Currency{Abbreviation: "AAA", RateToUSD: tt.rateFrom}
			to := &domain.Currency{Abbreviation: "BBB", RateToUSD: tt.rateTo}

			got, err := domain.Convert(tt.amount, from, to)
			require.NoError(t, err)
			assert.InDelta(t, tt.amount*tt.rateFrom/tt.rateTo, got, 1e-9*math.Max(1, got))

			back, err := domain.Convert(got, to, from)
			require.NoError(t, err)
			assert.InDelta(t, tt.amount, back, 1e-9*math.Max(1, tt.amount))
		})
	}
}

func TestConvert_InvalidArguments(t *testing.T) {
	valid := &domain.Currency{Abbreviation: "USD", RateToUSD: 1}

	tests := []struct {
		name   string
		amount float64
		from   *domain.Currency
		to     *domain.Currency
	}{
		{name: "negative amount", amount: -0.01, from: valid, to: valid},
		{name: "nil from", amount: 1, from: nil, to: valid},
		{name: "nil to", amount: 1, from: valid, to: nil},
		{name: "zero from rate", amount: 1, from: &domain.Currency{RateToUSD: 0}, to: valid},
		{name: "negative to rate", amount: 1, from: valid, to: &domain.Currency{RateToUSD: -2}},
		{name: "NaN amount", amount: math.NaN(), from: valid, to: valid},
		{name: "infinite amount", amount: math.Inf(1), from: valid, to: valid},
		{name: "infinite rate", amount: 1, from: &domain.Currency{RateToUSD: math.Inf(1)}, to: valid},
		{name: "NaN rate", amount: 1, from: valid, to: &domain.Currency{RateToUSD: math.NaN()}},
		{name: "overflowing result", amount: 1e308, from: &domain.Currency{RateToUSD: 1.27}, to: &domain.Currency{RateToUSD: 0.0067}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.Convert(tt.amount, tt.from, tt.to)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestConversionTransaction_String(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	txn := domain.NewConversionTransaction("eur", " usd", 100, 110, at)
	txn.TransactionID = 7

	assert.Equal(t, "EUR", txn.SourceCurrency)
	assert.Equal(t, "USD", txn.TargetCurrency)
	assert.Equal(t, "Transaction[id=7, 100.00 EUR -> 110.00 USD, date=2024-03-01T12:00:00Z]", txn.String())
}
