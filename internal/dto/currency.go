package dto

import (
	"github.com/SscSPs/currency_converter/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Abbreviation string  `json:"abbreviation" binding:"required,len=3,alpha"`
	Name         string  `json:"name" binding:"required,max=50"`
	RateToUSD    float64 `json:"rateToUSD" binding:"required,gt=0"`
}

// UpdateRateRequest defines the payload for changing a currency's rate.
type UpdateRateRequest struct {
	RateToUSD float64 `json:"rateToUSD" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Abbreviation string  `json:"abbreviation"`
	Name         string  `json:"name"`
	RateToUSD    float64 `json:"rateToUSD"`
	Display      string  `json:"display"`
}

// ExchangeRateResponse is returned by the single-rate lookup.
type ExchangeRateResponse struct {
	Abbreviation string  `json:"abbreviation"`
	RateToUSD    float64 `json:"rateToUSD"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Abbreviation: curr.Abbreviation,
		Name:         curr.Name,
		RateToUSD:    curr.RateToUSD,
		Display:      curr.String(),
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
