package dto

import (
	"github.com/SscSPs/currency_converter/internal/core/domain"
	"github.com/SscSPs/currency_converter/internal/utils"
)

// ConvertRequest defines the payload for a conversion.
// Amount is a pointer so that an explicit zero passes the required check.
type ConvertRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
	From   string   `json:"from" binding:"required"`
	To     string   `json:"to" binding:"required"`
}

// ConversionResponse defines the data returned for a conversion.
type ConversionResponse struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	SourceAmount    float64 `json:"sourceAmount"`
	TargetAmount    float64 `json:"targetAmount"`
	Rate            float64 `json:"rate"`
	FormattedAmount string  `json:"formattedAmount"`
}

// ToConversionResponse converts a domain.ConversionResult to its DTO.
// FormattedAmount is rounded for display only; TargetAmount keeps full precision.
func ToConversionResponse(res *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		From:            res.From,
		To:              res.To,
		SourceAmount:    res.SourceAmount,
		TargetAmount:    res.TargetAmount,
		Rate:            res.Rate,
		FormattedAmount: utils.FormatWithPrecision(res.TargetAmount, utils.DisplayPrecision) + " " + res.To,
	}
}
