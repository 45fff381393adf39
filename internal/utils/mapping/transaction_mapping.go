package mapping

import (
	"github.com/SscSPs/currency_converter/internal/core/domain"
	"github.com/SscSPs/currency_converter/internal/models"
)

// ToModelTransaction converts a domain ConversionTransaction to a model Transaction
func ToModelTransaction(d domain.ConversionTransaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		SourceCurrency:  d.SourceCurrency,
		TargetCurrency:  d.TargetCurrency,
		SourceAmount:    d.SourceAmount,
		TargetAmount:    d.TargetAmount,
		TransactionDate: d.TransactionDate,
	}
}
