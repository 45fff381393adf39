package mapping

import (
	"strings"

	"github.com/SscSPs/currency_converter/internal/core/domain"
	"github.com/SscSPs/currency_converter/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		Abbreviation: d.Abbreviation,
		Name:         d.Name,
		RateToUSD:    d.RateToUSD,
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency.
// CHAR(3) padding is trimmed from the code.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		Abbreviation: strings.TrimSpace(m.Abbreviation),
		Name:         m.Name,
		RateToUSD:    m.RateToUSD,
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
