package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// Currency represents a supported currency and its rate against the base unit (USD).
type Currency struct {
	Abbreviation string  `json:"abbreviation" validate:"required,len=3,uppercase,alpha"` // Primary Key (e.g., "EUR")
	Name         string  `json:"name" validate:"required,min=1,max=50"`                  // e.g., "Euro"
	RateToUSD    float64 `json:"rateToUSD" validate:"gt=0"`                              // USD per one unit of this currency
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func currencyValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCurrency builds a validated Currency. The code is normalized first.
func NewCurrency(abbreviation, name string, rateToUSD float64) (*Currency, error) {
	c := &Currency{
		Abbreviation: NormalizeCode(abbreviation),
		Name:         strings.TrimSpace(name),
		RateToUSD:    rateToUSD,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the field constraints of a currency record.
// A non-positive rate is reported as apperrors.ErrInvalidRate.
func (c *Currency) Validate() error {
	if c == nil {
		return apperrors.NewValidationError("currency cannot be nil")
	}
	err := currencyValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "RateToUSD":
			return apperrors.ErrInvalidRate
		case "Abbreviation":
			return apperrors.NewValidationError(fmt.Sprintf("currency code '%s' must be exactly 3 uppercase letters", c.Abbreviation))
		case "Name":
			return apperrors.NewValidationError("currency name is required and must be at most 50 characters")
		}
	}
	return apperrors.NewValidationError(err.Error())
}

// String renders the currency the way it is listed to users, e.g. "EUR - Euro".
func (c Currency) String() string {
	return c.Abbreviation + " - " + c.Name
}
