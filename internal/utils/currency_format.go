package utils

import (
	"github.com/shopspring/decimal"
)

// DisplayPrecision is the number of decimal places conversion results are shown with.
const DisplayPrecision = 2

// RoundAmount rounds a float amount half away from zero to the given precision.
// Example: 110.00000000000001 with precision 2 returns 110
func RoundAmount(amount float64, precision int) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(int32(precision))
}

// FormatWithPrecision formats an amount with the given precision, keeping trailing zeros.
// Example: amount 12.3456 with precision 2 returns "12.35"
// Example: amount 110 with precision 2 returns "110.00"
func FormatWithPrecision(amount float64, precision int) string {
	return RoundAmount(amount, precision).StringFixed(int32(precision))
}
