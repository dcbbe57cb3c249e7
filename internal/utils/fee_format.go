package utils

import (
	"github.com/shopspring/decimal"
)

// FeePrecision is the number of decimals fees are shown with (lei and bani).
const FeePrecision = 2

// FormatFee renders an optional fee with exactly FeePrecision decimals.
// Example: 150.5 returns "150.50"; 99.999 returns "100.00".
func FormatFee(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	s := FormatWithPrecision(*amount, FeePrecision)
	return &s
}

// FormatWithPrecision rounds half away from zero and pads to precision decimals.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
