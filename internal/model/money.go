package model

import (
	"fmt"
	"math"
	"strconv"
)

// The shop API reports all amounts in minor currency units (cents).
// These helpers convert between minor units and display strings.

// FormatMinor renders a minor-unit amount as a decimal string.
// Examples: 9900 → "99.00", -150 → "-1.50", 5 → "0.05"
func FormatMinor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// FormatCurrency renders a minor-unit amount with its currency code.
// Examples: (9900, "USD") → "99.00 USD"
func FormatCurrency(amount int64, currencyCode string) string {
	return FormatMinor(amount) + " " + currencyCode
}

// ParseCents converts decimal string amounts (major units) to minor units.
// Handles edge cases: empty strings, missing decimals, negative values.
// Examples: "99.00" → 9900, "1234.56" → 123456, "" → 0
func ParseCents(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// math.Round handles both positive and negative numbers correctly
	return int64(math.Round(f * 100))
}
