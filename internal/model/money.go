package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCents converts decimal string amounts (dollars) to cents (int64).
// Use for the wc/v3 API, which returns amounts in major currency units
// (e.g., "99.00" = $99.00). Handles empty strings, missing decimals, and
// thousands separators.
// Examples: "99.00" → 9900, "1,234.56" → 123456, "" → 0
func ParseCents(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	// math.Round handles both positive and negative amounts correctly
	return int64(math.Round(f * 100))
}

// ParseMinorUnits converts string amounts already in minor units to int64.
// Use for the Store API, which returns every price field in minor units
// (e.g., "8900" = 8900 cents = $89.00).
// Examples: "8900" → 8900, "" → 0
func ParseMinorUnits(s string) int64 {
	if s == "" {
		return 0
	}
	// Parse as float to tolerate decimal noise, then truncate
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

// FormatCents converts cents to a decimal string for the wc/v3 API.
// Order line items require subtotal/total in major units.
// Examples: 9900 → "99.00", 5 → "0.05", -1500 → "-15.00"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatDisplayPrice renders cents as a currency display string, e.g. 1500 → "$15.00".
// Used when rebuilding priced add-on labels for order meta.
func FormatDisplayPrice(cents int64) string {
	return "$" + FormatCents(cents)
}
