// Package core provides the pure domain types for spend forecasting:
// transaction normalization, daily aggregation, month windows, and
// series densification.
//
// This file contains amount parsing. Amounts arrive as JSON numbers or
// numeric strings and are held as cents to keep summation associative;
// only the final estimate is rounded.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// CoerceAmountCents converts an amount-like value from a decoded JSON record
// into cents. Unparseable values coerce to 0 rather than dropping the record:
// the date still anchors the series, the spend is just unknown.
//
// Accepted kinds: float64 (JSON number), json.Number, string with dot or
// comma decimal separator and optional sign, int/int64, and nil.
func CoerceAmountCents(v any) int64 {
	switch val := v.(type) {
	case float64:
		return int64(math.Round(val * 100))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return int64(math.Round(f * 100))
		}
		return 0
	case int:
		return int64(val) * 100
	case int64:
		return val * 100
	case string:
		cents, err := parseDecimalCents(val)
		if err != nil {
			return 0
		}
		return cents
	default:
		return 0
	}
}

// parseDecimalCents converts a decimal string to cents with half-up rounding
// on the third decimal place. Both dot (12.34) and comma (12,34) separators
// are accepted, as is a leading sign.
func parseDecimalCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	// Split into integer and fractional part
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 1 {
		return 0, nil
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return cents, nil
}

// RoundCentsToUnits rounds a cents total to whole currency units, half up.
func RoundCentsToUnits(cents int64) int64 {
	if cents >= 0 {
		return (cents + 50) / 100
	}
	return -((-cents + 50) / 100)
}
