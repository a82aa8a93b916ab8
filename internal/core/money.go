// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing amounts typed by the user and
// formatting them for display. Amounts are exact decimals; nothing here
// rounds a stored value.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes formatted amounts.
const CurrencySymbol = "Rs"

// maxExponent bounds exponent notation so "1e999999999" cannot expand into
// a billion-digit display string.
const maxExponent = 18

// ParseAmount converts a user supplied decimal string to a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading sign and exponent notation (1e2, 2.5E-1) as produced by
// JSON encoders. No rounding is applied.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("-5")     -> -5, nil
//	ParseAmount("1e2")    -> 100, nil
//	ParseAmount("1.2.3")  -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 {
		return decimal.Zero, ErrInvalidAmount
	}

	mantissa, exponent, hasExp := strings.Cut(strings.ToLower(digits), "e")
	if hasExp && !validExponent(exponent) {
		return decimal.Zero, ErrInvalidAmount
	}
	parts := strings.Split(mantissa, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, p := range parts {
		if !allDigits(p) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func validExponent(e string) bool {
	e = strings.TrimPrefix(strings.TrimPrefix(e, "+"), "-")
	if e == "" || !allDigits(e) {
		return false
	}
	n, err := strconv.Atoi(e)
	return err == nil && n <= maxExponent
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// FormatAmount renders an amount with two decimals for display, e.g. "Rs 12.50".
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + CurrencySymbol + " " + d.Neg().StringFixed(2)
	}
	return CurrencySymbol + " " + d.StringFixed(2)
}
