// Package utils provides common helpers for tickers, SEC identifiers and dates.
package utils

import (
	"strconv"
	"strings"
)

// NormalizeTicker upper-cases a ticker and strips whitespace and a leading "$".
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	t = strings.TrimPrefix(t, "$")
	return strings.TrimSpace(t)
}

// PadCIK pads a CIK number to 10 digits with leading zeros. Surrounding
// whitespace and an existing zero padding are normalized.
func PadCIK(cik string) string {
	cik = strings.TrimLeft(strings.TrimSpace(cik), "0")
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}

// TrimCIK returns the CIK without leading zeros, as used in archive paths.
func TrimCIK(cik string) string {
	n, err := strconv.ParseUint(strings.TrimSpace(cik), 10, 64)
	if err != nil {
		return strings.TrimLeft(strings.TrimSpace(cik), "0")
	}
	return strconv.FormatUint(n, 10)
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// StringPtr returns a pointer to s, or nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
