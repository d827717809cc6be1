package sms

import (
	"fmt"
	"strings"
)

// DefaultCountryCode is prefixed onto bare 10-digit subscriber numbers.
const DefaultCountryCode = "91"

// Normalize converts a raw phone number to international form: all
// non-digits stripped, a bare 10-digit subscriber number gets the country
// calling code, and the result always carries a leading '+'.
func Normalize(raw, countryCode string) (string, error) {
	if strings.TrimSpace(countryCode) == "" {
		countryCode = DefaultCountryCode
	}
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", fmt.Errorf("sms: no digits in number %q", raw)
	}
	if len(digits) == 10 {
		digits = countryCode + digits
	}
	return "+" + digits, nil
}

// digitsOnly strips everything but digits; the native compose path wants
// the bare number without the '+'.
func digitsOnly(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
