// Package whatsapp builds wa.me deep links from raw contact phone
// numbers.
package whatsapp

import (
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyPhone is returned when nothing usable remains after
// normalization.
var ErrEmptyPhone = errors.New("phone number is empty")

// NormalizePhone strips separator characters and applies the default
// country code. A number already carrying a + prefix is kept as-is; a
// leading zero is replaced by the country code; anything else gets the
// country code prepended.
func NormalizePhone(raw, countryCode string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '(', ')':
			return -1
		}
		return r
	}, raw)

	if cleaned == "" {
		return "", ErrEmptyPhone
	}

	if strings.HasPrefix(cleaned, "+") {
		return cleaned, nil
	}
	if strings.HasPrefix(cleaned, "0") {
		return countryCode + cleaned[1:], nil
	}
	return countryCode + cleaned, nil
}

// BuildLink renders the wa.me URL for a normalized phone number. The
// number is used digits-only; the message text is URL encoded.
func BuildLink(normalizedPhone, message string) string {
	number := strings.ReplaceAll(normalizedPhone, "+", "")
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
