// Package phone normalizes Ghanaian phone numbers to E.164 form.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalidPhone is returned when a number cannot be normalized to a valid
// Ghanaian E.164 form.
var ErrInvalidPhone = errors.New("invalid phone number")

const (
	countryPrefix = "+233"

	// subscriberDigits is the length of the national significant number.
	subscriberDigits = 9
)

// Normalize converts a raw phone number to canonical +233XXXXXXXXX form.
// Accepted inputs, after stripping spaces, dashes and parentheses:
//
//	0XXXXXXXXX      national format with leading zero
//	233XXXXXXXXX    country code without plus
//	+233XXXXXXXXX   full E.164
//
// Normalize is deterministic and idempotent: feeding its output back in
// returns the same value.
func Normalize(raw string) (string, error) {
	cleaned := strip(raw)
	if cleaned == "" {
		return "", ErrInvalidPhone
	}

	var subscriber string

	switch {
	case strings.HasPrefix(cleaned, countryPrefix):
		subscriber = cleaned[len(countryPrefix):]
	case strings.HasPrefix(cleaned, "233"):
		subscriber = cleaned[len("233"):]
	case strings.HasPrefix(cleaned, "0"):
		subscriber = cleaned[1:]
	default:
		return "", ErrInvalidPhone
	}

	if len(subscriber) != subscriberDigits || !allDigits(subscriber) {
		return "", ErrInvalidPhone
	}

	return countryPrefix + subscriber, nil
}

// strip removes formatting characters, keeping digits and a leading plus.
func strip(raw string) string {
	var b strings.Builder

	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// formatting noise
		default:
			return ""
		}
	}

	return b.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
