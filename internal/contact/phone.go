// internal/contact/phone.go

// Package contact normalizes the loosely formatted contact fields used for
// matching staff records against profiles. There is no full E.164 handling
// here; the data comes from hand-typed admin forms and imports, and the
// matching contract is exact equality of the canonical form.
package contact

import "strings"

// NormalizePhone reduces a phone number to its canonical "+<digits>" form:
// every non-digit is stripped, and an 11-digit number with a leading "8"
// (the domestic Russian trunk prefix) is rewritten to lead with "7".
// The empty string stays empty. The function is idempotent.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}

	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}

	return "+" + digits
}

// SamePhone reports whether two raw phone strings normalize to the same
// non-empty canonical form.
func SamePhone(a, b string) bool {
	na := NormalizePhone(a)
	if na == "" {
		return false
	}
	return na == NormalizePhone(b)
}

// SameEmail compares two e-mail addresses case-insensitively; empty strings
// never match.
func SameEmail(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
