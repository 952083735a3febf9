// Package validate holds the pure input checks used by the auth flows.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

// Syntactic check only: no whitespace, exactly one @, a dot inside the
// domain segment. Deliverability is the directory's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sanitize escapes the five HTML-significant characters and trims the
// result. The escape is a single pass over the input, so entities produced
// here are never re-escaped by a second character's rule.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// StrongPassword requires at least 8 characters with one lowercase letter,
// one uppercase letter, and one digit. Symbols are allowed, not required.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
