package sanitizer

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Subscribers are keyed by the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
