// Package sanitizer provides small, stateless helpers for cleaning user and
// upstream input before it is stored or rendered.
//
// Helpers chain with Apply:
//
//	title := sanitizer.Apply(raw, sanitizer.RemoveControlChars, sanitizer.SingleLine)
package sanitizer
