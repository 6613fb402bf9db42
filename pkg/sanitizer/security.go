package sanitizer

// UserText prepares untrusted single-line text for display: control
// characters removed, whitespace collapsed, length capped.
func UserText(s string, maxLen int) string {
	return Apply(s,
		RemoveControlChars,
		SingleLine,
		func(v string) string { return MaxLength(v, maxLen) },
	)
}
