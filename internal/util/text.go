package util

import "strings"

// Preview collapses whitespace and cuts s to at most n runes, marking the cut
// with an ellipsis.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// ShortID keeps the first 8 characters of an identifier.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
