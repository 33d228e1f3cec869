package inspect

import (
	"fmt"
	"net/url"
	"strings"
)

// Flatten collapses every whitespace run to one space and percent-escapes
// the result so it can travel in a URL or a single-line API field.
func Flatten(text string) string {
	return escapeComponent(strings.Join(strings.Fields(text), " "))
}

// Unflatten reverses Flatten and pretty-prints the decoded JSON.
func Unflatten(text string) (string, error) {
	raw, err := url.PathUnescape(strings.TrimSpace(text))
	if err != nil {
		return "", fmt.Errorf("unflatten: %w", err)
	}
	out, err := Format(raw)
	if err != nil {
		return "", fmt.Errorf("unflatten: %w", err)
	}
	return out, nil
}

// escapeComponent percent-encodes every byte outside
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ).
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepUnescaped(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func keepUnescaped(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
