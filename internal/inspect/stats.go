package inspect

import (
	"math"
	"strings"
	"unicode/utf8"
)

// tokensPerChar is a rough model-agnostic token estimate.
const tokensPerChar = 0.21787944117144232

type Stats struct {
	Chars  int `json:"chars"`
	Words  int `json:"words"`
	Lines  int `json:"lines"`
	Tokens int `json:"tokens"`
}

// Measure counts runes, whitespace-separated words, non-empty lines and
// estimated tokens.
func Measure(text string) Stats {
	s := Stats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			s.Lines++
		}
	}
	s.Tokens = int(math.Round(float64(s.Chars) * tokensPerChar))
	return s
}
