// Package intelligence classifies documents by domain, recognizes entities,
// ranks reference cases and phrases the findings as insights. Every component
// is built once from knowledge base data and is safe for concurrent use.
package intelligence

import (
	"strings"
	"unicode"
)

// tokenize splits on whitespace, lower-cases and trims surrounding punctuation.
// Tokens that are pure punctuation are dropped.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
