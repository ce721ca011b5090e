// Package language guesses a document's language from its script and names
// language codes for display.
package language

import (
	"strings"
	"unicode"
)

const DefaultCode = "en"

type scriptRule struct {
	code  string
	match func(rune) bool
}

// Kana is checked before Han: Japanese text mixes both scripts.
var scriptRules = []scriptRule{
	{code: "hi", match: in(unicode.Devanagari)},
	{code: "kn", match: in(unicode.Kannada)},
	{code: "ta", match: in(unicode.Tamil)},
	{code: "te", match: in(unicode.Telugu)},
	{code: "ja", match: in(unicode.Hiragana, unicode.Katakana)},
	{code: "zh", match: in(unicode.Han)},
	{code: "es", match: oneOf("ñ¿¡")},
	{code: "fr", match: oneOf("çœèêàùâîû")},
	{code: "de", match: oneOf("ßäöü")},
}

// Detector is stateless and safe for concurrent use.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the first rule whose characters occur in text, or "en".
func (d *Detector) Detect(text string) string {
	seen := make([]bool, len(scriptRules))
	for _, r := range text {
		if r < 0x80 {
			continue
		}
		lower := unicode.ToLower(r)
		for i, rule := range scriptRules {
			if !seen[i] && rule.match(lower) {
				seen[i] = true
			}
		}
	}
	for i, rule := range scriptRules {
		if seen[i] {
			return rule.code
		}
	}
	return DefaultCode
}

func in(tables ...*unicode.RangeTable) func(rune) bool {
	return func(r rune) bool {
		return unicode.IsOneOf(tables, r)
	}
}

func oneOf(chars string) func(rune) bool {
	return func(r rune) bool {
		return strings.ContainsRune(chars, r)
	}
}
