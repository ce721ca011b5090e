// Package translation holds the deterministic translation backstop and the
// glossary and summary builders that run on its term tables.
package translation

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/doclens/internal/knowledge"
)

type pairTables struct {
	terms  *lexicon
	common *lexicon
	raw    knowledge.Pair
}

// Dictionary substitutes known terms using per-pair tables. It holds no mutable
// state after construction and is safe for concurrent use.
type Dictionary struct {
	pairs map[string]pairTables
}

func NewDictionary(pairs map[string]knowledge.Pair) *Dictionary {
	d := &Dictionary{pairs: make(map[string]pairTables, len(pairs))}
	for key, pair := range pairs {
		d.pairs[strings.ToLower(key)] = pairTables{
			terms:  newLexicon(pair.Terms),
			common: newLexicon(pair.Common),
			raw:    pair,
		}
	}
	return d
}

// Translate makes one left-to-right pass over text. At each word start the
// longest specialized term wins, then the longest common word; replaced output
// is never rescanned. Unknown pairs return text unchanged.
func (d *Dictionary) Translate(text, source, target string) string {
	tables, ok := d.tables(source, target)
	if !ok || text == "" {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		if isWordStart(runes, i) {
			if end, match := tables.terms.longestAt(runes, i); match != nil {
				b.WriteString(match.value)
				i = end
				continue
			}
			if end, match := tables.common.longestAt(runes, i); match != nil {
				b.WriteString(match.value)
				i = end
				continue
			}
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// Occurrences lists every specialized term with at least one word-boundary
// match in text, longest first and alphabetical within a length.
func (d *Dictionary) Occurrences(text, source, target string) []string {
	tables, ok := d.tables(source, target)
	if !ok || text == "" {
		return nil
	}

	runes := []rune(text)
	found := make(map[string]struct{})
	for i := range runes {
		if !isWordStart(runes, i) {
			continue
		}
		tables.terms.walk(runes, i, func(_ int, n *lexiconNode) {
			found[n.key] = struct{}{}
		})
	}

	out := make([]string, 0, len(found))
	for key := range found {
		out = append(out, key)
	}
	sortLongestFirst(out)
	return out
}

// Term returns the specialized translation of term for the pair.
func (d *Dictionary) Term(term, source, target string) (string, bool) {
	tables, ok := d.tables(source, target)
	if !ok {
		return "", false
	}
	v, ok := tables.raw.Terms[term]
	return v, ok
}

// Word falls back to the common-word table when term has no specialized entry.
func (d *Dictionary) Word(term, source, target string) (string, bool) {
	if v, ok := d.Term(term, source, target); ok {
		return v, true
	}
	tables, ok := d.tables(source, target)
	if !ok {
		return "", false
	}
	v, ok := tables.raw.Common[term]
	return v, ok
}

func (d *Dictionary) tables(source, target string) (pairTables, bool) {
	if source == target {
		return pairTables{}, false
	}
	tables, ok := d.pairs[strings.ToLower(knowledge.PairKey(source, target))]
	return tables, ok
}

func sortLongestFirst(terms []string) {
	sort.Slice(terms, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(terms[i]), utf8.RuneCountInString(terms[j])
		if li != lj {
			return li > lj
		}
		return terms[i] < terms[j]
	})
}
