package translation

import (
	"sort"
	"unicode"
)

type lexiconNode struct {
	children map[rune]*lexiconNode
	terminal bool
	key      string
	value    string
}

// lexicon is a rune trie over lower-cased keys. Lookups anchor on word
// boundaries so a key never matches inside a longer word.
type lexicon struct {
	root *lexiconNode
	size int
}

func newLexicon(entries map[string]string) *lexicon {
	l := &lexicon{root: &lexiconNode{}}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		l.insert(key, entries[key])
	}
	return l
}

func (l *lexicon) insert(key, value string) {
	if key == "" {
		return
	}
	node := l.root
	for _, r := range key {
		r = unicode.ToLower(r)
		if node.children == nil {
			node.children = make(map[rune]*lexiconNode)
		}
		next, ok := node.children[r]
		if !ok {
			next = &lexiconNode{}
			node.children[r] = next
		}
		node = next
	}
	if !node.terminal {
		l.size++
	}
	node.terminal = true
	node.key = key
	node.value = value
}

// longestAt returns the longest key starting at start that ends on a word boundary.
func (l *lexicon) longestAt(text []rune, start int) (end int, match *lexiconNode) {
	l.walk(text, start, func(e int, n *lexiconNode) {
		end, match = e, n
	})
	return end, match
}

// walk calls fn for every boundary-terminated key starting at start, shortest first.
func (l *lexicon) walk(text []rune, start int, fn func(end int, n *lexiconNode)) {
	node := l.root
	for i := start; i < len(text); i++ {
		next, ok := node.children[unicode.ToLower(text[i])]
		if !ok {
			return
		}
		node = next
		if node.terminal && isBoundaryAfter(text, i) {
			fn(i+1, node)
		}
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

func isWordStart(text []rune, i int) bool {
	return i == 0 || !isWordRune(text[i-1]) || !isWordRune(text[i])
}

func isBoundaryAfter(text []rune, i int) bool {
	return i+1 == len(text) || !isWordRune(text[i+1]) || !isWordRune(text[i])
}
