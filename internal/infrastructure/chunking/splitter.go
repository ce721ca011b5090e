package chunking

import (
	"strings"
	"unicode"
)

const DefaultChunkSize = 200

// Splitter cuts text into chunks of at most ChunkSize runes, preferring the
// last whitespace inside the window so words stay whole. Whitespace inside a
// chunk is collapsed to single spaces.
type Splitter struct {
	ChunkSize int
}

func NewSplitter(chunkSize int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Splitter{ChunkSize: chunkSize}
}

func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	out := make([]string, 0, len(runes)/s.ChunkSize+1)
	for start := 0; start < len(runes); {
		end := start + s.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else if cut := lastSpace(runes, start, end); cut > start {
			end = cut
		}

		if chunk := collapseSpaces(string(runes[start:end])); chunk != "" {
			out = append(out, chunk)
		}
		start = end
	}
	return out
}

// lastSpace returns the index of the last whitespace rune in runes[start:end+1],
// or -1. Looking at runes[end] lets a window that ends exactly before a space
// keep its full length.
func lastSpace(runes []rune, start, end int) int {
	for i := end; i > start; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
