package translation

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
)

const (
	GlossarySortAlphabetical = "alphabetical"
	GlossarySortConfidence   = "confidence"
	GlossarySortCategory     = "category"
)

// GlossaryFilter with an empty SortBy keeps extraction order.
type GlossaryFilter struct {
	Search   string
	Category string
	SortBy   string
}

// FilterGlossary keeps terms whose term, translation or explanation contains
// Search and whose category equals Category ("" or "all" match everything).
func FilterGlossary(terms []domain.KeyTerm, f GlossaryFilter) []domain.KeyTerm {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	out := make([]domain.KeyTerm, 0, len(terms))
	for _, term := range terms {
		if category != "" && category != "all" && term.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(term.Term), search) &&
			!strings.Contains(strings.ToLower(term.Translation), search) &&
			!strings.Contains(strings.ToLower(term.Explanation), search) {
			continue
		}
		out = append(out, term)
	}

	switch strings.ToLower(strings.TrimSpace(f.SortBy)) {
	case GlossarySortAlphabetical:
		slices.SortStableFunc(out, func(a, b domain.KeyTerm) int {
			return strings.Compare(a.Term, b.Term)
		})
	case GlossarySortConfidence:
		slices.SortStableFunc(out, func(a, b domain.KeyTerm) int {
			return cmp.Compare(b.Confidence, a.Confidence)
		})
	case GlossarySortCategory:
		slices.SortStableFunc(out, func(a, b domain.KeyTerm) int {
			return cmp.Or(strings.Compare(a.Category, b.Category), strings.Compare(a.Term, b.Term))
		})
	}
	return out
}
