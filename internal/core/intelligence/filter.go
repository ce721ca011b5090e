package intelligence

import (
	"sort"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
)

const (
	SortByRelevance  = "relevance"
	SortByConfidence = "confidence"
	SortByDate       = "date"
)

type CaseFilter struct {
	Search string
	// Confidence is one of all, high (>=80), medium (50-79) or low (<50).
	Confidence string
	SortBy     string
}

// FilterCases narrows and reorders matched cases. The input is not modified.
func FilterCases(cases []domain.SimilarCase, f CaseFilter) []domain.SimilarCase {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	band := strings.ToLower(strings.TrimSpace(f.Confidence))

	out := make([]domain.SimilarCase, 0, len(cases))
	for _, c := range cases {
		if !inConfidenceBand(c.Confidence, band) || !caseMatches(c, search) {
			continue
		}
		out = append(out, c)
	}

	switch strings.ToLower(f.SortBy) {
	case SortByConfidence:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	case SortByDate:
		// ISO dates order lexically.
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	}
	return out
}

// ValidCaseFilter reports whether the band and sort values are recognized.
func ValidCaseFilter(f CaseFilter) bool {
	switch strings.ToLower(strings.TrimSpace(f.Confidence)) {
	case "", "all", "high", "medium", "low":
	default:
		return false
	}
	switch strings.ToLower(strings.TrimSpace(f.SortBy)) {
	case "", SortByRelevance, SortByConfidence, SortByDate:
		return true
	default:
		return false
	}
}

// FilterEntities keeps entities of the given type; "" and "all" keep everything.
func FilterEntities(entities []domain.ExtractedEntity, kind string) []domain.ExtractedEntity {
	kind = strings.ToUpper(strings.TrimSpace(kind))
	out := make([]domain.ExtractedEntity, 0, len(entities))
	for _, e := range entities {
		if kind == "" || kind == "ALL" || string(e.Type) == kind {
			out = append(out, e)
		}
	}
	return out
}

func inConfidenceBand(confidence int, band string) bool {
	switch band {
	case "high":
		return confidence >= 80
	case "medium":
		return confidence >= 50 && confidence < 80
	case "low":
		return confidence < 50
	default:
		return true
	}
}

func caseMatches(c domain.SimilarCase, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), search) || strings.Contains(strings.ToLower(c.Summary), search) {
		return true
	}
	for _, term := range c.KeyTerms {
		if strings.Contains(strings.ToLower(term), search) {
			return true
		}
	}
	return false
}
