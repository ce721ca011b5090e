package translation

import (
	"fmt"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/simulated"
	"github.com/kirillkom/doclens/internal/knowledge"
)

const (
	noExplanation      = "Explanation not available for this language"
	defaultContext     = "General terminology"
	fallbackTerm       = "document"
	fallbackConfidence = 90
)

type categoryRule struct {
	category string
	needles  []string
}

var categoryRules = []categoryRule{
	{category: "legal", needles: []string{"legal", "court", "law", "petition", "constitutional", "rights"}},
	{category: "medical", needles: []string{"medical", "patient", "diagnosis", "treatment", "clinical"}},
	{category: "technical", needles: []string{"technical", "system", "specification", "architecture", "implementation"}},
	{category: "financial", needles: []string{"financial", "budget", "cost", "revenue", "expense"}},
}

// KeyTermExtractor builds the glossary for a translated document.
type KeyTermExtractor struct {
	dict     *Dictionary
	glossary knowledge.Glossary
	scorer   simulated.Scorer
}

func NewKeyTermExtractor(dict *Dictionary, glossary knowledge.Glossary, scorer simulated.Scorer) *KeyTermExtractor {
	return &KeyTermExtractor{dict: dict, glossary: glossary, scorer: scorer}
}

// Extract never returns an empty glossary.
func (e *KeyTermExtractor) Extract(text, source, target string) []domain.KeyTerm {
	terms := e.dict.Occurrences(text, source, target)
	out := make([]domain.KeyTerm, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		lower := strings.ToLower(term)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}

		translated, _ := e.dict.Term(term, source, target)
		out = append(out, e.entry(term, translated, target, e.scorer.Between(90, 99)))
	}
	if len(out) > 0 {
		return out
	}

	if generic := e.genericTerms(text, source, target); len(generic) > 0 {
		return generic
	}
	return []domain.KeyTerm{e.documentTerm(target)}
}

func (e *KeyTermExtractor) genericTerms(text, source, target string) []domain.KeyTerm {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}

	var out []domain.KeyTerm
	for _, term := range e.glossary.Fallback.Terms {
		if _, ok := words[term]; !ok {
			continue
		}
		translated, ok := e.dict.Word(term, source, target)
		if !ok {
			continue
		}
		out = append(out, e.entry(term, translated, target, e.scorer.Between(85, 94)))
	}
	return out
}

func (e *KeyTermExtractor) documentTerm(target string) domain.KeyTerm {
	translated, ok := e.glossary.Fallback.Document[target]
	if !ok {
		translated = fallbackTerm
	}
	examples := append([]string(nil), e.glossary.Fallback.Examples...)
	return domain.KeyTerm{
		Term:        fallbackTerm,
		Translation: translated,
		Explanation: e.explanation(fallbackTerm, target),
		Context:     defaultContext,
		Examples:    examples,
		Confidence:  fallbackConfidence,
		Category:    "general",
	}
}

func (e *KeyTermExtractor) entry(term, translated, target string, confidence int) domain.KeyTerm {
	return domain.KeyTerm{
		Term:        term,
		Translation: translated,
		Explanation: e.explanation(term, target),
		Context:     e.context(term),
		Examples:    e.examples(term),
		Confidence:  confidence,
		Category:    Category(term),
	}
}

func (e *KeyTermExtractor) explanation(term, target string) string {
	byLang, ok := e.glossary.Explanations[strings.ToLower(term)]
	if !ok {
		return noExplanation
	}
	if v := byLang[target]; v != "" {
		return v
	}
	if v := byLang["en"]; v != "" {
		return v
	}
	return noExplanation
}

func (e *KeyTermExtractor) context(term string) string {
	if v, ok := e.glossary.Contexts[strings.ToLower(term)]; ok {
		return v
	}
	return defaultContext
}

func (e *KeyTermExtractor) examples(term string) []string {
	if v, ok := e.glossary.Examples[strings.ToLower(term)]; ok && len(v) > 0 {
		return append([]string(nil), v...)
	}
	return []string{
		fmt.Sprintf("Example usage of %q in context.", term),
		fmt.Sprintf("Professional application of %q in documentation.", term),
	}
}

// Category classifies a term by substring rules over the term itself.
func Category(term string) string {
	lower := strings.ToLower(term)
	for _, rule := range categoryRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return rule.category
			}
		}
	}
	return "general"
}
