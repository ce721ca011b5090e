package intelligence

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/kirillkom/doclens/internal/core/domain"
)

type MatcherConfig struct {
	Boost    float64
	MaxScore float64
	// MinScore is exclusive: a case must score strictly above it.
	MinScore float64
	Limit    int
}

func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{Boost: 2, MaxScore: 95, MinScore: 30, Limit: 10}
}

type indexedCase struct {
	c      domain.SimilarCase
	tokens map[string]struct{}
	count  int
}

// CaseMatcher ranks the reference corpus by bag-of-words overlap.
type CaseMatcher struct {
	cfg      MatcherConfig
	all      []indexedCase
	byDomain map[domain.Domain][]indexedCase
}

func NewCaseMatcher(corpus []domain.SimilarCase, cfg MatcherConfig) *CaseMatcher {
	m := &CaseMatcher{cfg: cfg, byDomain: make(map[domain.Domain][]indexedCase)}
	for _, c := range corpus {
		tokens := caseTokens(c)
		set := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			set[t] = struct{}{}
		}
		ic := indexedCase{c: copyCase(c), tokens: set, count: len(tokens)}
		m.all = append(m.all, ic)
		m.byDomain[c.Domain] = append(m.byDomain[c.Domain], ic)
	}
	return m
}

// FindSimilar scores the domain's subset (every case for general) and returns
// copies ordered by descending relevance.
func (m *CaseMatcher) FindSimilar(text string, d domain.Domain) []domain.SimilarCase {
	candidates := m.all
	if d != domain.DomainGeneral {
		candidates = m.byDomain[d]
	}
	query := tokenize(text)
	if len(query) == 0 || len(candidates) == 0 {
		return []domain.SimilarCase{}
	}

	out := make([]domain.SimilarCase, 0, len(candidates))
	for _, ic := range candidates {
		score := m.score(query, ic)
		if score <= m.cfg.MinScore {
			continue
		}
		c := copyCase(ic.c)
		c.RelevanceScore = score
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	if m.cfg.Limit > 0 && len(out) > m.cfg.Limit {
		out = out[:m.cfg.Limit]
	}
	return out
}

func (m *CaseMatcher) score(query []string, ic indexedCase) float64 {
	common := 0
	for _, t := range query {
		if utf8.RuneCountInString(t) <= 3 {
			continue
		}
		if _, ok := ic.tokens[t]; ok {
			common++
		}
	}
	denom := max(len(query), ic.count)
	if denom == 0 {
		return 0
	}
	ratio := float64(common) / float64(denom) * 100
	return math.Min(m.cfg.MaxScore, ratio*m.cfg.Boost)
}

func caseTokens(c domain.SimilarCase) []string {
	tokens := tokenize(c.Title)
	tokens = append(tokens, tokenize(c.Summary)...)
	for _, term := range c.KeyTerms {
		tokens = append(tokens, tokenize(term)...)
	}
	return tokens
}

func copyCase(c domain.SimilarCase) domain.SimilarCase {
	c.KeyTerms = append([]string(nil), c.KeyTerms...)
	c.Tags = append([]string(nil), c.Tags...)
	return c
}
