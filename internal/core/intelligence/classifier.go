package intelligence

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/kirillkom/doclens/internal/core/domain"
)

const (
	generalConfidence  = 60
	overrideConfidence = 95
	generalReasoning   = "Document contains general content without strong domain-specific indicators."
)

var classifiedDomains = []domain.Domain{domain.DomainLegal, domain.DomainMedical, domain.DomainTechnical}

type ClassifierConfig struct {
	ThresholdPercent float64
	BaseConfidence   float64
	Slope            float64
	MaxConfidence    float64
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ThresholdPercent: 2,
		BaseConfidence:   70,
		Slope:            5,
		MaxConfidence:    95,
	}
}

// Classifier scores keyword density against per-domain vocabularies.
type Classifier struct {
	cfg     ClassifierConfig
	phrases map[domain.Domain][][]string
}

func NewClassifier(vocabularies map[string][]string, cfg ClassifierConfig) *Classifier {
	c := &Classifier{cfg: cfg, phrases: make(map[domain.Domain][][]string, len(classifiedDomains))}
	for _, d := range classifiedDomains {
		for _, entry := range vocabularies[string(d)] {
			if tokens := tokenize(entry); len(tokens) > 0 {
				c.phrases[d] = append(c.phrases[d], tokens)
			}
		}
		// Longest first, so a phrase claims its tokens before its member words do.
		slices.SortStableFunc(c.phrases[d], func(a, b []string) int { return cmp.Compare(len(b), len(a)) })
	}
	return c
}

// Classify returns general unless one domain has the strictly highest keyword
// percentage and that percentage exceeds the threshold.
func (c *Classifier) Classify(text string) domain.DomainResult {
	tokens := tokenize(text)
	general := domain.DomainResult{Domain: domain.DomainGeneral, Confidence: generalConfidence, Reasoning: generalReasoning}
	if len(tokens) == 0 {
		return general
	}

	hits := make(map[domain.Domain]int, len(classifiedDomains))
	for _, d := range classifiedDomains {
		hits[d] = c.countHits(tokens, d)
	}

	total := float64(len(tokens))
	var (
		winner    domain.Domain
		best      float64
		contested bool
	)
	for _, d := range classifiedDomains {
		pct := float64(hits[d]) / total * 100
		switch {
		case pct > best:
			winner, best, contested = d, pct, false
		case pct == best:
			contested = true
		}
	}
	if winner == "" || contested || best <= c.cfg.ThresholdPercent {
		return general
	}

	reasoning := fmt.Sprintf("Document contains %d %s terms (%.1f%% of content), indicating %s domain focus.",
		hits[winner], winner, best, winner)
	return domain.DomainResult{
		Domain:     winner,
		Confidence: math.Min(c.cfg.MaxConfidence, c.cfg.BaseConfidence+best*c.cfg.Slope),
		Reasoning:  reasoning,
	}
}

func (c *Classifier) Override(d domain.Domain) domain.DomainResult {
	return domain.DomainResult{
		Domain:     d,
		Confidence: overrideConfidence,
		Reasoning:  fmt.Sprintf("Domain manually specified as %s.", d),
	}
}

// countHits counts at most one hit per token: a matched phrase consumes all of
// its tokens.
func (c *Classifier) countHits(tokens []string, d domain.Domain) int {
	hits := 0
	for i := 0; i < len(tokens); {
		step := 1
		for _, phrase := range c.phrases[d] {
			if matchesAt(tokens, i, phrase) {
				hits++
				step = len(phrase)
				break
			}
		}
		i += step
	}
	return hits
}

func matchesAt(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, p := range phrase {
		if tokens[i+j] != p {
			return false
		}
	}
	return true
}
