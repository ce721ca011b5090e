package domain

import (
	"fmt"
	"strings"
)

type Domain string

const (
	DomainLegal     Domain = "legal"
	DomainMedical   Domain = "medical"
	DomainTechnical Domain = "technical"
	DomainGeneral   Domain = "general"
)

// ParseDomainOverride returns "" for auto detection.
func ParseDomainOverride(raw string) (Domain, error) {
	switch Domain(strings.ToLower(strings.TrimSpace(raw))) {
	case "", AutoLanguage:
		return "", nil
	case DomainLegal:
		return DomainLegal, nil
	case DomainMedical:
		return DomainMedical, nil
	case DomainTechnical:
		return DomainTechnical, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse domain", fmt.Errorf("unknown domain %q", raw))
	}
}

type EntityType string

const (
	EntityPerson        EntityType = "PERSON"
	EntityOrg           EntityType = "ORG"
	EntityDate          EntityType = "DATE"
	EntityLegalTerm     EntityType = "LEGAL_TERM"
	EntityMedicalTerm   EntityType = "MEDICAL_TERM"
	EntityTechnicalTerm EntityType = "TECHNICAL_TERM"
	EntityLocation      EntityType = "LOCATION"
	EntityMoney         EntityType = "MONEY"
	EntityMisc          EntityType = "MISC"
)

// ExtractedEntity offsets are rune offsets; StartIndex < EndIndex.
type ExtractedEntity struct {
	Text       string     `json:"text"`
	Type       EntityType `json:"type"`
	Confidence int        `json:"confidence"`
	StartIndex int        `json:"startIndex"`
	EndIndex   int        `json:"endIndex"`
}

type SimilarCase struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Summary        string   `json:"summary" yaml:"summary"`
	Date           string   `json:"date" yaml:"date"`
	Domain         Domain   `json:"domain" yaml:"domain"`
	Confidence     int      `json:"confidence" yaml:"confidence"`
	RelevanceScore float64  `json:"relevanceScore" yaml:"-"`
	Source         string   `json:"source" yaml:"source"`
	CitationLink   string   `json:"citationLink,omitempty" yaml:"citationLink"`
	KeyTerms       []string `json:"keyTerms" yaml:"keyTerms"`
	Jurisdiction   string   `json:"jurisdiction,omitempty" yaml:"jurisdiction"`
	CaseType       string   `json:"caseType,omitempty" yaml:"caseType"`
	Tags           []string `json:"tags,omitempty" yaml:"tags"`
	Complexity     string   `json:"complexity,omitempty" yaml:"complexity"`
}

type DomainResult struct {
	Domain     Domain  `json:"domain"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type AnalysisStatistics struct {
	TotalMatches      int     `json:"totalMatches"`
	AverageConfidence float64 `json:"averageConfidence"`
}

type CaseIntelligenceResult struct {
	DetectedDomain    Domain             `json:"detectedDomain"`
	DomainConfidence  float64            `json:"domainConfidence"`
	DomainReasoning   string             `json:"domainReasoning"`
	ExtractedEntities []ExtractedEntity  `json:"extractedEntities"`
	SimilarCases      []SimilarCase      `json:"similarCases"`
	Insights          []string           `json:"insights"`
	ProcessingTime    int64              `json:"processingTime"`
	Statistics        AnalysisStatistics `json:"statistics"`
}
