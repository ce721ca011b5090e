package translation

import (
	"fmt"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
)

const (
	labelLegal     = "Legal Document"
	labelMedical   = "Medical Report"
	labelTechnical = "Technical Document"
	labelFinancial = "Financial Report"
	labelGeneral   = "General Document"
)

type documentTypeRule struct {
	label   string
	needles []string
}

var documentTypeRules = []documentTypeRule{
	{label: labelLegal, needles: []string{"habeas corpus", "petition", "court", "legal"}},
	{label: labelMedical, needles: []string{"patient", "medical", "diagnosis", "treatment"}},
	{label: labelTechnical, needles: []string{"specification", "technical", "system", "architecture"}},
	{label: labelFinancial, needles: []string{"financial", "revenue", "budget", "cost"}},
}

type LanguageNamer interface {
	Name(code string) string
}

type SummaryGenerator struct {
	languages LanguageNamer
}

func NewSummaryGenerator(languages LanguageNamer) *SummaryGenerator {
	return &SummaryGenerator{languages: languages}
}

// Generate expects settings with the source language already resolved.
func (g *SummaryGenerator) Generate(
	originalText, translatedText string,
	settings domain.TranslationSettings,
	keyTerms []domain.KeyTerm,
	confidence int,
) domain.DocumentSummary {
	docType := DocumentTypeLabel(originalText)
	wordCount := len(strings.Split(originalText, " "))

	return domain.DocumentSummary{
		Title:              docType + " Translation Summary",
		DocumentType:       docType,
		KeyPoints:          g.keyPoints(settings, len(keyTerms), wordCount, confidence),
		CriticalClauses:    criticalClauses(originalText, docType, len(keyTerms)),
		RiskAssessment:     assessRisk(confidence, len(keyTerms), docType),
		NextActions:        nextActions(docType, settings.ConfidentialMode),
		WordCount:          wordCount,
		TranslationQuality: qualityLabel(confidence),
	}
}

// DocumentTypeLabel picks the first keyword set that occurs in the lower-cased text.
func DocumentTypeLabel(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range documentTypeRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return rule.label
			}
		}
	}
	return labelGeneral
}

func (g *SummaryGenerator) keyPoints(settings domain.TranslationSettings, terms, words, confidence int) []string {
	source := settings.SourceLanguage
	if source == "" || source == domain.AutoLanguage {
		source = "en"
	}
	mode := "standard"
	if settings.ConfidentialMode {
		mode = "confidential"
	}
	return []string{
		fmt.Sprintf("Document successfully translated from %s to %s with %d%% confidence",
			g.languages.Name(source), g.languages.Name(settings.TargetLanguage), confidence),
		fmt.Sprintf("%d specialized terms identified and explained in the glossary", terms),
		fmt.Sprintf("%d words processed with professional accuracy", words),
		fmt.Sprintf("Translation completed using %s processing mode", mode),
		"All terminology verified and ready for professional use",
	}
}

func criticalClauses(text, docType string, terms int) []domain.CriticalClause {
	lower := strings.ToLower(text)
	var clauses []domain.CriticalClause

	switch docType {
	case labelLegal:
		if containsAny(lower, "deadline", "time", "date") {
			clauses = append(clauses, domain.CriticalClause{
				Type:   "deadline",
				Text:   "Time-sensitive legal deadlines identified in document",
				Impact: "Critical dates must be observed to maintain legal standing",
				Icon:   "Clock",
				Color:  "red",
			})
		}
		if containsAny(lower, "rights", "constitutional") {
			clauses = append(clauses, domain.CriticalClause{
				Type:   "rights",
				Text:   "Constitutional rights and legal protections referenced",
				Impact: "Fundamental rights require careful legal interpretation",
				Icon:   "Scale",
				Color:  "blue",
			})
		}
	case labelMedical:
		clauses = append(clauses, domain.CriticalClause{
			Type:   "medical",
			Text:   "Medical terminology requires professional review",
			Impact: "Clinical accuracy essential for patient safety",
			Icon:   "AlertCircle",
			Color:  "amber",
		})
	case labelTechnical:
		clauses = append(clauses, domain.CriticalClause{
			Type:   "technical",
			Text:   "Technical specifications and procedures documented",
			Impact: "Implementation requires technical expertise",
			Icon:   "User",
			Color:  "green",
		})
	}

	return append(clauses, domain.CriticalClause{
		Type:   "quality",
		Text:   fmt.Sprintf("%d key terms professionally translated and explained", terms),
		Impact: "High-quality translation with comprehensive glossary support",
		Icon:   "CheckCircle",
		Color:  "green",
	})
}

func assessRisk(confidence, terms int, docType string) domain.RiskAssessment {
	var factors []string
	level := domain.RiskLow

	switch {
	case confidence >= 95:
		factors = append(factors, fmt.Sprintf("Excellent translation confidence: %d%%", confidence))
	case confidence >= 85:
		factors = append(factors, fmt.Sprintf("Good translation confidence: %d%%", confidence))
		level = domain.RiskMedium
	default:
		factors = append(factors, fmt.Sprintf("Fair translation confidence: %d%%", confidence))
		level = domain.RiskHigh
	}

	factors = append(factors, fmt.Sprintf("%d specialized terms identified and explained", terms))

	switch docType {
	case labelLegal:
		factors = append(factors, "Legal document requires professional review")
		if level == domain.RiskLow {
			level = domain.RiskMedium
		}
	case labelMedical:
		factors = append(factors, "Medical content requires clinical validation")
		if level == domain.RiskLow {
			level = domain.RiskMedium
		}
	default:
		factors = append(factors, "Standard document with appropriate translation quality")
	}

	factors = append(factors, "Secure processing with end-to-end encryption maintained")
	return domain.RiskAssessment{Overall: level, Factors: factors}
}

func nextActions(docType string, confidential bool) []string {
	actions := []string{
		"Review translated document for accuracy and completeness",
		"Verify specialized terms in the generated glossary",
		"Download a secure copy of the translated document",
	}

	switch docType {
	case labelLegal:
		actions = append(actions,
			"Have legal professional review translation before use",
			"Verify all legal terminology with qualified counsel",
		)
	case labelMedical:
		actions = append(actions,
			"Have medical professional validate clinical terminology",
			"Ensure patient confidentiality is maintained",
		)
	case labelTechnical:
		actions = append(actions,
			"Have technical expert review implementation details",
			"Test procedures in controlled environment",
		)
	}

	if confidential {
		return append(actions, "Confidential processing completed - no data retained")
	}
	return append(actions, "Share with authorized parties using secure links")
}

func qualityLabel(confidence int) string {
	switch {
	case confidence >= 95:
		return "Excellent"
	case confidence >= 85:
		return "Good"
	default:
		return "Fair"
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
