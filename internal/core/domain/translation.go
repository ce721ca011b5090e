package domain

import (
	"fmt"
	"strings"
)

const AutoLanguage = "auto"

type DocumentType string

const (
	DocumentTypeLegal     DocumentType = "legal"
	DocumentTypeMedical   DocumentType = "medical"
	DocumentTypeTechnical DocumentType = "technical"
	DocumentTypeFinancial DocumentType = "financial"
	DocumentTypeGeneral   DocumentType = "general"
)

func ParseDocumentType(raw string) (DocumentType, error) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DocumentTypeGeneral, nil
	case DocumentTypeLegal:
		return DocumentTypeLegal, nil
	case DocumentTypeMedical:
		return DocumentTypeMedical, nil
	case DocumentTypeTechnical:
		return DocumentTypeTechnical, nil
	case DocumentTypeFinancial:
		return DocumentTypeFinancial, nil
	case DocumentTypeGeneral:
		return DocumentTypeGeneral, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse document type", fmt.Errorf("unknown document type %q", raw))
	}
}

type TranslationSettings struct {
	SourceLanguage   string       `json:"sourceLanguage"`
	TargetLanguage   string       `json:"targetLanguage"`
	DocumentType     DocumentType `json:"documentType"`
	ConfidentialMode bool         `json:"confidentialMode"`
}

// Validate normalizes language codes and rejects settings without a target.
func (s TranslationSettings) Validate() (TranslationSettings, error) {
	out := s
	out.SourceLanguage = strings.ToLower(strings.TrimSpace(out.SourceLanguage))
	out.TargetLanguage = strings.ToLower(strings.TrimSpace(out.TargetLanguage))
	if out.SourceLanguage == "" {
		out.SourceLanguage = AutoLanguage
	}
	if out.TargetLanguage == "" || out.TargetLanguage == AutoLanguage {
		return s, WrapError(ErrInvalidInput, "validate translation settings", fmt.Errorf("target language is required"))
	}
	docType, err := ParseDocumentType(string(out.DocumentType))
	if err != nil {
		return s, err
	}
	out.DocumentType = docType
	return out, nil
}

type TranslationResult struct {
	OriginalText     string           `json:"originalText"`
	TranslatedText   string           `json:"translatedText"`
	Confidence       int              `json:"confidence"`
	DetectedLanguage string           `json:"detectedLanguage,omitempty"`
	KeyTerms         []KeyTerm        `json:"keyTerms"`
	Summary          *DocumentSummary `json:"summary,omitempty"`
}

type KeyTerm struct {
	Term        string   `json:"term"`
	Translation string   `json:"translation"`
	Explanation string   `json:"explanation"`
	Context     string   `json:"context"`
	Examples    []string `json:"examples"`
	Confidence  int      `json:"confidence"`
	Category    string   `json:"category"`
}

type DocumentSummary struct {
	Title              string           `json:"title"`
	DocumentType       string           `json:"documentType"`
	KeyPoints          []string         `json:"keyPoints"`
	CriticalClauses    []CriticalClause `json:"criticalClauses"`
	RiskAssessment     RiskAssessment   `json:"riskAssessment"`
	NextActions        []string         `json:"nextActions"`
	WordCount          int              `json:"wordCount"`
	TranslationQuality string           `json:"translationQuality"`
}

type CriticalClause struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Impact string `json:"impact"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type RiskAssessment struct {
	Overall RiskLevel `json:"overall"`
	Factors []string  `json:"factors"`
}
