// Package export renders pipeline results as downloadable artifacts.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kirillkom/doclens/internal/core/domain"
)

const (
	GlossaryJSONFilename = "glossary-export.json"
	GlossaryXLSXFilename = "glossary-export.xlsx"
	JSONContentType      = "application/json"
	XLSXContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type glossaryEntry struct {
	Term        string   `json:"term"`
	Translation string   `json:"translation"`
	Explanation string   `json:"explanation"`
	Context     string   `json:"context"`
	Examples    []string `json:"examples"`
	Confidence  int      `json:"confidence"`
	Category    string   `json:"category"`
}

// GlossaryJSON writes an indented array; an empty glossary is "[]".
func GlossaryJSON(terms []domain.KeyTerm) ([]byte, error) {
	entries := make([]glossaryEntry, 0, len(terms))
	for _, term := range terms {
		examples := term.Examples
		if examples == nil {
			examples = []string{}
		}
		entries = append(entries, glossaryEntry{
			Term:        term.Term,
			Translation: term.Translation,
			Explanation: term.Explanation,
			Context:     term.Context,
			Examples:    examples,
			Confidence:  term.Confidence,
			Category:    term.Category,
		})
	}
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal glossary: %w", err)
	}
	return out, nil
}

type intelligenceAnalysis struct {
	Domain         domain.Domain `json:"domain"`
	Confidence     float64       `json:"confidence"`
	ProcessingTime int64         `json:"processingTime"`
}

type intelligenceExport struct {
	Analysis  intelligenceAnalysis     `json:"analysis"`
	Entities  []domain.ExtractedEntity `json:"entities"`
	Cases     []domain.SimilarCase     `json:"cases"`
	Insights  []string                 `json:"insights"`
	Timestamp string                   `json:"timestamp"`
}

// IntelligenceJSON exports result with cases replacing its similar cases, so a
// filtered view can be exported as shown.
func IntelligenceJSON(result domain.CaseIntelligenceResult, cases []domain.SimilarCase, now time.Time) ([]byte, error) {
	if cases == nil {
		cases = result.SimilarCases
	}
	payload := intelligenceExport{
		Analysis: intelligenceAnalysis{
			Domain:         result.DetectedDomain,
			Confidence:     result.DomainConfidence,
			ProcessingTime: result.ProcessingTime,
		},
		Entities:  nonNil(result.ExtractedEntities),
		Cases:     nonNil(cases),
		Insights:  nonNil(result.Insights),
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal intelligence export: %w", err)
	}
	return out, nil
}

// IntelligenceFilename follows case-intelligence-{unix millis}.json.
func IntelligenceFilename(now time.Time) string {
	return fmt.Sprintf("case-intelligence-%d.json", now.UnixMilli())
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
