package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/intelligence"
	"github.com/kirillkom/doclens/internal/core/ports"
)

type AnalyzeDocumentUseCase struct {
	classifier *intelligence.Classifier
	entities   *intelligence.EntityExtractor
	cases      *intelligence.CaseMatcher
	observer   ports.AnalysisObserver
}

func NewAnalyzeDocumentUseCase(
	classifier *intelligence.Classifier,
	entities *intelligence.EntityExtractor,
	cases *intelligence.CaseMatcher,
	observer ports.AnalysisObserver,
) *AnalyzeDocumentUseCase {
	if observer == nil {
		observer = noopAnalysisObserver{}
	}
	return &AnalyzeDocumentUseCase{
		classifier: classifier,
		entities:   entities,
		cases:      cases,
		observer:   observer,
	}
}

// Analyze classifies text (unless override names a domain), extracts entities,
// ranks reference cases and phrases insights.
func (uc *AnalyzeDocumentUseCase) Analyze(ctx context.Context, text string, override domain.Domain) (domain.CaseIntelligenceResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.CaseIntelligenceResult{}, domain.WrapError(domain.ErrInvalidInput, "analyze document", errors.New("text is required"))
	}
	override, err := domain.ParseDomainOverride(string(override))
	if err != nil {
		return domain.CaseIntelligenceResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.CaseIntelligenceResult{}, err
	}

	start := time.Now()
	var classification domain.DomainResult
	if override != "" {
		classification = uc.classifier.Override(override)
	} else {
		classification = uc.classifier.Classify(text)
	}

	entities := uc.entities.Extract(text)
	if entities == nil {
		entities = []domain.ExtractedEntity{}
	}
	cases := uc.cases.FindSimilar(text, classification.Domain)
	insights := intelligence.Insights(classification.Domain, entities, cases)
	elapsed := time.Since(start)

	uc.observer.AnalysisCompleted(ctx, classification.Domain, len(cases), elapsed)

	return domain.CaseIntelligenceResult{
		DetectedDomain:    classification.Domain,
		DomainConfidence:  classification.Confidence,
		DomainReasoning:   classification.Reasoning,
		ExtractedEntities: entities,
		SimilarCases:      cases,
		Insights:          insights,
		ProcessingTime:    elapsed.Milliseconds(),
		Statistics: domain.AnalysisStatistics{
			TotalMatches:      len(cases),
			AverageConfidence: intelligence.AverageConfidence(cases),
		},
	}, nil
}

type noopAnalysisObserver struct{}

func (noopAnalysisObserver) AnalysisCompleted(context.Context, domain.Domain, int, time.Duration) {}
