package ports

import (
	"context"

	"github.com/kirillkom/doclens/internal/core/domain"
)

// ProgressFunc receives completion percentages in non-decreasing order; the last call is 100.
type ProgressFunc func(percent int)

// DocumentTranslator is the inbound contract for the translation pipeline.
// It never fails: remote problems degrade to dictionary output.
type DocumentTranslator interface {
	Translate(ctx context.Context, text string, settings domain.TranslationSettings, onProgress ProgressFunc) domain.TranslationResult
}

// DocumentAnalyzer is the inbound contract for case intelligence.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string, override domain.Domain) (domain.CaseIntelligenceResult, error)
}

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document state and stored results.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetAnalysis(ctx context.Context, id string) (*domain.DocumentAnalysis, error)
}

// DocumentProcessor is the inbound contract for asynchronous document processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}
