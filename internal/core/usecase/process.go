package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/ports"
)

// ProcessDocumentUseCase runs one stored upload through extraction, translation
// and case intelligence, persisting both results before marking it ready.
type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	extractor  ports.TextExtractor
	translator ports.DocumentTranslator
	analyzer   ports.DocumentAnalyzer
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	translator ports.DocumentTranslator,
	analyzer ports.DocumentAnalyzer,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		extractor:  extractor,
		translator: translator,
		analyzer:   analyzer,
	}
}

// ProcessByID is safe to call again for a redelivered message: a document that
// is already ready is left untouched.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}
	if doc.Status == domain.StatusReady {
		return nil
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.run(ctx, doc); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *ProcessDocumentUseCase) GetAnalysis(ctx context.Context, id string) (*domain.DocumentAnalysis, error) {
	return uc.repo.GetAnalysis(ctx, id)
}

func (uc *ProcessDocumentUseCase) run(ctx context.Context, doc *domain.Document) error {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("empty extracted text"))
	}

	intelligence, err := uc.analyzer.Analyze(ctx, text, domain.Domain(doc.DomainOverride))
	if err != nil {
		return fmt.Errorf("analyze document: %w", err)
	}
	translation := uc.translator.Translate(ctx, text, doc.Settings, nil)

	analysis := domain.DocumentAnalysis{
		DocumentID:   doc.ID,
		Translation:  &translation,
		Intelligence: &intelligence,
	}
	if err := uc.repo.SaveAnalysis(ctx, analysis); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}
