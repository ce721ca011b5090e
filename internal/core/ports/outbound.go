package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/doclens/internal/core/domain"
)

// DocumentRepository persists document state and pipeline results.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, analysis domain.DocumentAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*domain.DocumentAnalysis, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Chunker splits text into bounded, ordered pieces for remote calls.
type Chunker interface {
	Split(text string) []string
}

// RemoteTranslator calls an external translation provider for one chunk.
type RemoteTranslator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Pacer spaces consecutive remote calls.
type Pacer interface {
	Wait(ctx context.Context) error
}

// TranslationObserver records per-chunk outcomes of a translation run.
type TranslationObserver interface {
	ChunkTranslated(ctx context.Context, index int, remote bool, err error)
	TranslationCompleted(ctx context.Context, chunks, fallbacks int, elapsed time.Duration)
}

// AnalysisObserver records finished intelligence runs.
type AnalysisObserver interface {
	AnalysisCompleted(ctx context.Context, detected domain.Domain, cases int, elapsed time.Duration)
}
