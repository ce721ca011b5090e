package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/ports"
)

const fallbackFilename = "document.bin"

// IngestDocumentUseCase stores an upload, records it as uploaded and queues it
// for the worker.
type IngestDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
	now     func() time.Time
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Upload validates settings before anything is written, so a rejected request
// leaves no stored file behind.
func (uc *IngestDocumentUseCase) Upload(ctx context.Context, req domain.UploadRequest) (*domain.Document, error) {
	doc, err := uc.newDocument(req)
	if err != nil {
		return nil, err
	}

	if err := uc.storage.Save(ctx, doc.StoragePath, req.Body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}
	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}
	return doc, nil
}

func (uc *IngestDocumentUseCase) newDocument(req domain.UploadRequest) (*domain.Document, error) {
	if strings.TrimSpace(req.Filename) == "" || req.Body == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", errors.New("file is required"))
	}
	settings, err := req.Settings.Validate()
	if err != nil {
		return nil, err
	}
	override, err := domain.ParseDomainOverride(req.DomainOverride)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := uc.now()
	return &domain.Document{
		ID:             id,
		Filename:       req.Filename,
		MimeType:       req.MimeType,
		StoragePath:    id + "_" + sanitizeFilename(req.Filename),
		Settings:       settings,
		DomainOverride: string(override),
		Status:         domain.StatusUploaded,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// sanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with an underscore.
func sanitizeFilename(name string) string {
	base := strings.Map(func(r rune) rune {
		if r < 0x80 && (r == '.' || r == '-' || r == '_' || isASCIIAlnum(byte(r))) {
			return r
		}
		return '_'
	}, filepath.Base(name))
	if base == "" || base == "." || base == ".." {
		return fallbackFilename
	}
	return base
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
