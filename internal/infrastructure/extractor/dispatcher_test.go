package extractor

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/doclens/internal/core/domain"
)

type storageFake struct {
	files map[string]string
}

func (s *storageFake) Save(context.Context, string, io.Reader) error { return nil }

func (s *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	content, ok := s.files[key]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestDispatcherRoutesByMIMEAndExtension(t *testing.T) {
	storage := &storageFake{files: map[string]string{
		"a": "Plain body",
		"b": "# Notes",
	}}
	d := NewDispatcher(storage)

	text, err := d.Extract(context.Background(), &domain.Document{Filename: "a.bin", MimeType: "text/plain; charset=utf-8", StoragePath: "a"})
	if err != nil || text != "Plain body" {
		t.Fatalf("Extract(mime) = %q, %v", text, err)
	}

	text, err = d.Extract(context.Background(), &domain.Document{Filename: "notes.MD", MimeType: "application/octet-stream", StoragePath: "b"})
	if err != nil || text != "# Notes" {
		t.Fatalf("Extract(ext) = %q, %v", text, err)
	}
}

func TestDispatcherRejectsUnknownFormats(t *testing.T) {
	d := NewDispatcher(&storageFake{})
	_, err := d.Extract(context.Background(), &domain.Document{Filename: "slides.pptx", MimeType: "application/vnd.ms-powerpoint"})
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if d.Supports("slides.pptx", "") {
		t.Fatalf("expected pptx to be unsupported")
	}
	if !d.Supports("brief.pdf", "") {
		t.Fatalf("expected pdf to be supported")
	}
}

func TestDispatcherEnforcesSizeLimit(t *testing.T) {
	d := NewDispatcher(&storageFake{files: map[string]string{"big": strings.Repeat("a", 16)}})
	d.maxBytes = 8
	_, err := d.Extract(context.Background(), &domain.Document{Filename: "big.txt", StoragePath: "big"})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
