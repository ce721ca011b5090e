// Package extractor routes stored documents to a decoder by MIME type or extension.
package extractor

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
	"github.com/kirillkom/doclens/internal/core/ports"
	"github.com/kirillkom/doclens/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/doclens/internal/infrastructure/extractor/plaintext"
)

// DefaultMaxBytes caps how much of a stored file is read.
const DefaultMaxBytes = 32 << 20

type Decoder func(raw []byte) (string, error)

type Dispatcher struct {
	storage   ports.ObjectStorage
	maxBytes  int64
	byMIME    map[string]Decoder
	extension map[string]Decoder
}

func NewDispatcher(storage ports.ObjectStorage) *Dispatcher {
	return &Dispatcher{
		storage:  storage,
		maxBytes: DefaultMaxBytes,
		byMIME: map[string]Decoder{
			"text/plain":       plaintext.Decode,
			"text/markdown":    plaintext.Decode,
			"text/csv":         plaintext.Decode,
			"application/json": plaintext.Decode,
			"application/pdf":  pdf.Decode,
		},
		extension: map[string]Decoder{
			".txt":  plaintext.Decode,
			".md":   plaintext.Decode,
			".csv":  plaintext.Decode,
			".json": plaintext.Decode,
			".pdf":  pdf.Decode,
		},
	}
}

// Supports reports whether a file with this name and MIME type has a decoder.
func (d *Dispatcher) Supports(filename, mimeType string) bool {
	return d.decoderFor(filename, mimeType) != nil
}

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	decode := d.decoderFor(doc.Filename, doc.MimeType)
	if decode == nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text", fmt.Errorf("%s (%s)", doc.Filename, doc.MimeType))
	}

	reader, err := d.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, d.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}
	if int64(len(raw)) > d.maxBytes {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", fmt.Errorf("document exceeds %d bytes", d.maxBytes))
	}
	return decode(raw)
}

// decoderFor prefers the MIME type; generic types fall through to the extension.
func (d *Dispatcher) decoderFor(filename, mimeType string) Decoder {
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		if decode, ok := d.byMIME[strings.ToLower(mediaType)]; ok {
			return decode
		}
	}
	return d.extension[strings.ToLower(filepath.Ext(filename))]
}
