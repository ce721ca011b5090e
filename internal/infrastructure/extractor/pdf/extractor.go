// Package pdf pulls the plain-text layer out of PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/doclens/internal/core/domain"
)

// Decode returns the text of every page. Scanned PDFs without a text layer
// decode to an empty string.
func Decode(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapError(domain.ErrUnsupportedFormat, "decode pdf", fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "decode pdf", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "decode pdf", err)
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
