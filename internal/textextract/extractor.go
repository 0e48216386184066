// Package textextract abstracts the word-processor/PDF decoders that turn an
// uploaded byte stream into plain text. The byte-level container decoding
// itself lives behind this interface.
package textextract

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/apperror"
)

// Format identifies a supported container format, derived from the original
// filename's extension.
type Format string

const (
	FormatDocx Format = "docx"
	FormatDoc  Format = "doc"
	FormatPDF  Format = "pdf"
	FormatTxt  Format = "txt"
)

var (
	ErrUnsupportedFormat = apperror.New(
		apperror.CodeUnsupportedFormat,
		"The uploaded file format is not supported",
		http.StatusUnsupportedMediaType,
	)
	ErrExtractionFailed = apperror.New(
		apperror.CodeExtractionFailed,
		"Text could not be extracted from the uploaded file",
		http.StatusUnprocessableEntity,
	)
)

// FormatFromFilename rejects unsupported extensions before any extraction
// work begins.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "docx":
		return FormatDocx, nil
	case "doc":
		return FormatDoc, nil
	case "pdf":
		return FormatPDF, nil
	case "txt":
		return FormatTxt, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Extractor decodes one container format into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, r io.Reader, format Format) (string, error)
}

// PlainText passes .txt content through unchanged. The docx/pdf decoders are
// separate collaborators wired in at startup.
type PlainText struct{}

func (PlainText) ExtractText(ctx context.Context, r io.Reader, format Format) (string, error) {
	if format != FormatTxt {
		return "", ErrUnsupportedFormat
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeExtractionFailed,
			"Text could not be extracted from the uploaded file", http.StatusUnprocessableEntity)
	}
	return string(data), nil
}
