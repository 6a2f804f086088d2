package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the document format declared by the upload's file extension.
// No content sniffing is performed.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	// ErrUnsupportedFormat is returned for any extension other than .pdf
	// or .docx, before any decoding is attempted.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptDocument is returned when the bytes cannot be opened as a
	// valid document of the declared format.
	ErrCorruptDocument = errors.New("corrupt document")
)

// ParseFormat derives the declared format from the uploaded filename.
func ParseFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Text converts a document payload of the declared format into plain text.
// Pure transform: no temporary files, no retained state.
func Text(data []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return pdfText(data)
	case FormatDOCX:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
