// Package extract provides text extraction from meeting document formats.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"
)

// ErrEmptyDocument is returned when a file yields no extractable text.
var ErrEmptyDocument = errors.New("document contains no text")

// Extractor extracts plain text from transcript and document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content.
// PDF text is extracted page by page; .docx, .odt, and .rtf go through the
// cat converter; everything else is treated as plain UTF-8 text.
func (e *Extractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var text string
	var err error
	switch ext {
	case ".pdf":
		var content []byte
		content, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		text, err = extractPDF(content)
	case ".docx", ".odt", ".rtf":
		text, err = cat.File(path)
	default:
		var content []byte
		content, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		text, err = extractPlain(content)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
