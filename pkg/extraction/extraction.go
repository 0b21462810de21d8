// Package extraction is the text-extraction collaborator boundary: given
// a source file, an Extractor returns ordered per-page text. Extraction
// backends are interchangeable; the pipeline only ever sees PageText.
package extraction

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/skosovsky/doccheck/pkg/logger"
)

// PageText is one page of extracted text. Err marks a page whose
// extraction failed; the page still appears in the sequence so the
// pipeline can classify it as unknown instead of losing it.
type PageText struct {
	PageNumber int
	Text       string
	Err        error
}

// Extractor turns a source file into ordered page text.
type Extractor interface {
	CanProcess(mimeType string) bool
	ExtractPages(ctx context.Context, reader io.Reader) ([]PageText, error)
	Close() error
}

var extToMIME = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".tiff": "image/tiff",
}

// Factory resolves an extractor by file extension.
type Factory struct {
	extractors map[string]Extractor
	logger     logger.Logger
}

func NewFactory(log logger.Logger, extractors map[string]Extractor) *Factory {
	return &Factory{extractors: extractors, logger: log}
}

// ForFile returns the extractor registered for the file's MIME type.
func (f *Factory) ForFile(ext string) (Extractor, error) {
	mimeType, ok := extToMIME[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
	e, ok := f.extractors[mimeType]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for %s", mimeType)
	}
	return e, nil
}

// Close releases all registered extractors.
func (f *Factory) Close() error {
	var firstErr error
	for _, e := range f.extractors {
		if err := e.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
