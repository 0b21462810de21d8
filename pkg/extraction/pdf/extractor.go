// Package pdf extracts per-page plain text from PDF files.
package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/skosovsky/doccheck/pkg/extraction"
	"github.com/skosovsky/doccheck/pkg/logger"
)

type Extractor struct {
	logger     logger.Logger
	maxWorkers int
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{logger: log, maxWorkers: 4}
}

func (e *Extractor) CanProcess(mimeType string) bool {
	return mimeType == "application/pdf"
}

// ExtractPages reads every page's plain text. Pages render in parallel;
// results land in a fixed slot per page so output order is stable. A page
// whose text rendering fails is reported with its error in place rather
// than aborting the document.
func (e *Extractor) ExtractPages(ctx context.Context, file io.Reader) ([]extraction.PageText, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return nil, err
	}

	numPages := pdfReader.NumPage()
	pages := make([]extraction.PageText, numPages)

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, e.maxWorkers)

	for i := 1; i <= numPages; i++ {
		pageNum := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}

			out := extraction.PageText{PageNumber: pageNum}
			page := pdfReader.Page(pageNum)
			if page.V.IsNull() {
				pages[pageNum-1] = out
				return nil
			}
			text, err := page.GetPlainText(nil)
			if err != nil {
				out.Err = err
				e.logger.Warn("Failed to extract page text",
					logger.Int("page", pageNum),
					logger.Error(err),
				)
			} else {
				out.Text = text
			}
			pages[pageNum-1] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (e *Extractor) Close() error {
	return nil
}
