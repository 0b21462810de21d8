// Package image extracts text from scanned sheets, either locally through
// tesseract or through AWS Textract.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/skosovsky/doccheck/pkg/extraction"
	"github.com/skosovsky/doccheck/pkg/logger"
)

// OCRConfig tunes the tesseract backend.
type OCRConfig struct {
	Languages     []string
	PageSegMode   gosseract.PageSegMode
	MinConfidence float64
}

// OCRExtractor runs local tesseract OCR over a preprocessed scan. One
// image file is one page.
type OCRExtractor struct {
	client        *gosseract.Client
	preprocessors []Preprocessor
	logger        logger.Logger
	config        *OCRConfig
}

func NewOCRExtractor(log logger.Logger, cfg *OCRConfig) (*OCRExtractor, error) {
	if cfg == nil {
		cfg = &OCRConfig{
			Languages:   []string{"rus", "eng"},
			PageSegMode: gosseract.PSM_AUTO,
		}
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(cfg.Languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR languages: %w", err)
	}
	if err := client.SetPageSegMode(cfg.PageSegMode); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}

	return &OCRExtractor{
		client:        client,
		preprocessors: DefaultPreprocessors(),
		logger:        log,
		config:        cfg,
	}, nil
}

func (e *OCRExtractor) CanProcess(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg", "image/png", "image/tiff":
		return true
	}
	return false
}

func (e *OCRExtractor) ExtractPages(ctx context.Context, reader io.Reader) ([]extraction.PageText, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	for _, p := range e.preprocessors {
		if img, err = p.Process(img); err != nil {
			return nil, fmt.Errorf("preprocess image: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("encode preprocessed image: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("load image into OCR: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		// Degrade to an errored page so the pipeline still runs.
		e.logger.Warn("OCR failed on scanned page", logger.Error(err))
		return []extraction.PageText{{PageNumber: 1, Err: err}}, nil
	}

	return []extraction.PageText{{PageNumber: 1, Text: text}}, nil
}

func (e *OCRExtractor) Close() error {
	return e.client.Close()
}
