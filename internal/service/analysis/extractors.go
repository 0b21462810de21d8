package analysis

import (
	"context"

	cfg "github.com/skosovsky/doccheck/config"
	"github.com/skosovsky/doccheck/pkg/extraction"
	"github.com/skosovsky/doccheck/pkg/extraction/image"
	"github.com/skosovsky/doccheck/pkg/logger"
)

// registerImageExtractors wires the scanned-sheet backends. Textract wins
// over local tesseract when enabled; a failed tesseract init only logs,
// since PDF-only deployments need no OCR at all.
func registerImageExtractors(extractors map[string]extraction.Extractor, log logger.Logger) {
	imageTypes := []string{"image/jpeg", "image/png", "image/tiff"}

	tc := cfg.GetTextractConfig()
	if tc.Enabled {
		textract, err := image.NewTextractExtractor(context.Background(), &image.TextractConfig{
			Region:        tc.Region,
			AccessKey:     tc.AccessKey,
			SecretKey:     tc.SecretKey,
			MinConfidence: float32(tc.MinConfidence),
		}, log)
		if err != nil {
			log.Error("Failed to initialize Textract extractor", logger.Error(err))
		} else {
			for _, mt := range imageTypes {
				extractors[mt] = textract
			}
			return
		}
	}

	ocr, err := image.NewOCRExtractor(log, nil)
	if err != nil {
		log.Warn("Local OCR unavailable, image uploads disabled", logger.Error(err))
		return
	}
	for _, mt := range imageTypes {
		extractors[mt] = ocr
	}
}
