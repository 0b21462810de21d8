package image

import (
	"image"

	"github.com/disintegration/imaging"
)

// Preprocessor transforms a scanned sheet before OCR.
type Preprocessor interface {
	Process(img image.Image) (image.Image, error)
}

// GrayscalePreprocessor strips color; stamps and notes are line art.
type GrayscalePreprocessor struct{}

func NewGrayscalePreprocessor() *GrayscalePreprocessor {
	return &GrayscalePreprocessor{}
}

func (p *GrayscalePreprocessor) Process(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}

// ContrastPreprocessor stretches contrast to separate faint print from
// scan background.
type ContrastPreprocessor struct {
	percentage float64
}

func NewContrastPreprocessor(percentage float64) *ContrastPreprocessor {
	return &ContrastPreprocessor{percentage: percentage}
}

func (p *ContrastPreprocessor) Process(img image.Image) (image.Image, error) {
	return imaging.AdjustContrast(img, p.percentage), nil
}

// SharpenPreprocessor sharpens thin drawing strokes ahead of OCR.
type SharpenPreprocessor struct {
	sigma float64
}

func NewSharpenPreprocessor(sigma float64) *SharpenPreprocessor {
	return &SharpenPreprocessor{sigma: sigma}
}

func (p *SharpenPreprocessor) Process(img image.Image) (image.Image, error) {
	return imaging.Sharpen(img, p.sigma), nil
}

// DefaultPreprocessors is the chain tuned for engineering-drawing scans.
func DefaultPreprocessors() []Preprocessor {
	return []Preprocessor{
		NewGrayscalePreprocessor(),
		NewContrastPreprocessor(15),
		NewSharpenPreprocessor(1.0),
	}
}
