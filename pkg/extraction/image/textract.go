package image

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/skosovsky/doccheck/pkg/extraction"
	"github.com/skosovsky/doccheck/pkg/logger"
)

// TextractConfig configures the AWS Textract backend.
type TextractConfig struct {
	Region        string
	AccessKey     string
	SecretKey     string
	MinConfidence float32
}

// TextractExtractor extracts text through AWS Textract. Useful for scans
// where local tesseract quality is not good enough.
type TextractExtractor struct {
	client *textract.Client
	logger logger.Logger
	config *TextractConfig
}

func NewTextractExtractor(ctx context.Context, cfg *TextractConfig, log logger.Logger) (*TextractExtractor, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &TextractExtractor{
		client: textract.NewFromConfig(awsCfg),
		logger: log,
		config: cfg,
	}, nil
}

func (e *TextractExtractor) CanProcess(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg", "image/png", "image/tiff", "application/pdf":
		return true
	}
	return false
}

func (e *TextractExtractor) ExtractPages(ctx context.Context, reader io.Reader) ([]extraction.PageText, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	out, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: data},
	})
	if err != nil {
		return nil, fmt.Errorf("textract detect document text: %w", err)
	}

	// Collect LINE blocks into per-page text, preserving reading order.
	byPage := map[int][]string{}
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		if block.Confidence != nil && *block.Confidence < e.config.MinConfidence {
			continue
		}
		page := 1
		if block.Page != nil {
			page = int(*block.Page)
		}
		byPage[page] = append(byPage[page], *block.Text)
	}

	pageNums := make([]int, 0, len(byPage))
	for n := range byPage {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	pages := make([]extraction.PageText, 0, len(pageNums))
	for _, n := range pageNums {
		pages = append(pages, extraction.PageText{
			PageNumber: n,
			Text:       strings.Join(byPage[n], "\n"),
		})
	}

	e.logger.Debug("Textract extraction completed",
		logger.Int("pages", len(pages)),
		logger.Int("blocks", len(out.Blocks)),
	)
	return pages, nil
}

func (e *TextractExtractor) Close() error {
	return nil
}
