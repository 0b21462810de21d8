// Package pipeline orchestrates the compliance analysis stages in fixed
// order: classification, document-level checks, segmentation, section
// checks, aggregation. Page-level work fans out over a bounded worker
// pool; the reducers run strictly after the page barrier.
package pipeline

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skosovsky/doccheck/internal/aggregate"
	"github.com/skosovsky/doccheck/internal/classifier"
	"github.com/skosovsky/doccheck/internal/extract"
	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
	"github.com/skosovsky/doccheck/internal/rules"
	"github.com/skosovsky/doccheck/internal/segment"
	"github.com/skosovsky/doccheck/pkg/logger"
)

// PageInput is one page of extracted text handed in by the text
// extraction collaborator. ExtractFailed marks pages whose extraction
// errored; they classify as unknown instead of aborting the run.
type PageInput struct {
	PageNumber    int
	Text          string
	ExtractFailed bool
}

type Config struct {
	// MaxConcurrency bounds the page worker pool.
	MaxConcurrency int
	// GeneralDataFallbackPage is used when no page carries a general-data
	// indicator; 0 disables the fallback.
	GeneralDataFallbackPage int
	// PassThreshold is the score under which a document without critical
	// findings still lands on warning.
	PassThreshold float64
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = 4
	}
	if c.PassThreshold <= 0 {
		c.PassThreshold = aggregate.DefaultPassThreshold
	}
	return c
}

type Pipeline struct {
	lib        *patterns.Library
	classifier *classifier.Classifier
	extractor  *extract.Extractor
	engine     *rules.Engine
	logger     logger.Logger
	cfg        Config
}

// New builds a pipeline over one pattern-library snapshot. The snapshot
// is read for the lifetime of the pipeline; concurrent library updates
// never affect in-flight runs.
func New(lib *patterns.Library, log logger.Logger, cfg Config) *Pipeline {
	return &Pipeline{
		lib:        lib,
		classifier: classifier.New(lib),
		extractor:  extract.New(lib),
		engine:     rules.NewEngine(lib),
		logger:     log,
		cfg:        cfg.withDefaults(),
	}
}

// Analyze runs the full pipeline over one document's ordered page texts.
// Classification and extraction failures degrade to low-confidence
// results; only internal-consistency defects and collaborator failures
// return an error.
func (p *Pipeline) Analyze(ctx context.Context, documentID string, input []PageInput) (*models.ComplianceReport, error) {
	started := time.Now()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	pages := make([]models.Page, len(input))
	for i, in := range input {
		pages[i] = models.Page{PageNumber: in.PageNumber, RawText: in.Text}
	}

	// The general-data detector is a single cheap pass over raw text and
	// must precede classification, which forces the title role on the
	// pages before the detected sheet.
	generalDataPage := segment.DetectGeneralData(pages, p.lib, p.cfg.GeneralDataFallbackPage)

	stamps := make([]*models.StampInfo, len(pages))
	var project models.ProjectInfo

	classifyStart := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrency)

	// Document-level first-page extraction has no dependency on later
	// stages and runs alongside page classification.
	g.Go(func() error {
		project = p.extractor.Project(pages[0].RawText)
		return nil
	})

	for i := range pages {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if input[i].ExtractFailed {
				pages[i].Role = models.RoleUnknown
				pages[i].Confidence = 0
				return nil
			}
			role, confidence := p.classifier.Classify(pages[i], generalDataPage)
			pages[i].Role = role
			pages[i].Confidence = confidence
			if role == models.RoleDrawing {
				stamp := p.extractor.Stamp(pages[i].RawText)
				stamps[i] = &stamp
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, collaboratorf("page analysis aborted: %v", err)
	}
	classifyTime := time.Since(classifyStart)

	// Stage barrier reached: pages and stamps are read-only from here on.

	docStart := time.Now()
	findings := p.engine.EvaluateDocument(&rules.Target{
		Text:            joinText(pages),
		Project:         &project,
		TotalPages:      len(pages),
		GeneralDataPage: generalDataPage,
		SheetNumbers:    sheetNumbers(stamps),
	})
	for i := range pages {
		findings = append(findings, p.engine.EvaluatePage(pages[i], stamps[i])...)
	}
	docTime := time.Since(docStart)

	segStart := time.Now()
	sections := segment.Split(pages)
	if err := checkPartition(sections, pages); err != nil {
		return nil, err
	}
	segTime := time.Since(segStart)

	sectionStart := time.Now()
	for _, s := range sections {
		findings = append(findings, p.engine.EvaluateSection(s, segment.SectionText(s, pages))...)
	}
	sectionTime := time.Since(sectionStart)

	aggStart := time.Now()
	report := aggregate.Build(documentID, len(pages), project, sections, findings, p.cfg.PassThreshold)
	report.Timings = models.StageTimings{
		Classification: classifyTime,
		DocumentChecks: docTime,
		Segmentation:   segTime,
		SectionChecks:  sectionTime,
		Aggregation:    time.Since(aggStart),
		Total:          time.Since(started),
	}

	if p.logger != nil {
		p.logger.Info("Analysis completed",
			logger.String("documentId", documentID),
			logger.Int("pages", report.TotalPages),
			logger.Int("findings", len(report.Findings)),
			logger.Float64("score", report.Score),
			logger.String("status", string(report.Status)),
			logger.Duration("took", report.Timings.Total),
		)
	}
	return report, nil
}

// validateInput rejects malformed page batches from the extraction
// collaborator: pages must be numbered 1..N in order.
func validateInput(input []PageInput) error {
	if len(input) == 0 {
		return collaboratorf("empty page batch")
	}
	for i, in := range input {
		if in.PageNumber != i+1 {
			return collaboratorf("page batch not contiguous: index %d carries page number %d", i, in.PageNumber)
		}
	}
	return nil
}

// checkPartition verifies that the sections are a sorted, gap-free,
// overlap-free cover of the page range. A violation is a programming
// defect and aborts the run.
func checkPartition(sections []models.Section, pages []models.Page) error {
	if len(sections) == 0 {
		return internalf("segmenter returned no sections for %d pages", len(pages))
	}
	if sections[0].StartPage != pages[0].PageNumber {
		return internalf("first section starts at %d, want %d", sections[0].StartPage, pages[0].PageNumber)
	}
	for i, s := range sections {
		if s.EndPage < s.StartPage {
			return internalf("section %d has endPage %d < startPage %d", i, s.EndPage, s.StartPage)
		}
		if i > 0 && s.StartPage != sections[i-1].EndPage+1 {
			return internalf("gap between sections %d and %d", i-1, i)
		}
	}
	if last := sections[len(sections)-1].EndPage; last != pages[len(pages)-1].PageNumber {
		return internalf("last section ends at %d, want %d", last, pages[len(pages)-1].PageNumber)
	}
	return nil
}

func joinText(pages []models.Page) string {
	var b strings.Builder
	for i := range pages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pages[i].RawText)
	}
	return b.String()
}

// sheetNumbers collects numeric stamp sheet numbers in page order.
func sheetNumbers(stamps []*models.StampInfo) []int {
	var nums []int
	for _, s := range stamps {
		if s == nil || s.SheetNumber == "" {
			continue
		}
		if n, err := strconv.Atoi(s.SheetNumber); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}
