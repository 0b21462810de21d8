package pipeline

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
	"github.com/skosovsky/doccheck/pkg/logger"
)

func newPipeline(cfg Config) (*Pipeline, *logger.TestLogger) {
	log := logger.NewTestLogger()
	return New(patterns.Default(), log, cfg), log
}

func pageInputs(texts ...string) []PageInput {
	input := make([]PageInput, len(texts))
	for i, text := range texts {
		input[i] = PageInput{PageNumber: i + 1, Text: text}
	}
	return input
}

// A five-page working set with one unstamped drawing sheet and no
// normative citations.
func failingDocument() []PageInput {
	return pageInputs(
		"Титульный лист\nШифр: 2024-15-АР\nСтадия Р\nОбъект: Жилой дом",
		"Содержание тома",
		"Состав проекта",
		"ОБЩИЕ ДАННЫЕ\nВедомость рабочих чертежей основного комплекта",
		"План этажа на отм. 0.000. Разрез 1-1",
	)
}

func ruleIDs(findings []models.Finding) []string {
	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.RuleID
	}
	return ids
}

func TestAnalyzeFailingDocument(t *testing.T) {
	p, log := newPipeline(Config{})

	report, err := p.Analyze(context.Background(), "doc-fail", failingDocument())
	require.NoError(t, err)

	assert.Equal(t, "doc-fail", report.DocumentID)
	assert.Equal(t, 5, report.TotalPages)

	// First-page metadata.
	assert.Equal(t, "2024-15-АР", report.Project.ProjectCode)
	assert.Equal(t, "АР", report.Project.Mark)
	assert.Equal(t, patterns.StageWorking, report.Project.Stage)

	// Sections: front matter, general data, one drawing sheet.
	require.Len(t, report.Sections, 3)
	assert.Equal(t, models.SectionTitle, report.Sections[0].Type)
	assert.Equal(t, 3, report.Sections[0].EndPage)
	assert.Equal(t, models.SectionGeneralData, report.Sections[1].Type)
	assert.Equal(t, models.SectionDrawing, report.Sections[2].Type)

	// Three uncited АР norms plus the unstamped drawing sheet.
	ids := ruleIDs(report.Findings)
	assert.Contains(t, ids, "missing_stamp")
	assert.Contains(t, ids, "norm_ref:gost_21_101")
	assert.Contains(t, ids, "norm_ref:gost_21_501")
	assert.Contains(t, ids, "norm_ref:sp_118")
	require.Len(t, report.Findings, 4)

	assert.Equal(t, 1, report.CriticalCount)
	assert.Equal(t, 3, report.WarningCount)
	assert.Equal(t, 50.0, report.Score)
	assert.Equal(t, models.StatusFail, report.Status)

	entries := log.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Analysis completed", entries[len(entries)-1].Message)
}

func TestAnalyzeCleanDocument(t *testing.T) {
	p, _ := newPipeline(Config{})

	input := pageInputs(
		"Титульный лист\nШифр: 2024-15-АР\nСтадия Р\nОбъект: Жилой дом",
		"Содержание тома",
		"Состав проекта",
		"ОБЩИЕ ДАННЫЕ\nВедомость рабочих чертежей основного комплекта\n"+
			"Ссылочные документы: ГОСТ Р 21.101, ГОСТ 21.501, СП 118.13330",
		"План этажа. Масштаб 1:100\nЛист 1",
	)

	report, err := p.Analyze(context.Background(), "doc-pass", input)
	require.NoError(t, err)

	assert.Empty(t, report.Findings)
	assert.Equal(t, 100.0, report.Score)
	assert.Equal(t, models.StatusPass, report.Status)
}

func TestAnalyzeRejectsEmptyBatch(t *testing.T) {
	p, _ := newPipeline(Config{})

	_, err := p.Analyze(context.Background(), "doc-empty", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollaborator)
}

func TestAnalyzeRejectsNonContiguousPages(t *testing.T) {
	p, _ := newPipeline(Config{})

	input := []PageInput{
		{PageNumber: 1, Text: "первая"},
		{PageNumber: 3, Text: "третья"},
	}
	_, err := p.Analyze(context.Background(), "doc-gap", input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollaborator)
}

func TestAnalyzeExtractFailedPageDegrades(t *testing.T) {
	p, _ := newPipeline(Config{})

	input := []PageInput{
		{PageNumber: 1, Text: "Пояснительная записка"},
		{PageNumber: 2, ExtractFailed: true},
	}
	report, err := p.Analyze(context.Background(), "doc-degraded", input)
	require.NoError(t, err)

	types := make([]models.SectionType, len(report.Sections))
	for i, s := range report.Sections {
		types[i] = s.Type
	}
	assert.Contains(t, types, models.SectionUnknown,
		"failed extraction surfaces as an unknown section, not an error")
	assert.NotEqual(t, models.StatusFail, report.Status,
		"degraded pages alone do not produce critical findings")
}

func TestAnalyzeGeneralDataFallbackPage(t *testing.T) {
	texts := []string{"лист 1", "лист 2", "лист 3", "лист 4", "лист 5"}

	p, _ := newPipeline(Config{GeneralDataFallbackPage: 4})
	report, err := p.Analyze(context.Background(), "doc-fallback", pageInputs(texts...))
	require.NoError(t, err)
	assert.NotContains(t, ruleIDs(report.Findings), "missing_general_data")

	// A fallback page past the end of the document means not found.
	report, err = p.Analyze(context.Background(), "doc-short", pageInputs(texts[:2]...))
	require.NoError(t, err)
	assert.Contains(t, ruleIDs(report.Findings), "missing_general_data")
}

func TestAnalyzeDeterministic(t *testing.T) {
	p, _ := newPipeline(Config{MaxConcurrency: 8})

	first, err := p.Analyze(context.Background(), "doc-det", failingDocument())
	require.NoError(t, err)
	second, err := p.Analyze(context.Background(), "doc-det", failingDocument())
	require.NoError(t, err)

	// Timings and the analysis timestamp are the only run-dependent fields.
	first.Timings = models.StageTimings{}
	first.AnalyzedAt = time.Time{}
	second.Timings = models.StageTimings{}
	second.AnalyzedAt = time.Time{}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "repeated runs over the same input produce identical reports")
}

func TestAnalyzeCancelledContext(t *testing.T) {
	p, _ := newPipeline(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Analyze(ctx, "doc-cancelled", failingDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollaborator)
}
