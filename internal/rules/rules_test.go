package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

func newEngine() *Engine {
	return NewEngine(patterns.Default())
}

func findingIDs(findings []models.Finding) []string {
	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.RuleID
	}
	return ids
}

func TestEvaluatePageSkipsNonDrawings(t *testing.T) {
	e := newEngine()

	page := models.Page{PageNumber: 2, Role: models.RoleTitle}
	assert.Empty(t, e.EvaluatePage(page, nil))
}

func TestEvaluatePageMissingStamp(t *testing.T) {
	e := newEngine()

	page := models.Page{PageNumber: 5, Role: models.RoleDrawing, RawText: "План этажа"}
	findings := e.EvaluatePage(page, &models.StampInfo{HasStamp: false})
	require.Len(t, findings, 1)
	assert.Equal(t, "missing_stamp", findings[0].RuleID)
	assert.Equal(t, models.SeverityCritical, findings[0].Severity)
	assert.Equal(t, 5, findings[0].PageNumber)
}

func TestEvaluatePageStampFieldRulesGatedOnStamp(t *testing.T) {
	e := newEngine()
	page := models.Page{PageNumber: 7, Role: models.RoleDrawing}

	// Without a stamp the field rules do not pile on.
	findings := e.EvaluatePage(page, nil)
	assert.Equal(t, []string{"missing_stamp"}, findingIDs(findings))

	// With a stamp but no scale or sheet number both field rules fire.
	stamp := &models.StampInfo{HasStamp: true, ProjectCode: "2024-15-АР"}
	findings = e.EvaluatePage(page, stamp)
	assert.Equal(t, []string{"missing_scale", "missing_sheet_number"}, findingIDs(findings))

	// A complete stamp produces nothing.
	stamp.Scale = "1:100"
	stamp.SheetNumber = "3"
	assert.Empty(t, e.EvaluatePage(page, stamp))
}

func TestEvaluateSectionGeneralData(t *testing.T) {
	e := newEngine()
	section := models.Section{Type: models.SectionGeneralData, StartPage: 4, EndPage: 4}

	findings := e.EvaluateSection(section, "просто текст без ведомости")
	require.Len(t, findings, 1)
	assert.Equal(t, "general_data_sheet_register", findings[0].RuleID)
	assert.Equal(t, 4, findings[0].PageNumber)

	assert.Empty(t, e.EvaluateSection(section, "Ведомость рабочих чертежей основного комплекта"))
}

func TestEvaluateSectionSpecification(t *testing.T) {
	e := newEngine()
	section := models.Section{Type: models.SectionSpec, StartPage: 8, EndPage: 9}

	findings := e.EvaluateSection(section, "перечень без шапки таблицы")
	require.Len(t, findings, 1)
	assert.Equal(t, "specification_table_header", findings[0].RuleID)

	assert.Empty(t, e.EvaluateSection(section, "Поз. Обозначение Наименование Кол."))
}

func TestEvaluateSectionRulesDoNotCross(t *testing.T) {
	e := newEngine()

	// A drawing section triggers neither section rule.
	section := models.Section{Type: models.SectionDrawing, StartPage: 5, EndPage: 6}
	assert.Empty(t, e.EvaluateSection(section, "произвольный текст"))
}

func TestEvaluateDocumentStructureRules(t *testing.T) {
	e := newEngine()

	target := &Target{
		Text:    "текст без шифра и стадии",
		Project: &models.ProjectInfo{},
	}
	findings := e.EvaluateDocument(target)
	ids := findingIDs(findings)

	assert.Contains(t, ids, "missing_project_code")
	assert.Contains(t, ids, "unknown_stage")
	assert.Contains(t, ids, "missing_general_data")

	for _, f := range findings {
		assert.Zero(t, f.PageNumber, "document findings carry no page number")
	}
}

func TestEvaluateDocumentNormRefsByMark(t *testing.T) {
	e := newEngine()

	target := &Target{
		Text: "в проекте упомянут ГОСТ 21.501",
		Project: &models.ProjectInfo{
			ProjectCode: "2024-15-АР",
			Mark:        "АР",
			Stage:       patterns.StageWorking,
		},
		GeneralDataPage: 4,
	}
	findings := e.EvaluateDocument(target)

	ids := findingIDs(findings)
	assert.NotContains(t, ids, "norm_ref:gost_21_501", "cited reference produces no finding")
	assert.Contains(t, ids, "norm_ref:gost_21_101", "uncited reference is flagged")
	for _, f := range findings {
		assert.Equal(t, CategoryNormRefs, f.Category)
		assert.Equal(t, models.SeverityWarning, f.Severity)
	}
}

func TestEvaluateDocumentGenericNormsForUnknownMark(t *testing.T) {
	e := newEngine()
	lib := patterns.Default()

	target := &Target{
		Text:            "никаких ссылок",
		Project:         &models.ProjectInfo{ProjectCode: "77-01-ХХ", Mark: "ХХ", Stage: patterns.StageWorking},
		GeneralDataPage: 4,
	}
	findings := e.EvaluateDocument(target)

	var normCount int
	for _, f := range findings {
		if f.Category == CategoryNormRefs {
			normCount++
		}
	}
	assert.Equal(t, len(lib.NormRefs("", "")), normCount)
}

func TestSheetNumberingGap(t *testing.T) {
	e := newEngine()

	base := &Target{
		Project:         &models.ProjectInfo{ProjectCode: "x", Stage: patterns.StageWorking},
		GeneralDataPage: 1,
	}

	base.SheetNumbers = []int{1, 2, 3}
	assert.NotContains(t, findingIDs(e.EvaluateDocument(base)), "sheet_numbering_gap")

	base.SheetNumbers = []int{1, 3, 4}
	assert.Contains(t, findingIDs(e.EvaluateDocument(base)), "sheet_numbering_gap")

	base.SheetNumbers = []int{2, 2, 3}
	assert.Contains(t, findingIDs(e.EvaluateDocument(base)), "sheet_numbering_gap")

	// A single sheet cannot have a numbering gap.
	base.SheetNumbers = []int{5}
	assert.NotContains(t, findingIDs(e.EvaluateDocument(base)), "sheet_numbering_gap")
}

func TestRuleEvaluateCarriesMetadata(t *testing.T) {
	rule := Rule{
		ID:             "demo",
		Category:       CategoryStructure,
		Severity:       models.SeverityHigh,
		Title:          "demo title",
		Description:    "demo description",
		Recommendation: "demo recommendation",
		Confidence:     0.5,
		Check:          PredicateFunc(func(*Target) bool { return false }),
	}

	f, bad := rule.Evaluate(&Target{PageNumber: 3})
	require.True(t, bad)
	assert.Equal(t, "demo", f.RuleID)
	assert.Equal(t, models.SeverityHigh, f.Severity)
	assert.Equal(t, 3, f.PageNumber)
	assert.Equal(t, 0.5, f.Confidence)
}
