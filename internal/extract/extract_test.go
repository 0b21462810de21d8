package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/doccheck/internal/patterns"
)

func newExtractor() *Extractor {
	return New(patterns.Default())
}

func TestStampFullExtraction(t *testing.T) {
	e := newExtractor()

	text := strings.Join([]string{
		"Объект: Жилой дом по ул. Ленина, 10",
		"Стадия: Р",
		"2024-15-АР",
		"Лист 3",
		"Изм. 1",
		"Масштаб 1:100",
	}, "\n")

	info := e.Stamp(text)
	assert.True(t, info.HasStamp)
	assert.Equal(t, "3", info.SheetNumber)
	assert.Equal(t, "1", info.Revision)
	assert.Equal(t, "1:100", info.Scale)
	assert.Equal(t, "2024-15-АР", info.ProjectCode)
	assert.Equal(t, "АР", info.Mark, "mark derives from the code suffix")
	assert.Equal(t, patterns.StageWorking, info.Stage)
	assert.NotEmpty(t, info.ObjectName)
	assert.Greater(t, info.Confidence, 0.5)
	assert.LessOrEqual(t, info.Confidence, 1.0)
}

func TestStampEmptyText(t *testing.T) {
	info := newExtractor().Stamp("")
	assert.False(t, info.HasStamp)
	assert.Zero(t, info.Confidence)
}

func TestStampPartialIsNormal(t *testing.T) {
	info := newExtractor().Stamp("Масштаб 1:500 и больше ничего")
	assert.True(t, info.HasStamp)
	assert.Equal(t, "1:500", info.Scale)
	assert.Empty(t, info.SheetNumber)
	assert.Empty(t, info.ProjectCode)
	assert.Greater(t, info.Confidence, 0.0)
}

func TestProjectExtraction(t *testing.T) {
	e := newExtractor()

	text := strings.Join([]string{
		"Наименование объекта: Производственный корпус №2",
		"Шифр: 2023-041-КЖ",
		"Рабочая документация",
	}, "\n")

	info := e.Project(text)
	assert.Equal(t, "2023-041-КЖ", info.ProjectCode)
	assert.Equal(t, "КЖ", info.Mark)
	assert.Equal(t, patterns.StageWorking, info.Stage)
	assert.NotEmpty(t, info.ProjectName)
	assert.Greater(t, info.Confidence, 0.5)
}

func TestProjectCodeLineScanFallback(t *testing.T) {
	e := newExtractor()

	// No structured cipher pattern matches, but a keyword line carries a
	// code-shaped token.
	text := "Договор № 77/2023-ПД от 01.02.2023"
	info := e.Project(text)
	assert.NotEmpty(t, info.ProjectCode)
}

func TestMarkFromContentKeywords(t *testing.T) {
	e := newExtractor()

	info := e.Project("Раздел: отопление и вентиляция производственного корпуса")
	assert.Equal(t, "ОВ", info.Mark, "mark falls back to content keywords when no code suffix")
}

func TestExtractionNeverRaises(t *testing.T) {
	e := newExtractor()

	inputs := []string{
		"",
		"\x00\x01\x02\xff garbage \xfe",
		strings.Repeat("кракозябры ", 100000),
		strings.Repeat("\n", 5000),
		"Лист Лист Лист Масштаб Масштаб",
	}

	for _, text := range inputs {
		stamp := e.Stamp(text)
		require.GreaterOrEqual(t, stamp.Confidence, 0.0)
		require.LessOrEqual(t, stamp.Confidence, 1.0)

		project := e.Project(text)
		require.GreaterOrEqual(t, project.Confidence, 0.0)
		require.LessOrEqual(t, project.Confidence, 1.0)
	}
}

func TestConfidenceAdditive(t *testing.T) {
	e := newExtractor()

	sparse := e.Stamp("Лист 1")
	rich := e.Stamp("Лист 1\nМасштаб 1:200\nИзм. 2")
	assert.Greater(t, rich.Confidence, sparse.Confidence,
		"each matched field adds confidence")
}

func TestStageNormalization(t *testing.T) {
	assert.Equal(t, patterns.StageWorking, normalizeStage("Р"))
	assert.Equal(t, patterns.StageDesign, normalizeStage("П"))
	assert.Equal(t, patterns.StageWorking, normalizeStage("working"))
	assert.Equal(t, "", normalizeStage("что-то"))
}
