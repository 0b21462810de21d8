package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

func pagesFromRoles(roles ...models.PageRole) []models.Page {
	pages := make([]models.Page, len(roles))
	for i, role := range roles {
		pages[i] = models.Page{PageNumber: i + 1, Role: role}
	}
	return pages
}

func TestDetectGeneralDataByIndicator(t *testing.T) {
	lib := patterns.Default()
	pages := []models.Page{
		{PageNumber: 1, RawText: "Титульный лист"},
		{PageNumber: 2, RawText: "Содержание тома"},
		{PageNumber: 3, RawText: "ОБЩИЕ ДАННЫЕ\nВедомость рабочих чертежей"},
		{PageNumber: 4, RawText: "общие данные, повтор"},
	}

	assert.Equal(t, 3, DetectGeneralData(pages, lib, 4), "first indicator page wins")
}

func TestDetectGeneralDataFallback(t *testing.T) {
	lib := patterns.Default()
	pages := []models.Page{
		{PageNumber: 1, RawText: "лист 1"},
		{PageNumber: 2, RawText: "лист 2"},
		{PageNumber: 3, RawText: "лист 3"},
		{PageNumber: 4, RawText: "лист 4"},
		{PageNumber: 5, RawText: "лист 5"},
	}

	assert.Equal(t, 4, DetectGeneralData(pages, lib, 4))

	// Fallback past the end of the document means not found.
	short := pages[:2]
	assert.Equal(t, 0, DetectGeneralData(short, lib, 4))

	assert.Equal(t, 0, DetectGeneralData(pages, lib, 0), "disabled fallback")
}

func TestSplitMergesRuns(t *testing.T) {
	pages := pagesFromRoles(
		models.RoleTitle,
		models.RoleTitle,
		models.RoleGeneralData,
		models.RoleDrawing,
		models.RoleDrawing,
		models.RoleDrawing,
		models.RoleSpec,
	)

	sections := Split(pages)
	require.Len(t, sections, 4)

	assert.Equal(t, models.Section{Type: models.SectionTitle, StartPage: 1, EndPage: 2, PagesCount: 2}, sections[0])
	assert.Equal(t, models.Section{Type: models.SectionGeneralData, StartPage: 3, EndPage: 3, PagesCount: 1}, sections[1])
	assert.Equal(t, models.Section{Type: models.SectionDrawing, StartPage: 4, EndPage: 6, PagesCount: 3}, sections[2])
	assert.Equal(t, models.Section{Type: models.SectionSpec, StartPage: 7, EndPage: 7, PagesCount: 1}, sections[3])
}

func TestSplitIsPartition(t *testing.T) {
	cases := [][]models.PageRole{
		{models.RoleDrawing},
		{models.RoleTitle, models.RoleDrawing, models.RoleTitle, models.RoleDrawing},
		{models.RoleMainContent, models.RoleMainContent, models.RoleMainContent},
		{models.RoleTitle, models.RoleGeneralData, models.RoleDrawing, models.RoleSpec, models.RoleDetails, models.RoleUnknown},
	}

	for _, roles := range cases {
		pages := pagesFromRoles(roles...)
		sections := Split(pages)

		next := 1
		for _, s := range sections {
			require.Equal(t, next, s.StartPage, "sections must be contiguous")
			require.GreaterOrEqual(t, s.EndPage, s.StartPage)
			require.Equal(t, s.EndPage-s.StartPage+1, s.PagesCount)
			next = s.EndPage + 1
		}
		require.Equal(t, len(pages)+1, next, "sections must cover every page")
	}
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split(nil))
}

func TestSectionText(t *testing.T) {
	pages := []models.Page{
		{PageNumber: 1, RawText: "первый"},
		{PageNumber: 2, RawText: "второй"},
		{PageNumber: 3, RawText: "третий"},
	}
	section := models.Section{StartPage: 2, EndPage: 3}

	assert.Equal(t, "второй\nтретий", SectionText(section, pages))
}
