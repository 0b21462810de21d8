package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

func newClassifier() *Classifier {
	return New(patterns.Default())
}

func TestClassifyEmptyText(t *testing.T) {
	c := newClassifier()

	role, confidence := c.Classify(models.Page{PageNumber: 1, RawText: ""}, 0)
	assert.Equal(t, models.RoleMainContent, role)
	assert.Less(t, confidence, 0.2, "empty pages classify with low confidence")

	role, confidence = c.Classify(models.Page{PageNumber: 2, RawText: "   \n\t  "}, 0)
	assert.Equal(t, models.RoleMainContent, role)
	assert.Less(t, confidence, 0.2)
}

func TestClassifyByKeywords(t *testing.T) {
	c := newClassifier()

	tests := []struct {
		name string
		text string
		want models.PageRole
	}{
		{"general data", "ОБЩИЕ ДАННЫЕ\nВедомость рабочих чертежей основного комплекта", models.RoleGeneralData},
		{"drawing", "План этажа на отм. 0.000. Разрез 1-1. Масштаб 1:100", models.RoleDrawing},
		{"specification", "Спецификация оборудования, изделий и материалов", models.RoleSpec},
		{"details", "Узлы креплений. Деталь опирания балки", models.RoleDetails},
		{"title", "Титульный лист. Заказчик: ООО Проект", models.RoleTitle},
		{"no keywords", "случайный текст без ключевых слов", models.RoleMainContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, confidence := c.Classify(models.Page{PageNumber: 10, RawText: tt.text}, 0)
			assert.Equal(t, tt.want, role)
			assert.GreaterOrEqual(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}
}

func TestClassifyForcesTitleBeforeGeneralData(t *testing.T) {
	c := newClassifier()

	// Page 2 looks like a drawing, but the general-data sheet is page 4,
	// so everything before it is front matter.
	page := models.Page{PageNumber: 2, RawText: "План этажа. Масштаб 1:100"}
	role, confidence := c.Classify(page, 4)
	assert.Equal(t, models.RoleTitle, role)
	assert.Greater(t, confidence, 0.5)

	// The same text at or after the general-data page keeps its score.
	page.PageNumber = 5
	role, _ = c.Classify(page, 4)
	assert.Equal(t, models.RoleDrawing, role)
}

func TestClassifyTieBreakPriority(t *testing.T) {
	c := newClassifier()

	// One general-data hit and one specification hit: the priority order
	// puts general_data first.
	text := "Общие данные. Спецификация."
	role, _ := c.Classify(models.Page{PageNumber: 6, RawText: text}, 0)
	assert.Equal(t, models.RoleGeneralData, role)
}

func TestClassifyNeverReturnsUnknown(t *testing.T) {
	c := newClassifier()

	for _, text := range []string{"", "мусор", "@@@###$$$", "a"} {
		role, _ := c.Classify(models.Page{PageNumber: 1, RawText: text}, 0)
		assert.NotEqual(t, models.RoleUnknown, role)
	}
}
