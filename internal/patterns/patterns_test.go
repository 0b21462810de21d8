package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/doccheck/internal/models"
)

func TestDefaultLibraryCompiles(t *testing.T) {
	lib := Default()
	require.NotEmpty(t, lib.Version)
	require.NotEmpty(t, lib.Roles)
	require.NotEmpty(t, lib.Stamp)
	require.NotEmpty(t, lib.Norms)
}

func TestLookupMissReturnsEmpty(t *testing.T) {
	lib := Default()

	assert.Empty(t, lib.RoleKeywords(models.PageRole("no_such_role")))
	assert.Empty(t, lib.SectionKeywords(models.SectionType("no_such_section")))
}

func TestNormRefsFallback(t *testing.T) {
	lib := Default()

	generic := lib.NormRefs("", "")
	require.NotEmpty(t, generic, "generic rule set must exist")

	unknown := lib.NormRefs("ЖБИ-7", "working")
	assert.Equal(t, generic, unknown, "unknown mark falls back to the generic set")

	ar := lib.NormRefs("АР", "working")
	require.NotEmpty(t, ar)
	assert.NotEqual(t, generic, ar)

	// Lowercase mark resolves the same set.
	assert.Equal(t, ar, lib.NormRefs("ар", "working"))
}

func TestFieldPatternMatch(t *testing.T) {
	lib := Default()

	var scale *FieldPattern
	for i := range lib.Stamp {
		if lib.Stamp[i].Name == "scale" {
			scale = &lib.Stamp[i]
			break
		}
	}
	require.NotNil(t, scale)

	value, ok := scale.Match("Масштаб 1:100")
	require.True(t, ok)
	assert.Equal(t, "1:100", value)

	_, ok = scale.Match("нет масштаба здесь")
	assert.False(t, ok)
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("ОБЩИЕ ДАННЫЕ по проекту", []string{"общие данные"}))
	assert.False(t, ContainsAny("что-то другое", []string{"общие данные"}))
	assert.False(t, ContainsAny("любой текст", nil), "empty keyword list matches nothing")
	assert.False(t, ContainsAny("любой текст", []string{""}))
}

func TestCountMatches(t *testing.T) {
	text := "План этажа. Разрез 1-1. Масштаб 1:100"
	assert.Equal(t, 2, CountMatches(text, []string{"план", "разрез", "фасад"}))
}

func TestLoadYAML(t *testing.T) {
	content := `
version: "test-1"
roles:
  drawing: ["чертеж", "plan"]
generalData: ["общие данные"]
stamp:
  - name: scale
    expr: 'scale\s*(1:\d+)'
norms:
  "":
    working:
      - id: gost_test
        document: "ГОСТ TEST"
        keywords: ["гост test"]
`
	path := filepath.Join(t.TempDir(), "lib.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lib, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-1", lib.Version)
	assert.Equal(t, []string{"чертеж", "plan"}, lib.RoleKeywords(models.RoleDrawing))

	value, ok := lib.Stamp[0].Match("Scale 1:50")
	require.True(t, ok)
	assert.Equal(t, "1:50", value)
}

func TestLoadRejectsBadPattern(t *testing.T) {
	content := `
version: "bad"
stamp:
  - name: broken
    expr: '('
`
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	lib, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Version, lib.Version)
}
