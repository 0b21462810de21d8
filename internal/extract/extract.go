// Package extract recovers structured metadata from raw page text.
// Extraction is best-effort by design: a field whose pattern does not
// match stays unset, confidence reflects how much was recovered, and no
// input — empty, truncated, or garbled OCR output — produces an error.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

// Field weights are additive and capped at 1.0, so confidence never
// decreases as more fields match.
const (
	stampFieldWeight   = 0.15
	projectFieldWeight = 0.25
)

// codeShape recognizes tokens that look like a document cipher on a line
// already flagged by a code keyword.
var codeShape = regexp.MustCompile(`(?i)[0-9][0-9а-яa-z/.-]{3,39}`)

type Extractor struct {
	lib *patterns.Library

	// sorted once so mark fallback scanning is deterministic
	markOrder []string
}

func New(lib *patterns.Library) *Extractor {
	marks := make([]string, 0, len(lib.Marks))
	for m := range lib.Marks {
		marks = append(marks, m)
	}
	sort.Strings(marks)
	return &Extractor{lib: lib, markOrder: marks}
}

// Stamp extracts title-block metadata from one page's text.
func (e *Extractor) Stamp(text string) models.StampInfo {
	info := models.StampInfo{}
	matched := 0

	set := func(dst *string, value string) {
		if *dst == "" && value != "" {
			*dst = value
			matched++
		}
	}

	for i := range e.lib.Stamp {
		p := &e.lib.Stamp[i]
		value, ok := p.Match(text)
		if !ok {
			continue
		}
		switch p.Name {
		case "sheet_number":
			set(&info.SheetNumber, value)
		case "revision":
			set(&info.Revision, value)
		case "scale":
			set(&info.Scale, normalizeScale(value))
		case "project_code":
			set(&info.ProjectCode, strings.ToUpper(value))
		case "stage":
			set(&info.Stage, normalizeStage(value))
		case "object_name":
			set(&info.ObjectName, value)
		}
	}

	if info.Mark == "" {
		if mark := e.deriveMark(info.ProjectCode, text); mark != "" {
			info.Mark = mark
			matched++
		}
	}

	info.HasStamp = matched > 0
	info.Confidence = capConfidence(float64(matched) * stampFieldWeight)
	return info
}

// Project extracts document-level metadata from the first page's text.
func (e *Extractor) Project(text string) models.ProjectInfo {
	info := models.ProjectInfo{}
	matched := 0

	set := func(dst *string, value string) {
		if *dst == "" && value != "" {
			*dst = value
			matched++
		}
	}

	for i := range e.lib.Project {
		p := &e.lib.Project[i]
		value, ok := p.Match(text)
		if !ok {
			continue
		}
		switch p.Name {
		case "project_code":
			set(&info.ProjectCode, strings.ToUpper(value))
		case "project_name":
			set(&info.ProjectName, value)
		case "stage":
			set(&info.Stage, normalizeStage(value))
		}
	}

	// Structured patterns missed the code: fall back to scanning whole
	// lines for known code-shape keywords.
	if info.ProjectCode == "" {
		if code := e.scanCodeLines(text); code != "" {
			info.ProjectCode = strings.ToUpper(code)
			matched++
		}
	}

	if mark := e.deriveMark(info.ProjectCode, text); mark != "" {
		info.Mark = mark
		matched++
	}

	info.Confidence = capConfidence(float64(matched) * projectFieldWeight)
	return info
}

// deriveMark resolves the document-set mark: first from the project code's
// embedded suffix, then from content keywords.
func (e *Extractor) deriveMark(code, text string) string {
	if code != "" {
		segments := strings.FieldsFunc(code, func(r rune) bool {
			return r == '-' || r == '–' || r == '.'
		})
		for i := len(segments) - 1; i >= 0; i-- {
			candidate := strings.ToUpper(strings.TrimRight(segments[i], "0123456789"))
			if _, ok := e.lib.Marks[candidate]; ok {
				return candidate
			}
		}
	}
	for _, mark := range e.markOrder {
		if patterns.ContainsAny(text, e.lib.Marks[mark]) {
			return mark
		}
	}
	return ""
}

func (e *Extractor) scanCodeLines(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if !patterns.ContainsAny(line, e.lib.CodeKeywords) {
			continue
		}
		for _, token := range codeShape.FindAllString(line, -1) {
			// A cipher carries at least one separator; bare numbers on
			// the keyword line are dates and sheet counts.
			if strings.ContainsAny(token, "-/.") {
				return strings.Trim(token, ".-/")
			}
		}
	}
	return ""
}

func normalizeScale(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), " ", "")
}

func normalizeStage(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "р", "рабочая документация", "working", "working documentation", "wd":
		return patterns.StageWorking
	case "п", "проектная документация", "design", "design documentation", "dd", "detailed":
		return patterns.StageDesign
	default:
		return ""
	}
}

func capConfidence(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
