// Package segment turns the classified page sequence into contiguous
// sections and locates the general-data sheet.
package segment

import (
	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

// DetectGeneralData scans pages in order and returns the page number of
// the first page carrying a general-data indicator, or 0 when none is
// found. fallbackPage covers document sets that never label the sheet
// explicitly; a fallback beyond the document's page range still reports
// not-found rather than pointing at a page that does not exist.
func DetectGeneralData(pages []models.Page, lib *patterns.Library, fallbackPage int) int {
	for _, page := range pages {
		if patterns.ContainsAny(page.RawText, lib.GeneralData) {
			return page.PageNumber
		}
	}

	if fallbackPage <= 0 {
		return 0
	}
	for _, page := range pages {
		if page.PageNumber == fallbackPage {
			return fallbackPage
		}
	}
	return 0
}

var roleToSection = map[models.PageRole]models.SectionType{
	models.RoleTitle:       models.SectionTitle,
	models.RoleGeneralData: models.SectionGeneralData,
	models.RoleDrawing:     models.SectionDrawing,
	models.RoleSpec:        models.SectionSpec,
	models.RoleDetails:     models.SectionDetails,
	models.RoleMainContent: models.SectionMainContent,
	models.RoleUnknown:     models.SectionUnknown,
}

// Split groups the ordered, classified pages into sections. A new section
// starts whenever the role changes; consecutive pages of the same role
// merge. By construction the result partitions the page range with no
// gaps and no overlaps.
func Split(pages []models.Page) []models.Section {
	if len(pages) == 0 {
		return nil
	}

	sections := make([]models.Section, 0, 4)
	current := models.Section{
		Type:      sectionType(pages[0].Role),
		StartPage: pages[0].PageNumber,
		EndPage:   pages[0].PageNumber,
	}

	for _, page := range pages[1:] {
		t := sectionType(page.Role)
		if t == current.Type {
			current.EndPage = page.PageNumber
			continue
		}
		current.PagesCount = current.EndPage - current.StartPage + 1
		sections = append(sections, current)
		current = models.Section{Type: t, StartPage: page.PageNumber, EndPage: page.PageNumber}
	}
	current.PagesCount = current.EndPage - current.StartPage + 1
	return append(sections, current)
}

func sectionType(role models.PageRole) models.SectionType {
	if t, ok := roleToSection[role]; ok {
		return t
	}
	return models.SectionMainContent
}

// SectionText concatenates the raw text of the pages a section spans.
// Used by section-level rules.
func SectionText(section models.Section, pages []models.Page) string {
	var text string
	for _, page := range pages {
		if page.PageNumber >= section.StartPage && page.PageNumber <= section.EndPage {
			if text != "" {
				text += "\n"
			}
			text += page.RawText
		}
	}
	return text
}
