// Package classifier assigns each page its role in the document set.
// Classification is keyword scoring against the pattern library; it is a
// pure function of its inputs and safe to run across pages concurrently.
package classifier

import (
	"math"
	"strings"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

// scanOrder doubles as the tie-break priority: when two roles score
// equally, the one listed first wins.
var scanOrder = []models.PageRole{
	models.RoleGeneralData,
	models.RoleSpec,
	models.RoleDetails,
	models.RoleDrawing,
	models.RoleTitle,
	models.RoleMainContent,
}

const (
	emptyPageConfidence   = 0.05
	defaultConfidence     = 0.3
	forcedTitleConfidence = 0.9
)

type Classifier struct {
	lib *patterns.Library
}

func New(lib *patterns.Library) *Classifier {
	return &Classifier{lib: lib}
}

// Classify returns the role for one page and a heuristic score in [0,1].
//
// When the document's general-data page is already known (generalDataPage
// > 0) every page before it is front matter and is forced to the title
// role regardless of keyword score. Pages matching no keyword set default
// to main_content; the unknown role is reserved for pages whose upstream
// text extraction failed and is never produced here.
func (c *Classifier) Classify(page models.Page, generalDataPage int) (models.PageRole, float64) {
	text := strings.TrimSpace(page.RawText)
	if text == "" {
		return models.RoleMainContent, emptyPageConfidence
	}

	if generalDataPage > 0 && page.PageNumber < generalDataPage {
		return models.RoleTitle, forcedTitleConfidence
	}

	bestRole := models.RoleMainContent
	bestScore := 0.0
	for _, role := range scanOrder {
		score := c.scoreRole(text, role)
		if score > bestScore {
			bestRole, bestScore = role, score
		}
	}

	if bestScore == 0 {
		return models.RoleMainContent, defaultConfidence
	}
	return bestRole, bestScore
}

// scoreRole normalizes the keyword hit count into [0,1]. Three distinct
// hits saturate the score; one hit is already a strong signal on sparse
// drawing-sheet text.
func (c *Classifier) scoreRole(text string, role models.PageRole) float64 {
	keywords := c.lib.RoleKeywords(role)
	if len(keywords) == 0 {
		return 0
	}
	hits := patterns.CountMatches(text, keywords)
	if hits == 0 {
		return 0
	}
	return math.Min(1.0, 0.4+0.2*float64(hits))
}
