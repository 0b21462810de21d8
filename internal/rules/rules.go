// Package rules evaluates compliance rules against pages, sections, and
// the document as a whole. Each rule is a named predicate with a fixed
// severity: a predicate that does not hold produces exactly one finding.
// Rules are independent — evaluation order affects only the order of the
// returned list, which is fixed to rule registration order for
// reproducibility.
package rules

import (
	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

// Target is what one rule inspects. Fields irrelevant to the target kind
// stay zero: page rules read Text/Stamp, section rules read Section/Text,
// document rules read Project/FullText/Stamps.
type Target struct {
	Text       string
	PageNumber int
	Section    *models.Section
	Stamp      *models.StampInfo
	Project    *models.ProjectInfo
	TotalPages int

	// GeneralDataPage is 0 when no general-data sheet was detected.
	GeneralDataPage int

	// SheetNumbers lists stamp sheet numbers of drawing pages in page
	// order, for numbering-continuity checks.
	SheetNumbers []int
}

// Predicate reports whether the target complies. Implementations must be
// pure: the heuristic behind a rule is swappable without touching the
// engine or the rule's identity.
type Predicate interface {
	Holds(t *Target) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(t *Target) bool

func (f PredicateFunc) Holds(t *Target) bool { return f(t) }

// Rule couples a predicate with the finding it produces on violation.
type Rule struct {
	ID             string
	Category       string
	Severity       models.Severity
	Title          string
	Description    string
	Recommendation string
	Confidence     float64

	// Applies gates evaluation; a nil Applies means the rule always runs.
	Applies func(t *Target) bool
	Check   Predicate
}

// Evaluate runs one rule. The returned bool is true when a finding was
// produced.
func (r *Rule) Evaluate(t *Target) (models.Finding, bool) {
	if r.Applies != nil && !r.Applies(t) {
		return models.Finding{}, false
	}
	if r.Check.Holds(t) {
		return models.Finding{}, false
	}
	return models.Finding{
		RuleID:         r.ID,
		Category:       r.Category,
		Severity:       r.Severity,
		Title:          r.Title,
		Description:    r.Description,
		Recommendation: r.Recommendation,
		PageNumber:     t.PageNumber,
		Confidence:     r.Confidence,
	}, true
}

// Engine holds the rule sets for one pattern-library snapshot.
type Engine struct {
	lib *patterns.Library

	pageRules    []Rule
	sectionRules []Rule
	docRules     []Rule
}

func NewEngine(lib *patterns.Library) *Engine {
	e := &Engine{lib: lib}
	e.pageRules = drawingPageRules()
	e.sectionRules = sectionRules(lib)
	e.docRules = documentRules()
	return e
}

// EvaluatePage runs the drawing-page rules against one classified page.
func (e *Engine) EvaluatePage(page models.Page, stamp *models.StampInfo) []models.Finding {
	if page.Role != models.RoleDrawing {
		return nil
	}
	t := &Target{Text: page.RawText, PageNumber: page.PageNumber, Stamp: stamp}
	return e.run(e.pageRules, t)
}

// EvaluateSection runs the section rules against one section's
// aggregated text.
func (e *Engine) EvaluateSection(section models.Section, text string) []models.Finding {
	t := &Target{Text: text, Section: &section, PageNumber: section.StartPage}
	return e.run(e.sectionRules, t)
}

// EvaluateDocument runs the document-level rules, including the
// normative-reference set selected by the document's mark and stage.
// Findings carry no page number.
func (e *Engine) EvaluateDocument(t *Target) []models.Finding {
	t.PageNumber = 0
	findings := e.run(e.docRules, t)

	mark, stage := "", ""
	if t.Project != nil {
		mark, stage = t.Project.Mark, t.Project.Stage
	}
	for _, ref := range e.lib.NormRefs(mark, stage) {
		rule := normRefRule(ref)
		if f, bad := rule.Evaluate(t); bad {
			findings = append(findings, f)
		}
	}
	return findings
}

func (e *Engine) run(set []Rule, t *Target) []models.Finding {
	var findings []models.Finding
	for i := range set {
		if f, bad := set[i].Evaluate(t); bad {
			findings = append(findings, f)
		}
	}
	return findings
}
