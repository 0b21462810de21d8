package rules

import (
	"fmt"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
)

// Finding categories.
const (
	CategoryTitleBlock    = "title_block"
	CategoryNumbering     = "document_numbering"
	CategoryNormRefs      = "normative_references"
	CategoryGeneralData   = "general_data"
	CategorySpecification = "specification"
	CategoryStructure     = "document_structure"
)

func drawingPageRules() []Rule {
	hasStamp := func(t *Target) bool { return t.Stamp != nil && t.Stamp.HasStamp }

	return []Rule{
		{
			ID:             "missing_stamp",
			Category:       CategoryTitleBlock,
			Severity:       models.SeverityCritical,
			Title:          "Drawing sheet has no title block",
			Description:    "No title block fields could be recognized on a page classified as a drawing.",
			Recommendation: "Add a title block per GOST R 21.101 form 3 to every drawing sheet.",
			Confidence:     0.85,
			Check:          PredicateFunc(hasStamp),
		},
		{
			ID:             "missing_scale",
			Category:       CategoryTitleBlock,
			Severity:       models.SeverityWarning,
			Title:          "Scale annotation missing",
			Description:    "The title block carries no scale annotation.",
			Recommendation: "State the drawing scale (e.g. 1:100) in the title block.",
			Confidence:     0.75,
			Applies:        hasStamp,
			Check: PredicateFunc(func(t *Target) bool {
				return t.Stamp.Scale != ""
			}),
		},
		{
			ID:             "missing_sheet_number",
			Category:       CategoryTitleBlock,
			Severity:       models.SeverityWarning,
			Title:          "Sheet number missing",
			Description:    "The title block carries no sheet number.",
			Recommendation: "Number every sheet in the title block's sheet cell.",
			Confidence:     0.75,
			Applies:        hasStamp,
			Check: PredicateFunc(func(t *Target) bool {
				return t.Stamp.SheetNumber != ""
			}),
		},
	}
}

func sectionRules(lib *patterns.Library) []Rule {
	forType := func(st models.SectionType) func(*Target) bool {
		return func(t *Target) bool { return t.Section != nil && t.Section.Type == st }
	}

	return []Rule{
		{
			ID:             "general_data_sheet_register",
			Category:       CategoryGeneralData,
			Severity:       models.SeverityWarning,
			Title:          "General-data section lacks a sheet register",
			Description:    "The general-data section does not contain a register of working drawings.",
			Recommendation: "Include the sheet register table on the general-data sheet.",
			Confidence:     0.7,
			Applies:        forType(models.SectionGeneralData),
			Check: PredicateFunc(func(t *Target) bool {
				return patterns.ContainsAny(t.Text, lib.SectionKeywords(models.SectionGeneralData))
			}),
		},
		{
			ID:             "specification_table_header",
			Category:       CategorySpecification,
			Severity:       models.SeverityWarning,
			Title:          "Specification section lacks table headers",
			Description:    "The specification section does not contain recognizable specification table columns.",
			Recommendation: "Format specifications as a table with position, designation, name and quantity columns.",
			Confidence:     0.7,
			Applies:        forType(models.SectionSpec),
			Check: PredicateFunc(func(t *Target) bool {
				return patterns.ContainsAny(t.Text, lib.SectionKeywords(models.SectionSpec))
			}),
		},
	}
}

func documentRules() []Rule {
	return []Rule{
		{
			ID:             "missing_project_code",
			Category:       CategoryNumbering,
			Severity:       models.SeverityHigh,
			Title:          "Project code not found",
			Description:    "No project cipher could be extracted from the document's first page.",
			Recommendation: "Place the project cipher on the title sheet and in every title block.",
			Confidence:     0.8,
			Check: PredicateFunc(func(t *Target) bool {
				return t.Project != nil && t.Project.ProjectCode != ""
			}),
		},
		{
			ID:             "unknown_stage",
			Category:       CategoryNumbering,
			Severity:       models.SeverityWarning,
			Title:          "Design stage not identified",
			Description:    "The document does not state a recognizable design stage.",
			Recommendation: "Mark the stage (working or design documentation) on the title sheet.",
			Confidence:     0.7,
			Check: PredicateFunc(func(t *Target) bool {
				return t.Project != nil && t.Project.Stage != ""
			}),
		},
		{
			ID:             "missing_general_data",
			Category:       CategoryStructure,
			Severity:       models.SeverityHigh,
			Title:          "General-data sheet not found",
			Description:    "The document set carries no detectable general-data sheet.",
			Recommendation: "Open the working drawing set with a general-data sheet.",
			Confidence:     0.75,
			Check: PredicateFunc(func(t *Target) bool {
				return t.GeneralDataPage > 0
			}),
		},
		{
			ID:             "sheet_numbering_gap",
			Category:       CategoryNumbering,
			Severity:       models.SeverityWarning,
			Title:          "Sheet numbering is not continuous",
			Description:    "Stamp sheet numbers on drawing pages skip or repeat values.",
			Recommendation: "Renumber sheets so the title-block sequence has no gaps or duplicates.",
			Confidence:     0.65,
			Applies: func(t *Target) bool {
				return len(t.SheetNumbers) > 1
			},
			Check: PredicateFunc(func(t *Target) bool {
				for i := 1; i < len(t.SheetNumbers); i++ {
					if t.SheetNumbers[i] != t.SheetNumbers[i-1]+1 {
						return false
					}
				}
				return true
			}),
		},
	}
}

// normRefRule builds the per-reference rule for the selected discipline.
// The rule identity embeds the reference so findings stay distinguishable.
func normRefRule(ref patterns.NormRef) Rule {
	return Rule{
		ID:             "norm_ref:" + ref.ID,
		Category:       CategoryNormRefs,
		Severity:       models.SeverityWarning,
		Title:          fmt.Sprintf("Normative reference %s not cited", ref.Document),
		Description:    fmt.Sprintf("The document set does not reference %s, expected for this discipline and stage.", ref.Document),
		Recommendation: fmt.Sprintf("Cite %s in the general-data notes or the reference-document register.", ref.Document),
		Confidence:     0.6,
		Check: PredicateFunc(func(t *Target) bool {
			return patterns.ContainsAny(t.Text, ref.Keywords)
		}),
	}
}
