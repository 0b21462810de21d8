// Package patterns holds the versioned keyword and field-pattern tables the
// pipeline stages match against. The library is plain data: swapping rule
// content means editing these tables (or the YAML overlay), not code in the
// classifier or the rule engine. A library is immutable after construction
// and safe to share across concurrent analysis runs.
package patterns

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/skosovsky/doccheck/internal/models"
)

// FieldPattern is one labeled extraction pattern. Expr is compiled once at
// library construction; a pattern that fails to compile fails the whole
// load, never a single lookup.
type FieldPattern struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`

	re *regexp.Regexp
}

// Match returns the first capture group (or the whole match when the
// expression has no groups) and whether the pattern matched at all.
func (p *FieldPattern) Match(text string) (string, bool) {
	if p.re == nil {
		return "", false
	}
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(m[0]), true
}

// NormRef names one normative document a discipline is expected to cite.
type NormRef struct {
	ID       string `yaml:"id"`
	Document string `yaml:"document"`
	// Keywords: the reference counts as present when any of these occurs.
	Keywords []string `yaml:"keywords"`
}

// MarkRules is the normative-reference rule data for one document mark.
type MarkRules struct {
	// Working/design documentation stages may cite different norm sets.
	Working []NormRef `yaml:"working"`
	Design  []NormRef `yaml:"design"`
}

// Library is one versioned snapshot of all pattern data.
type Library struct {
	Version string `yaml:"version"`

	// Role classification keywords, matched case-insensitively.
	Roles map[models.PageRole][]string `yaml:"roles"`

	// Indicators that a page is the general-data sheet.
	GeneralData []string `yaml:"generalData"`

	// Title-block field patterns.
	Stamp []FieldPattern `yaml:"stamp"`

	// First-page project metadata patterns.
	Project []FieldPattern `yaml:"project"`

	// Line-scan fallback keywords for project-code recovery.
	CodeKeywords []string `yaml:"codeKeywords"`

	// Mark code (АР, КЖ, ОВ...) to content keywords, for deriving the
	// document-set mark when the project code carries no suffix.
	Marks map[string][]string `yaml:"marks"`

	// Section content expectations keyed by section type.
	Sections map[models.SectionType][]string `yaml:"sections"`

	// Normative references per mark; the "" key is the generic fallback.
	Norms map[string]MarkRules `yaml:"norms"`
}

// compile prepares all regex patterns. Called once per library.
func (l *Library) compile() error {
	for i := range l.Stamp {
		re, err := regexp.Compile("(?i)" + l.Stamp[i].Expr)
		if err != nil {
			return fmt.Errorf("stamp pattern %q: %w", l.Stamp[i].Name, err)
		}
		l.Stamp[i].re = re
	}
	for i := range l.Project {
		re, err := regexp.Compile("(?i)" + l.Project[i].Expr)
		if err != nil {
			return fmt.Errorf("project pattern %q: %w", l.Project[i].Name, err)
		}
		l.Project[i].re = re
	}
	return nil
}

// RoleKeywords returns the keyword list for a role. Unknown roles yield an
// empty list, never an error.
func (l *Library) RoleKeywords(role models.PageRole) []string {
	return l.Roles[role]
}

// SectionKeywords returns the content expectations for a section type.
func (l *Library) SectionKeywords(t models.SectionType) []string {
	return l.Sections[t]
}

// NormRefs selects the normative-reference set for a mark and stage,
// falling back to the generic set for unknown combinations.
func (l *Library) NormRefs(mark, stage string) []NormRef {
	rules, ok := l.Norms[strings.ToUpper(mark)]
	if !ok {
		rules = l.Norms[""]
	}
	if strings.EqualFold(stage, StageDesign) {
		if len(rules.Design) > 0 {
			return rules.Design
		}
		return rules.Working
	}
	if len(rules.Working) > 0 {
		return rules.Working
	}
	return rules.Design
}

// ContainsAny reports whether text contains at least one keyword,
// case-insensitively. Empty keyword lists match nothing.
func ContainsAny(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CountMatches counts how many keywords occur in text, case-insensitively.
func CountMatches(text string, keywords []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}
