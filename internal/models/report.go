package models

import "time"

// Severity grades a finding. The order info < warning < high < critical
// drives both sorting and score penalties.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank maps a severity onto its position in the total order. Unrecognized
// severities rank below info so they can never outweigh a real finding.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// ComplianceStatus is the terminal verdict of an analysis run.
type ComplianceStatus string

const (
	StatusPass    ComplianceStatus = "pass"
	StatusWarning ComplianceStatus = "warning"
	StatusFail    ComplianceStatus = "fail"
)

// SectionType mirrors PageRole plus the distinguished general-data type.
type SectionType string

const (
	SectionTitle       SectionType = "title"
	SectionGeneralData SectionType = "general_data"
	SectionDrawing     SectionType = "drawing"
	SectionSpec        SectionType = "specification"
	SectionDetails     SectionType = "details"
	SectionMainContent SectionType = "main_content"
	SectionUnknown     SectionType = "unknown"
)

// Section is a contiguous run of pages sharing a logical role.
// StartPage <= EndPage always holds; the segmenter guarantees sections
// partition [1, totalPages] with no gaps and no overlaps.
type Section struct {
	Type       SectionType `json:"type"`
	StartPage  int         `json:"startPage"`
	EndPage    int         `json:"endPage"`
	PagesCount int         `json:"pagesCount"`
}

// Finding is one reported compliance issue or observation.
// PageNumber 0 means a document-level finding.
type Finding struct {
	RuleID         string   `json:"ruleId"`
	Category       string   `json:"category"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	PageNumber     int      `json:"pageNumber,omitempty"`
	Confidence     float64  `json:"confidence"`
}

// StageTimings records wall-clock durations per pipeline stage.
type StageTimings struct {
	Classification time.Duration `json:"classification"`
	DocumentChecks time.Duration `json:"documentChecks"`
	Segmentation   time.Duration `json:"segmentation"`
	SectionChecks  time.Duration `json:"sectionChecks"`
	Aggregation    time.Duration `json:"aggregation"`
	Total          time.Duration `json:"total"`
}

// ComplianceReport is the pipeline's final output.
type ComplianceReport struct {
	DocumentID    string           `json:"documentId"`
	TotalPages    int              `json:"totalPages"`
	Project       ProjectInfo      `json:"project"`
	Sections      []Section        `json:"sections"`
	Findings      []Finding        `json:"findings"`
	CriticalCount int              `json:"criticalCount"`
	HighCount     int              `json:"highCount"`
	WarningCount  int              `json:"warningCount"`
	InfoCount     int              `json:"infoCount"`
	Score         float64          `json:"complianceScore"`
	Status        ComplianceStatus `json:"overallStatus"`
	Timings       StageTimings     `json:"timings"`
	AnalyzedAt    time.Time        `json:"analyzedAt"`
}
