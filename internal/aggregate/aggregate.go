// Package aggregate reduces the finding list into the final compliance
// report: severity totals, a 0–100 score, and the terminal status. It
// performs no I/O and is deterministic over its inputs.
package aggregate

import (
	"time"

	"github.com/skosovsky/doccheck/internal/models"
)

// Fixed penalties per severity. Adding a finding can only lower or hold
// the score, never raise it.
const (
	penaltyCritical = 20.0
	penaltyHigh     = 15.0
	penaltyWarning  = 10.0
	penaltyInfo     = 5.0
)

// DefaultPassThreshold is the score below which a document without
// critical findings still lands on warning.
const DefaultPassThreshold = 80.0

// Score computes the compliance score for a finding list, clamped to
// [0, 100].
func Score(findings []models.Finding) float64 {
	score := 100.0
	for _, f := range findings {
		score -= penalty(f.Severity)
	}
	if score < 0 {
		return 0
	}
	return score
}

func penalty(s models.Severity) float64 {
	switch s {
	case models.SeverityCritical:
		return penaltyCritical
	case models.SeverityHigh:
		return penaltyHigh
	case models.SeverityWarning:
		return penaltyWarning
	case models.SeverityInfo:
		return penaltyInfo
	default:
		return penaltyInfo
	}
}

// Build assembles the compliance report. Status derivation: fail iff at
// least one critical finding exists; otherwise warning when any
// warning-or-higher finding exists or the score is under the pass
// threshold; otherwise pass.
func Build(documentID string, totalPages int, project models.ProjectInfo,
	sections []models.Section, findings []models.Finding, passThreshold float64) *models.ComplianceReport {

	if passThreshold <= 0 {
		passThreshold = DefaultPassThreshold
	}

	report := &models.ComplianceReport{
		DocumentID: documentID,
		TotalPages: totalPages,
		Project:    project,
		Sections:   sections,
		Findings:   findings,
		Score:      Score(findings),
		AnalyzedAt: time.Now().UTC(),
	}

	for _, f := range findings {
		switch f.Severity {
		case models.SeverityCritical:
			report.CriticalCount++
		case models.SeverityHigh:
			report.HighCount++
		case models.SeverityWarning:
			report.WarningCount++
		default:
			report.InfoCount++
		}
	}

	switch {
	case report.CriticalCount > 0:
		report.Status = models.StatusFail
	case report.HighCount+report.WarningCount > 0 || report.Score < passThreshold:
		report.Status = models.StatusWarning
	default:
		report.Status = models.StatusPass
	}

	return report
}
