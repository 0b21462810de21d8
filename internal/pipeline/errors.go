package pipeline

import (
	"errors"
	"fmt"
)

// Error kinds the orchestrator's caller can branch on. A completed
// analysis with a failing compliance status is a normal outcome and never
// surfaces as either of these.
var (
	// ErrInternalPipeline marks an internal-consistency defect (e.g. a
	// section partition violation). The run is aborted, never silently
	// corrected.
	ErrInternalPipeline = errors.New("internal pipeline error")

	// ErrCollaborator marks a failure at a collaborator boundary (text
	// extraction, document store). The caller should retry at that
	// boundary rather than re-running the analysis.
	ErrCollaborator = errors.New("collaborator failure")
)

func internalf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInternalPipeline, fmt.Sprintf(format, args...))
}

func collaboratorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCollaborator, fmt.Sprintf(format, args...))
}
