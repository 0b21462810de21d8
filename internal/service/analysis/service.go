package analysis

import (
	"context"
	"mime/multipart"

	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/pkg/queue"
)

// Service is the application surface around the compliance pipeline:
// accept a document, queue the analysis, expose status and the report.
type Service interface {
	SubmitFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.AnalysisTask, error)
	SubmitBatch(ctx context.Context, files []*multipart.FileHeader) ([]*models.AnalysisTask, error)
	GetStatus(ctx context.Context, taskID string) (*models.AnalysisTask, error)
	GetReport(ctx context.Context, taskID string) (*models.ComplianceReport, error)
	HandleAnalysis(ctx context.Context, task *queue.Task) error
	CancelTask(ctx context.Context, taskID string) error
	CleanupTasks(ctx context.Context) error
}
