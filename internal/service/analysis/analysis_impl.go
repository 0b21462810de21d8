package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cfg "github.com/skosovsky/doccheck/config"
	"github.com/skosovsky/doccheck/internal/models"
	"github.com/skosovsky/doccheck/internal/patterns"
	"github.com/skosovsky/doccheck/internal/pipeline"
	"github.com/skosovsky/doccheck/internal/utils/validator"
	"github.com/skosovsky/doccheck/pkg/extraction"
	"github.com/skosovsky/doccheck/pkg/extraction/pdf"
	"github.com/skosovsky/doccheck/pkg/logger"
	"github.com/skosovsky/doccheck/pkg/queue"
	"github.com/skosovsky/doccheck/pkg/storage"
)

type AnalysisService struct {
	factory *extraction.Factory
	pipe    *pipeline.Pipeline
	queue   queue.Queue
	storage storage.Storage
	logger  logger.Logger
	config  *ServiceConfig
}

type ServiceConfig struct {
	MaxFileSize     int64
	AllowedTypes    []string
	QueuePriority   int
	RetentionPeriod time.Duration
}

func NewService(
	factory *extraction.Factory,
	pipe *pipeline.Pipeline,
	q queue.Queue,
	store storage.Storage,
	log logger.Logger,
	sc *ServiceConfig,
) Service {
	if sc == nil {
		sc = &ServiceConfig{
			MaxFileSize:     50 * 1024 * 1024,
			AllowedTypes:    []string{".pdf", ".jpg", ".jpeg", ".png", ".tiff"},
			QueuePriority:   2,
			RetentionPeriod: 24 * time.Hour,
		}
	}
	return &AnalysisService{
		factory: factory,
		pipe:    pipe,
		queue:   q,
		storage: store,
		logger:  log,
		config:  sc,
	}
}

// GetService wires the service from the environment configuration.
func GetService(log logger.Logger) (Service, error) {
	ac := cfg.GetAnalysisConfig()

	store, err := storage.NewStorage(storage.StorageType(ac.StorageType), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	q, err := queue.GetQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize queue: %w", err)
	}

	factory, err := buildExtractionFactory(log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize extraction factory: %w", err)
	}

	lib, err := patterns.LoadOrDefault(ac.PatternLibraryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern library: %w", err)
	}

	pipe := pipeline.New(lib, log, pipeline.Config{
		MaxConcurrency:          ac.MaxConcurrency,
		GeneralDataFallbackPage: ac.GeneralDataFallbackPage,
		PassThreshold:           ac.PassThreshold,
	})

	sc := &ServiceConfig{
		MaxFileSize:     ac.MaxFileSizeMB * 1024 * 1024,
		AllowedTypes:    []string{".pdf", ".jpg", ".jpeg", ".png", ".tiff"},
		QueuePriority:   2,
		RetentionPeriod: 24 * time.Hour,
	}
	return NewService(factory, pipe, q, store, log, sc), nil
}

// SubmitFile validates and stores one document and queues its analysis.
func (s *AnalysisService) SubmitFile(
	ctx context.Context,
	file multipart.File,
	header *multipart.FileHeader,
) (*models.AnalysisTask, error) {
	s.logger.Info("Submitting document for analysis",
		logger.String("filename", header.Filename),
		logger.Int64("size", header.Size),
	)

	if err := validator.ValidateUpload(header, s.config.MaxFileSize, s.config.AllowedTypes); err != nil {
		s.logger.Error("Upload validation failed",
			logger.String("filename", header.Filename),
			logger.Error(err),
		)
		return nil, err
	}

	taskID := uuid.New().String()
	now := time.Now()

	task := &models.AnalysisTask{
		ID:        taskID,
		Status:    models.StatusPending,
		Type:      queue.TaskTypeAnalysisRun,
		Priority:  s.config.QueuePriority,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata: map[string]string{
			"filename": header.Filename,
			"size":     fmt.Sprintf("%d", header.Size),
			"type":     filepath.Ext(header.Filename),
		},
	}

	documentKey, err := s.storage.Store(ctx, file, storage.DocumentKey(taskID))
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	queueTask := &queue.Task{
		ID:       taskID,
		Type:     task.Type,
		Priority: task.Priority,
		Payload: map[string]interface{}{
			"documentKey": documentKey,
			"filename":    header.Filename,
			"type":        filepath.Ext(header.Filename),
		},
		Metadata:  task.Metadata,
		CreatedAt: task.CreatedAt,
	}
	if err := s.queue.Enqueue(ctx, queueTask); err != nil {
		return nil, fmt.Errorf("failed to enqueue analysis: %w", err)
	}

	initial := &queue.TaskStatus{
		TaskID:    taskID,
		Status:    "pending",
		StartedAt: now,
	}
	if err := s.queue.SaveFinalStatus(ctx, initial); err != nil {
		s.logger.Error("Failed to save initial status",
			logger.String("taskId", taskID),
			logger.Error(err),
		)
	}

	s.logger.Info("Analysis task created",
		logger.String("taskId", taskID),
		logger.String("filename", header.Filename),
	)
	return task, nil
}

// SubmitBatch submits several documents concurrently.
func (s *AnalysisService) SubmitBatch(ctx context.Context, files []*multipart.FileHeader) ([]*models.AnalysisTask, error) {
	tasks := make([]*models.AnalysisTask, 0, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, header := range files {
		header := header
		g.Go(func() error {
			file, err := header.Open()
			if err != nil {
				return fmt.Errorf("failed to open file %s: %w", header.Filename, err)
			}
			defer file.Close()

			task, err := s.SubmitFile(ctx, file, header)
			if err != nil {
				return fmt.Errorf("failed to submit file %s: %w", header.Filename, err)
			}

			mu.Lock()
			tasks = append(tasks, task)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return tasks, err
	}
	return tasks, nil
}

// HandleAnalysis is the worker-side entry: fetch the stored document,
// extract page text, run the pipeline, and persist the report.
func (s *AnalysisService) HandleAnalysis(ctx context.Context, task *queue.Task) error {
	if task == nil || task.Payload == nil || task.Metadata == nil {
		return fmt.Errorf("invalid task: missing required data")
	}

	s.logger.Info("Running analysis",
		logger.String("taskId", task.ID),
		logger.String("filename", task.Metadata["filename"]),
	)

	documentKey, _ := task.Payload["documentKey"].(string)
	reader, err := s.storage.Get(ctx, documentKey)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	defer reader.Close()

	extractor, err := s.factory.ForFile(task.Metadata["type"])
	if err != nil {
		return fmt.Errorf("failed to resolve extractor: %w", err)
	}

	pageTexts, err := extractor.ExtractPages(ctx, reader)
	if err != nil {
		return fmt.Errorf("text extraction failed: %w", err)
	}

	// Renumber to a contiguous 1..N sequence; extraction backends may
	// skip unreadable pages entirely.
	input := make([]pipeline.PageInput, len(pageTexts))
	for i, pt := range pageTexts {
		input[i] = pipeline.PageInput{
			PageNumber:    i + 1,
			Text:          pt.Text,
			ExtractFailed: pt.Err != nil,
		}
	}

	report, err := s.pipe.Analyze(ctx, task.ID, input)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := s.storage.Store(ctx, bytes.NewReader(data), storage.ReportKey(task.ID)); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info("Analysis completed",
		logger.String("taskId", task.ID),
		logger.Float64("score", report.Score),
		logger.String("status", string(report.Status)),
	)

	final := &queue.TaskStatus{
		TaskID:     task.ID,
		Status:     "completed",
		Progress:   1.0,
		StartedAt:  task.CreatedAt,
		FinishedAt: time.Now(),
	}
	if err := s.queue.SaveFinalStatus(ctx, final); err != nil {
		s.logger.Error("Failed to save final status",
			logger.String("taskId", task.ID),
			logger.Error(err),
		)
	}
	return nil
}

// GetStatus maps the queue's task status onto the analysis task model.
func (s *AnalysisService) GetStatus(ctx context.Context, taskID string) (*models.AnalysisTask, error) {
	status, err := s.queue.GetTaskStatus(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}

	var taskStatus models.AnalysisStatus
	switch status.Status {
	case "pending":
		taskStatus = models.StatusPending
	case "running", "active":
		taskStatus = models.StatusRunning
	case "completed":
		taskStatus = models.StatusCompleted
	case "failed":
		taskStatus = models.StatusFailed
	default:
		taskStatus = models.StatusPending
	}

	return &models.AnalysisTask{
		ID:        status.TaskID,
		Status:    taskStatus,
		Type:      queue.TaskTypeAnalysisRun,
		Progress:  status.Progress,
		Error:     status.Error,
		Metadata:  make(map[string]string),
		CreatedAt: status.StartedAt,
		UpdatedAt: status.FinishedAt,
	}, nil
}

// GetReport loads the persisted compliance report for a completed task.
func (s *AnalysisService) GetReport(ctx context.Context, taskID string) (*models.ComplianceReport, error) {
	status, err := s.GetStatus(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if status.Status != models.StatusCompleted {
		return nil, fmt.Errorf("analysis is not completed: %s", status.Status)
	}

	reader, err := s.storage.Get(ctx, storage.ReportKey(taskID))
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	defer reader.Close()

	var report models.ComplianceReport
	if err := json.NewDecoder(reader).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

func (s *AnalysisService) CancelTask(ctx context.Context, taskID string) error {
	if err := s.queue.CancelTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to cancel task: %w", err)
	}
	s.logger.Info("Task cancelled", logger.String("taskId", taskID))
	return nil
}

// CleanupTasks removes stored documents and reports past retention.
func (s *AnalysisService) CleanupTasks(ctx context.Context) error {
	threshold := time.Now().Add(-s.config.RetentionPeriod)
	if err := s.storage.CleanupBefore(ctx, threshold); err != nil {
		return fmt.Errorf("failed to cleanup storage: %w", err)
	}
	s.logger.Info("Completed tasks cleanup", logger.Time("threshold", threshold))
	return nil
}

// buildExtractionFactory registers the PDF backend, local OCR for scans,
// and Textract when enabled.
func buildExtractionFactory(log logger.Logger) (*extraction.Factory, error) {
	extractors := map[string]extraction.Extractor{
		"application/pdf": pdf.NewExtractor(log),
	}

	registerImageExtractors(extractors, log)
	return extraction.NewFactory(log, extractors), nil
}
