package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/skosovsky/doccheck/internal/service/analysis"
	"github.com/skosovsky/doccheck/pkg/logger"
	"github.com/skosovsky/doccheck/pkg/queue"
)

// AnalysisWorker consumes queued analysis runs and drives them through
// the analysis service.
type AnalysisWorker struct {
	BaseWorker
	service analysis.Service
}

func NewAnalysisWorker(wc *Config, service analysis.Service, log logger.Logger) (*AnalysisWorker, error) {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: wc.RedisAddr, DB: wc.RedisDB},
		asynq.Config{
			Concurrency: wc.Concurrency,
			Queues:      wc.Queues,
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Minute
			},
		},
	)

	w := &AnalysisWorker{
		BaseWorker: BaseWorker{
			server:   server,
			mux:      asynq.NewServeMux(),
			logger:   log,
			stopChan: make(chan struct{}),
		},
		service: service,
	}
	w.mux.HandleFunc(queue.TaskTypeAnalysisRun, w.handleAnalysisRun)
	return w, nil
}

func (w *AnalysisWorker) handleAnalysisRun(ctx context.Context, t *asynq.Task) error {
	var task queue.Task
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		w.logger.Error("Failed to unmarshal task",
			logger.Error(err),
			logger.String("payload", string(t.Payload())),
		)
		return fmt.Errorf("failed to unmarshal task: %w", err)
	}

	w.logger.Info("Processing analysis task",
		logger.String("taskId", task.ID),
		logger.Any("metadata", task.Metadata),
	)

	if task.ID == "" || task.Metadata == nil || task.Payload == nil {
		return fmt.Errorf("invalid task data: missing required fields")
	}

	writer := t.ResultWriter()
	if _, err := writer.Write([]byte(`{"status":"running","progress":0}`)); err != nil {
		w.logger.Error("Failed to write task status", logger.Error(err))
	}

	if err := w.service.HandleAnalysis(ctx, &task); err != nil {
		if _, writeErr := writer.Write([]byte(fmt.Sprintf(`{"status":"failed","error":%q}`, err.Error()))); writeErr != nil {
			w.logger.Error("Failed to write task failure", logger.Error(writeErr))
		}
		return err
	}

	if _, err := writer.Write([]byte(`{"status":"completed","progress":100}`)); err != nil {
		w.logger.Error("Failed to write task completion", logger.Error(err))
	}
	return nil
}

func (w *AnalysisWorker) Start(ctx context.Context) error {
	go func() {
		if err := w.server.Run(w.mux); err != nil {
			w.logger.Error("Worker server stopped", logger.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return nil
}
