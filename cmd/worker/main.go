package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/skosovsky/doccheck/config"
	"github.com/skosovsky/doccheck/internal/service/analysis"
	"github.com/skosovsky/doccheck/pkg/logger"
	"github.com/skosovsky/doccheck/pkg/worker"
)

func main() {
	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/worker.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	analysisService, err := analysis.GetService(log)
	if err != nil {
		log.Error("Failed to create analysis service", logger.Error(err))
		os.Exit(1)
	}

	redisCfg := cfg.GetRedisConfig()
	workerCfg := &worker.Config{
		RedisAddr:   redisCfg.Addr,
		RedisDB:     redisCfg.DB,
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	}

	analysisWorker, err := worker.NewAnalysisWorker(workerCfg, analysisService, log)
	if err != nil {
		log.Error("Failed to create analysis worker", logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := analysisWorker.Start(ctx); err != nil {
		log.Error("Failed to start worker", logger.Error(err))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker...")
	analysisWorker.Stop()
	log.Info("Worker stopped")
}
