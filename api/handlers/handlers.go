package handlers

import (
	"github.com/skosovsky/doccheck/internal/service/analysis"
	"github.com/skosovsky/doccheck/pkg/logger"
)

type Handlers struct {
	Analysis *AnalysisHandler
}

func NewHandlers(analysisService analysis.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Analysis: NewAnalysisHandler(analysisService, log),
	}
}
