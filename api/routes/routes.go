package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/skosovsky/doccheck/api/handlers"
	"github.com/skosovsky/doccheck/api/middleware"
)

// SetupRoutes wires the analysis endpoints.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")

	analyses := v1.Group("/analyses")
	{
		analyses.POST("", h.Analysis.Submit)
		analyses.POST("/batch", h.Analysis.SubmitBatch)
		analyses.GET("/status/:taskId", h.Analysis.GetStatus)
		analyses.GET("/report/:taskId", h.Analysis.GetReport)
		analyses.DELETE("/:taskId", h.Analysis.Cancel)
	}
}
