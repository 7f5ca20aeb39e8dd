package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/entitygen/internal/logger"
)

// NewRouter builds the gin engine with logging and recovery middleware.
func NewRouter(h *Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logger.Recovery(log))
	r.Use(logger.GinMiddleware(log))

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/config", h.GetConfig)
		api.POST("/generate", h.Generate)
		api.GET("/history", h.ListHistory)
		api.GET("/history/:id", h.GetHistory)
	}

	return r
}
