package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/codeshelf/internal/handlers"
)

func registerHealthRoutes(r *gin.RouterGroup, handler *handlers.HealthHandler) {
	if r == nil || handler == nil {
		return
	}

	r.GET("/health", handler.Overall)
	r.GET("/health/live", handler.Live)
	r.GET("/health/ready", handler.Ready)
}
