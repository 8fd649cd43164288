package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/codeshelf/internal/handlers"
)

func registerTagRoutes(r *gin.RouterGroup, handler *handlers.TagHandler) {
	if r == nil || handler == nil {
		return
	}

	tags := r.Group("/tags")
	{
		tags.GET("", handler.List)
		tags.POST("", handler.Create)
		tags.GET("/:id", handler.Get)
		tags.PATCH("/:id", handler.Update)
		tags.DELETE("/:id", handler.Delete)
	}
}
