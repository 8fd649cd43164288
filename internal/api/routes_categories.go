package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/codeshelf/internal/handlers"
)

func registerCategoryRoutes(r *gin.RouterGroup, handler *handlers.CategoryHandler) {
	if r == nil || handler == nil {
		return
	}

	categories := r.Group("/categories")
	{
		categories.GET("", handler.List)
		categories.POST("", handler.Create)
		categories.GET("/:id", handler.Get)
		categories.PATCH("/:id", handler.Update)
		categories.DELETE("/:id", handler.Delete)
	}
}
