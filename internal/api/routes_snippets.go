package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/codeshelf/internal/handlers"
)

func registerSnippetRoutes(r *gin.RouterGroup, handler *handlers.SnippetHandler) {
	if r == nil || handler == nil {
		return
	}

	snippets := r.Group("/snippets")
	{
		snippets.GET("", handler.List)
		snippets.POST("", handler.Create)
		snippets.GET("/:id", handler.Get)
		snippets.PATCH("/:id", handler.Update)
		snippets.DELETE("/:id", handler.Delete)
	}
}
