package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/charlesng35/codeshelf/pkg/errors"
	"github.com/charlesng35/codeshelf/pkg/logger"
	"github.com/charlesng35/codeshelf/pkg/response"
)

// Recovery turns a handler panic into the generic 500 envelope. The panic value is logged,
// never sent to the client.
func Recovery() gin.HandlerFunc {
	log := logger.WithModule("http")
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			log.Error("handler panicked",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.Error(c, apperrors.ErrInternalServer)
			c.Abort()
		}()
		c.Next()
	}
}

// NotFoundHandler answers unknown routes with a ROUTE_NOT_FOUND envelope.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, apperrors.New("ROUTE_NOT_FOUND",
		fmt.Sprintf("route %s %s not found", c.Request.Method, c.Request.URL.Path),
		http.StatusNotFound))
}

// MethodNotAllowedHandler answers known paths called with an unsupported method.
func MethodNotAllowedHandler(c *gin.Context) {
	response.Error(c, apperrors.New("METHOD_NOT_ALLOWED",
		fmt.Sprintf("method %s is not allowed on %s", c.Request.Method, c.Request.URL.Path),
		http.StatusMethodNotAllowed))
}
